// Package install places the gitman binary into the system executable
// directory.
//
// An install is a fixed sequence of steps, each of which ends the run on
// failure:
//
//  1. Detect the host OS and resolve the destination directory and binary
//     name for it (/usr/local/bin/gitman, or %ProgramFiles%\bin\gitman.exe).
//  2. Use the caller's path instead of the default binary name if given.
//  3. Build the binary with "go build -o <path>" if it does not exist yet.
//  4. Create the destination directory, including parents.
//  5. Move the binary into the destination, replacing any previous copy.
//
// There is no rollback. When step 5 fails after a fresh build, the built
// binary stays where it was built.
//
// # Usage
//
//	inst, err := install.New(install.Config{
//	    Detector: platform.NewDetector(),
//	    Builder:  &install.CommandBuilder{Tool: "go", Stdout: os.Stdout, Stderr: os.Stderr},
//	    Stdout:   os.Stdout,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := inst.Run(ctx, install.Options{Path: override})
package install
