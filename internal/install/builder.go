package install

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Builder produces the binary at output.
type Builder interface {
	Build(ctx context.Context, output string) error
}

// CommandBuilder builds by running an external build tool:
//
//	<Tool> build <Flags...> -o <output> [Package]
//
// The tool's stdout and stderr are streamed to Stdout and Stderr.
type CommandBuilder struct {
	Tool    string
	Flags   []string
	Package string
	// Dir is the working directory of the tool. Empty means the current one.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the arguments passed to the tool for output.
func (b *CommandBuilder) Args(output string) []string {
	args := make([]string, 0, len(b.Flags)+4)
	args = append(args, "build")
	args = append(args, b.Flags...)
	args = append(args, "-o", output)
	if b.Package != "" {
		args = append(args, b.Package)
	}
	return args
}

// Build runs the tool and waits for it. A tool that cannot be started or
// exits non-zero is an error naming the command.
func (b *CommandBuilder) Build(ctx context.Context, output string) error {
	if b.Tool == "" {
		return fmt.Errorf("no build tool configured")
	}

	args := b.Args(output)
	cmd := exec.CommandContext(ctx, b.Tool, args...)
	cmd.Dir = b.Dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", b.Tool+" "+strings.Join(args, " "), err)
	}
	return nil
}
