// Package testutil provides helpers for testing gitman-install in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Env is an isolated test environment rooted in a temporary directory.
type Env struct {
	Root         string
	WorkDir      string // stands in for the project checkout
	DestDir      string // install destination, not created yet
	ProgramFiles string // value of ProgramFiles
}

// SetupTestEnv creates an isolated environment and points the variables the
// installer reads at it, so tests never touch /usr/local/bin, the real
// Program Files directory or the user's log settings. Cleanup is handled by
// t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Root:         root,
		WorkDir:      filepath.Join(root, "work"),
		DestDir:      filepath.Join(root, "dest", "bin"),
		ProgramFiles: filepath.Join(root, "Program Files"),
	}

	t.Setenv("ProgramFiles", env.ProgramFiles)
	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("GITMAN_INSTALL_LOG", "")

	for _, dir := range []string{env.WorkDir, env.ProgramFiles, filepath.Join(root, "home")} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// WriteBinary writes a small executable file at path and returns path.
func WriteBinary(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// BuildBehavior selects what a fake build tool does.
type BuildBehavior int

const (
	// BuildSucceeds writes the -o output and exits 0.
	BuildSucceeds BuildBehavior = iota
	// BuildFails prints to stderr and exits 2 without writing anything.
	BuildFails
	// BuildWritesNothing exits 0 without writing the output.
	BuildWritesNothing
)

// FakeBuildTool writes a shell script that mimics "go build -o <path>" and
// returns its path. The arguments of each invocation are appended to
// <script>.args, one line per call. Unix only; the test is skipped elsewhere.
func FakeBuildTool(t *testing.T, dir string, behavior BuildBehavior) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake build tool is a shell script")
	}

	var body string
	switch behavior {
	case BuildSucceeds:
		body = `out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; out="$1"; fi
  shift
done
printf 'built by fake tool\n' > "$out"
chmod 755 "$out"
exit 0`
	case BuildFails:
		body = `echo "fake build: compilation failed" >&2
exit 2`
	case BuildWritesNothing:
		body = `exit 0`
	}

	script := filepath.Join(dir, "fakego")
	content := "#!/bin/sh\necho \"$@\" >> \"$0.args\"\n" + body + "\n"
	return WriteBinary(t, script, content)
}

// Invocations returns the recorded argument lines of a fake build tool.
func Invocations(t *testing.T, tool string) []string {
	t.Helper()
	data, err := os.ReadFile(tool + ".args")
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read invocations: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Chdir changes the working directory to dir and restores the previous one
// when the test finishes, matching testing.T.Chdir from newer Go releases.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
