package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MoveFile moves src to dst, replacing dst if it exists.
//
// A plain rename is tried first. When that fails, typically because src and
// dst are on different filesystems, the file is copied into a staging file
// next to dst, renamed over dst, and src is removed. The copy keeps the
// permission bits of src.
func MoveFile(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	if err := copyReplace(src, dst); err != nil {
		return fmt.Errorf("%w (rename: %v)", err, renameErr)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// copyReplace copies src over dst through a staging file in dst's directory,
// so dst is either the old file or the complete new one.
func copyReplace(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("source %s is not a regular file", src)
	}

	staging := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.NewString()))
	out, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(staging)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}
	// umask may have narrowed the mode given to OpenFile.
	if err = os.Chmod(staging, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod staging file: %w", err)
	}
	if err = os.Rename(staging, dst); err != nil {
		return fmt.Errorf("replace destination: %w", err)
	}
	return nil
}
