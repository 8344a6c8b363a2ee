package camera

import (
	"io"
	"os"
)

// moveFile relocates a just-captured temp file to its final destination.
// It tries a rename first (the common case: same filesystem) and falls
// back to a copy when that fails, e.g. because tempDir and destPath sit on
// different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func removeQuiet(path string) {
	_ = os.Remove(path)
}
