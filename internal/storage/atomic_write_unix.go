//go:build !windows

package storage

import "os"

// replaceFile renames oldpath over newpath; rename(2) is atomic here.
func replaceFile(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
