//go:build windows

package storage

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// replaceFile moves oldpath over newpath with MoveFileEx, which unlike
// os.Rename asks for the write to be flushed before returning.
func replaceFile(oldpath, newpath string) error {
	from, err := windows.UTF16PtrFromString(oldpath)
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", oldpath, err)
	}
	to, err := windows.UTF16PtrFromString(newpath)
	if err != nil {
		return fmt.Errorf("invalid target path %q: %w", newpath, err)
	}
	if err := windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH); err != nil {
		return fmt.Errorf("MoveFileEx: %w", err)
	}
	return nil
}
