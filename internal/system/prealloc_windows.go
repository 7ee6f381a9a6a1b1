//go:build windows

package system

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// preallocate extends the file with SetEndOfFile, which allocates clusters
// on NTFS without writing them.
func preallocate(f *os.File, size int64) error {
	return wrapNoSpace(f.Truncate(size))
}

func isNoSpace(err error) bool {
	return errors.Is(err, windows.ERROR_DISK_FULL) || errors.Is(err, windows.ERROR_HANDLE_DISK_FULL)
}
