//go:build unix && !linux

package system

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// preallocate writes zeros so the blocks are really allocated.
func preallocate(f *os.File, size int64) error {
	return writeZeros(f, size)
}

func isNoSpace(err error) bool {
	return errors.Is(err, unix.ENOSPC) || errors.Is(err, unix.EDQUOT)
}
