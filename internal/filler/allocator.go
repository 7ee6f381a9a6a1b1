package filler

import (
	"errors"
	"io/fs"
)

// ErrInsufficientSpace is wrapped by allocators when the volume cannot hold
// the requested file.
var ErrInsufficientSpace = errors.New("insufficient space")

// FileAllocator creates a file of exactly size bytes at path. It must fail
// (not panic) when the path exists, the volume is full or access is denied.
type FileAllocator interface {
	CreateFile(path string, size int64) error
}

// DirectoryAllocator ensures a directory and its parents exist. Calling it
// for an existing directory succeeds.
type DirectoryAllocator interface {
	EnsureDirectory(path string) error
}

// SpaceProber reports the free bytes on the volume holding path.
type SpaceProber interface {
	FreeSpace(path string) (uint64, error)
}

// Result tags the outcome of a single allocation attempt.
type Result int

const (
	Created Result = iota
	Exists
	InsufficientSpace
	OtherFailure
)

func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case Exists:
		return "already exists"
	case InsufficientSpace:
		return "insufficient space"
	case OtherFailure:
		return "allocation failed"
	default:
		return "unknown"
	}
}

// Classify maps an allocator error to a Result.
func Classify(err error) Result {
	switch {
	case err == nil:
		return Created
	case errors.Is(err, fs.ErrExist):
		return Exists
	case errors.Is(err, ErrInsufficientSpace):
		return InsufficientSpace
	default:
		return OtherFailure
	}
}
