package system

import "github.com/zoro11031/drive-filler/internal/filler"

// FileSystemManager defines the interface for file system operations.
// This allows for mocking the file system in tests.
type FileSystemManager interface {
	filler.FileAllocator
	filler.DirectoryAllocator
	filler.SpaceProber
	GetDiskUsage(path string) (total, used, free uint64, err error)
	GetTreeStats(root string) (TreeStats, error)
	DirectoryExists(path string) (bool, error)
	RemoveDirectory(path string) error
}

var (
	_ FileSystemManager = (*FileSystem)(nil)
	_ FileSystemManager = (*MockFileSystem)(nil)
)
