package system

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/spf13/afero"

	"github.com/zoro11031/drive-filler/internal/filler"
)

const zeroChunkSize = 1 << 20

// FileSystem handles file system operations
type FileSystem struct {
	fs afero.Fs
}

// NewFileSystem creates a FileSystem backed by the operating system
func NewFileSystem() *FileSystem {
	return NewFileSystemWithFs(afero.NewOsFs())
}

// NewFileSystemWithFs creates a FileSystem on top of fs (useful for testing)
func NewFileSystemWithFs(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

// EnsureDirectory creates a directory and its parents.
// If the directory already exists, it does nothing
func (fs *FileSystem) EnsureDirectory(path string) error {
	if info, err := fs.fs.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory: %w", path, os.ErrExist)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check directory %s: %w", path, err)
	}

	if err := fs.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, wrapNoSpace(err))
	}
	return nil
}

// CreateFile creates a new file at path holding exactly size bytes of
// allocated space. It fails if path already exists. On OS filesystems the
// space is reserved with the platform's preallocation call, otherwise zeros
// are written. A file that could not be fully allocated is removed.
func (fs *FileSystem) CreateFile(path string, size int64) error {
	if size < 0 {
		return fmt.Errorf("invalid size %d for %s", size, path)
	}

	file, err := fs.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, wrapNoSpace(err))
	}

	allocErr := allocate(file, size)
	closeErr := file.Close()
	if err := errors.Join(allocErr, wrapNoSpace(closeErr)); err != nil {
		fs.fs.Remove(path)
		return fmt.Errorf("failed to allocate %d bytes for %s: %w", size, path, err)
	}

	return nil
}

func allocate(file afero.File, size int64) error {
	if size == 0 {
		return nil
	}
	if osFile, ok := file.(*os.File); ok {
		return preallocate(osFile, size)
	}
	return writeZeros(file, size)
}

// writeZeros fills w with size zero bytes
func writeZeros(w io.Writer, size int64) error {
	chunk := make([]byte, min(size, zeroChunkSize))
	for size > 0 {
		n := min(size, int64(len(chunk)))
		if _, err := w.Write(chunk[:n]); err != nil {
			return wrapNoSpace(err)
		}
		size -= n
	}
	return nil
}

// wrapNoSpace marks out of space errors with filler.ErrInsufficientSpace
func wrapNoSpace(err error) error {
	if err == nil {
		return nil
	}
	if isNoSpace(err) {
		return fmt.Errorf("%w: %w", filler.ErrInsufficientSpace, err)
	}
	return err
}

// FreeSpace returns the bytes available to unprivileged users on the volume
// holding path. Path does not need to exist yet.
func (fs *FileSystem) FreeSpace(path string) (uint64, error) {
	_, _, free, err := fs.GetDiskUsage(path)
	return free, err
}

// GetDiskUsage returns disk usage information for the volume holding path,
// resolving to the nearest existing parent if path does not exist.
// The usage itself always comes from the host, even when fs is in memory.
func (fs *FileSystem) GetDiskUsage(path string) (total, used, free uint64, err error) {
	existing, err := fs.nearestExisting(path)
	if err != nil {
		return 0, 0, 0, err
	}

	usage, err := disk.Usage(existing)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get disk usage for %s: %w", existing, err)
	}

	return usage.Total, usage.Used, usage.Free, nil
}

func (fs *FileSystem) nearestExisting(path string) (string, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	for {
		if _, err := fs.fs.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p, nil
		}
		p = parent
	}
}

// TreeStats describes the entries below a directory
type TreeStats struct {
	Directories int
	Files       int
	Bytes       int64
}

// GetTreeStats walks root and counts directories, files and file bytes.
// Root itself is not counted. A missing root yields empty stats.
func (fs *FileSystem) GetTreeStats(root string) (TreeStats, error) {
	var stats TreeStats

	exists, err := fs.DirectoryExists(root)
	if err != nil || !exists {
		return stats, err
	}

	err = afero.Walk(fs.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if info.IsDir() {
			stats.Directories++
		} else {
			stats.Files++
			stats.Bytes += info.Size()
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return stats, nil
}

// DirectoryExists checks if a directory exists
func (fs *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := fs.fs.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// systemTrees are never removed, nor is anything below them
var systemTrees = []string{
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/lib",
	"/lib64",
	"/proc",
	"/sbin",
	"/sys",
	"/usr",
}

// protectedDirs may hold a fill root but are never removed themselves
var protectedDirs = []string{
	"/",
	"/home",
	"/media",
	"/mnt",
	"/root",
	"/srv",
	"/tmp",
	"/var",
}

// RemoveDirectory removes a directory and all its contents.
// Safety checks are in place to prevent accidental deletion of critical directories.
func (fs *FileSystem) RemoveDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("refusing to remove empty path")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("refusing to remove relative path: %s (must be absolute)", path)
	}

	clean := filepath.ToSlash(filepath.Clean(strings.TrimPrefix(path, filepath.VolumeName(path))))
	for _, dir := range protectedDirs {
		if clean == dir {
			return fmt.Errorf("refusing to remove critical system path: %s", path)
		}
	}
	for _, tree := range systemTrees {
		if clean == tree || strings.HasPrefix(clean, tree+"/") {
			return fmt.Errorf("refusing to remove critical system path: %s", path)
		}
	}

	if err := fs.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	return nil
}
