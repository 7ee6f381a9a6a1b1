package system

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/zoro11031/drive-filler/internal/filler"
)

// MockFileSystem is a mock of the FileSystem for testing purposes.
// It keeps everything in memory, records what was created and simulates a
// volume of TotalBytes that fills up as files are created.
type MockFileSystem struct {
	*FileSystem
	mu          sync.Mutex
	TotalBytes  uint64
	UsedBytes   uint64
	Directories []string
	Files       map[string]int64
	Attempts    int

	// FailAfter makes CreateFile report a full volume once this many files
	// exist. Zero disables it.
	FailAfter int
}

// NewMockFileSystem creates a new MockFileSystem with a volume of totalBytes.
func NewMockFileSystem(totalBytes uint64) *MockFileSystem {
	return &MockFileSystem{
		FileSystem: NewFileSystemWithFs(afero.NewMemMapFs()),
		TotalBytes: totalBytes,
		Files:      make(map[string]int64),
	}
}

// EnsureDirectory records the directory and creates it in memory.
func (m *MockFileSystem) EnsureDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FileSystem.EnsureDirectory(path); err != nil {
		return err
	}
	m.Directories = append(m.Directories, path)
	return nil
}

// CreateFile fails with filler.ErrInsufficientSpace once size no longer fits
// into the simulated volume. Files are stored empty; only their size is kept.
func (m *MockFileSystem) CreateFile(path string, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts++

	full := m.FailAfter > 0 && len(m.Files) >= m.FailAfter
	if full || size < 0 || uint64(size) > m.TotalBytes-m.UsedBytes {
		return fmt.Errorf("failed to allocate %d bytes for %s: %w", size, path, filler.ErrInsufficientSpace)
	}
	if err := m.FileSystem.CreateFile(path, 0); err != nil {
		return err
	}
	m.Files[path] = size
	m.UsedBytes += uint64(size)
	return nil
}

// FreeSpace returns the simulated free space.
func (m *MockFileSystem) FreeSpace(path string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TotalBytes - m.UsedBytes, nil
}

// GetDiskUsage returns the simulated volume usage.
func (m *MockFileSystem) GetDiskUsage(path string) (total, used, free uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TotalBytes, m.UsedBytes, m.TotalBytes - m.UsedBytes, nil
}
