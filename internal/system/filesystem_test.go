package system

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/zoro11031/drive-filler/internal/filler"
)

func TestEnsureDirectory(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fsys := NewFileSystemWithFs(memFs)

	if err := afero.WriteFile(memFs, "/data/blocker", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantErr    bool
		wantExists bool
	}{
		{"creates nested directories", "/data/fill/a/b", false, false},
		{"existing directory is fine", "/data/fill/a/b", false, false},
		{"file in the way", "/data/blocker", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fsys.EnsureDirectory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EnsureDirectory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantExists && !errors.Is(err, fs.ErrExist) {
				t.Errorf("EnsureDirectory() error = %v, want fs.ErrExist", err)
			}
			if !tt.wantErr {
				if ok, _ := fsys.DirectoryExists(tt.path); !ok {
					t.Errorf("directory %s does not exist after EnsureDirectory()", tt.path)
				}
			}
		})
	}
}

func TestCreateFileInMemory(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fsys := NewFileSystemWithFs(memFs)
	if err := fsys.EnsureDirectory("/fill"); err != nil {
		t.Fatalf("EnsureDirectory() failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		size int64
	}{
		{"empty file", "/fill/empty.bin", 0},
		{"one byte", "/fill/one.bin", 1},
		{"several chunks", "/fill/big.bin", 3*zeroChunkSize + 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fsys.CreateFile(tt.path, tt.size); err != nil {
				t.Fatalf("CreateFile() error = %v", err)
			}
			info, err := memFs.Stat(tt.path)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if info.Size() != tt.size {
				t.Errorf("file size = %d, want %d", info.Size(), tt.size)
			}
		})
	}
}

func TestCreateFileRefusesExistingPath(t *testing.T) {
	fsys := NewFileSystemWithFs(afero.NewMemMapFs())

	if err := fsys.CreateFile("/fill/a.bin", 8); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}

	err := fsys.CreateFile("/fill/a.bin", 8)
	if err == nil {
		t.Fatal("CreateFile() on existing path succeeded, want error")
	}
	if got := filler.Classify(err); got != filler.Exists {
		t.Errorf("Classify(%v) = %v, want %v", err, got, filler.Exists)
	}
}

func TestCreateFileRejectsNegativeSize(t *testing.T) {
	fsys := NewFileSystemWithFs(afero.NewMemMapFs())
	if err := fsys.CreateFile("/fill/neg.bin", -1); err == nil {
		t.Error("CreateFile() with negative size succeeded, want error")
	}
}

func TestCreateFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	fsys := NewFileSystem()
	path := filepath.Join(dir, "disk.bin")

	if err := fsys.CreateFile(path, 64*1024); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 64*1024 {
		t.Errorf("file size = %d, want %d", info.Size(), 64*1024)
	}

	if err := fsys.CreateFile(path, 1); !errors.Is(err, fs.ErrExist) {
		t.Errorf("CreateFile() on existing file error = %v, want fs.ErrExist", err)
	}
}

func TestFreeSpaceForMissingPath(t *testing.T) {
	fsys := NewFileSystem()
	missing := filepath.Join(t.TempDir(), "not", "yet", "created")

	free, err := fsys.FreeSpace(missing)
	if err != nil {
		t.Fatalf("FreeSpace() error = %v", err)
	}

	total, _, diskFree, err := fsys.GetDiskUsage(missing)
	if err != nil {
		t.Fatalf("GetDiskUsage() error = %v", err)
	}
	if total == 0 {
		t.Error("GetDiskUsage() total = 0, want > 0")
	}
	if free > total || diskFree > total {
		t.Errorf("free space %d exceeds total %d", free, total)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("FreeSpace() must not create the path")
	}
}

func TestGetTreeStats(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fsys := NewFileSystemWithFs(memFs)

	stats, err := fsys.GetTreeStats("/fill")
	if err != nil {
		t.Fatalf("GetTreeStats() on missing root error = %v", err)
	}
	if stats != (TreeStats{}) {
		t.Errorf("GetTreeStats() on missing root = %+v, want empty", stats)
	}

	for path, size := range map[string]int64{"/fill/a/1.bin": 10, "/fill/a/2.bin": 20, "/fill/b/1.bin": 5, "/fill/top.bin": 1} {
		if err := fsys.EnsureDirectory(filepath.Dir(path)); err != nil {
			t.Fatalf("EnsureDirectory() failed: %v", err)
		}
		if err := fsys.CreateFile(path, size); err != nil {
			t.Fatalf("CreateFile() failed: %v", err)
		}
	}

	stats, err = fsys.GetTreeStats("/fill")
	if err != nil {
		t.Fatalf("GetTreeStats() error = %v", err)
	}
	want := TreeStats{Directories: 2, Files: 4, Bytes: 36}
	if stats != want {
		t.Errorf("GetTreeStats() = %+v, want %+v", stats, want)
	}
}

func TestRemoveDirectory(t *testing.T) {
	memFs := afero.NewMemMapFs()
	fsys := NewFileSystemWithFs(memFs)
	if err := fsys.EnsureDirectory("/mnt/data/fill/0"); err != nil {
		t.Fatalf("EnsureDirectory() failed: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", true},
		{"relative path", "fill", true},
		{"root", "/", true},
		{"protected mount dir", "/mnt", true},
		{"home itself", "/home", true},
		{"system tree", "/usr/local/fill", true},
		{"system dir", "/etc", true},
		{"fill root", "/mnt/data/fill", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fsys.RemoveDirectory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("RemoveDirectory(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}

	if ok, _ := fsys.DirectoryExists("/mnt/data/fill"); ok {
		t.Error("fill root still exists after RemoveDirectory()")
	}
	if ok, _ := fsys.DirectoryExists("/mnt/data"); !ok {
		t.Error("parent of fill root was removed")
	}
}

func TestMockFileSystemFillsUp(t *testing.T) {
	m := NewMockFileSystem(100)

	if err := m.EnsureDirectory("/fill"); err != nil {
		t.Fatalf("EnsureDirectory() failed: %v", err)
	}
	for i, size := range []int64{40, 40} {
		if err := m.CreateFile(filepath.Join("/fill", string(rune('a'+i))), size); err != nil {
			t.Fatalf("CreateFile() #%d failed: %v", i, err)
		}
	}

	err := m.CreateFile("/fill/c", 40)
	if got := filler.Classify(err); got != filler.InsufficientSpace {
		t.Errorf("Classify(%v) = %v, want %v", err, got, filler.InsufficientSpace)
	}

	free, _ := m.FreeSpace("/fill")
	if free != 20 {
		t.Errorf("FreeSpace() = %d, want 20", free)
	}
	if m.Attempts != 3 || len(m.Files) != 2 {
		t.Errorf("Attempts = %d, Files = %d, want 3 and 2", m.Attempts, len(m.Files))
	}
	if err := m.CreateFile("/fill/rest", 20); err != nil {
		t.Errorf("CreateFile() of exactly the free space failed: %v", err)
	}
}

func TestNearestExistingUsesBackingFs(t *testing.T) {
	fsys := NewFileSystemWithFs(afero.NewMemMapFs())
	if err := fsys.EnsureDirectory("/in-memory-only/fill"); err != nil {
		t.Fatalf("EnsureDirectory() failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"existing directory", "/in-memory-only/fill", "/in-memory-only/fill"},
		{"missing child", "/in-memory-only/fill/a/b", "/in-memory-only/fill"},
		{"missing tree", "/nowhere/at/all", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fsys.nearestExisting(tt.path)
			if err != nil {
				t.Fatalf("nearestExisting() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("nearestExisting(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
