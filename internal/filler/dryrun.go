package filler

// DryRunRoundLimit bounds dry runs, where no allocation ever fails.
const DryRunRoundLimit = 3

// DryRunAllocator accepts every directory and file without touching disk.
type DryRunAllocator struct {
	directories int
	files       int
	bytes       int64
}

// NewDryRunAllocator creates a DryRunAllocator.
func NewDryRunAllocator() *DryRunAllocator {
	return &DryRunAllocator{}
}

// EnsureDirectory records the directory and succeeds.
func (d *DryRunAllocator) EnsureDirectory(path string) error {
	d.directories++
	return nil
}

// CreateFile records the file and succeeds.
func (d *DryRunAllocator) CreateFile(path string, size int64) error {
	d.files++
	d.bytes += size
	return nil
}

// Directories returns how many directories were requested.
func (d *DryRunAllocator) Directories() int {
	return d.directories
}

// Files returns how many files were requested.
func (d *DryRunAllocator) Files() int {
	return d.files
}

// Bytes returns the total size of the requested files.
func (d *DryRunAllocator) Bytes() int64 {
	return d.bytes
}
