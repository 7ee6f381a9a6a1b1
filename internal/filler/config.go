package filler

import (
	"strings"
)

// Naming describes how generated entries are named.
// Directories ignore Extension.
type Naming struct {
	Prefix      string
	Suffix      string
	Extension   string
	Progressive bool // Use the entry index instead of a random token
}

// Params holds raw, user supplied fill parameters. They may violate the
// range invariants; NewConfig repairs them.
type Params struct {
	Root string

	FileMinSize int64
	FileMaxSize int64
	FileNaming  Naming

	Subdirectories       bool
	SubdirectoryMinFiles int
	SubdirectoryMaxFiles int
	SubdirectoryNaming   Naming

	DrainRemainingSpace bool
	DryRun              bool
}

// Config is the normalized form of Params. Build it with NewConfig and treat
// it as read-only afterwards; the Generator keeps its own copy.
type Config struct {
	Params
}

// NewConfig normalizes params instead of rejecting them:
//   - minimums below 1 are raised to 1
//   - a maximum below its minimum is raised to the minimum
//   - the file extension loses its spaces and gets exactly one leading "."
//     (an empty extension stays empty)
func NewConfig(p Params) Config {
	p.FileMinSize = max(1, p.FileMinSize)
	p.FileMaxSize = max(p.FileMinSize, p.FileMaxSize)

	p.SubdirectoryMinFiles = max(1, p.SubdirectoryMinFiles)
	p.SubdirectoryMaxFiles = max(p.SubdirectoryMinFiles, p.SubdirectoryMaxFiles)

	p.FileNaming.Extension = NormalizeExtension(p.FileNaming.Extension)
	p.SubdirectoryNaming.Extension = ""

	return Config{Params: p}
}

// NormalizeExtension returns ext with whitespace removed and a single
// leading dot, so "bin", ".bin" and " ..bin" all become ".bin".
func NormalizeExtension(ext string) string {
	ext = strings.Join(strings.Fields(ext), "")
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}
