// Package filler fills a volume with generated files until an allocation
// fails, optionally spreading them over generated subdirectories and
// finishing with one file sized to the remaining free space.
//
// The Generator only decides what to create. Disk access goes through the
// FileAllocator, DirectoryAllocator and SpaceProber it is given, which is how
// dry runs and tests swap the real filesystem out.
package filler

import (
	"io"
	"math"
	"math/rand/v2"
	"path/filepath"

	"github.com/c2h5oh/datasize"

	"github.com/zoro11031/drive-filler/internal/ui"
)

// DrainDirName is the directory under root that receives the drain file.
const DrainDirName = "zero"

// State is the Generator's position in a run.
type State int

const (
	Filling State = iota
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Filling:
		return "filling"
	case Draining:
		return "draining"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Dependencies are the collaborators a Generator calls into.
type Dependencies struct {
	Files FileAllocator
	Dirs  DirectoryAllocator
	// Space is only consulted by the drain step and may be nil when
	// draining is disabled.
	Space SpaceProber

	// Tokens and Rand default to clock seeded sources when nil.
	Tokens TokenGenerator
	Rand   *rand.Rand

	// RoundLimit stops filling after that many rounds. Zero means no limit.
	RoundLimit int

	RunID string
}

// Generator drives one fill run.
type Generator struct {
	cfg        Config
	files      FileAllocator
	dirs       DirectoryAllocator
	space      SpaceProber
	tokens     TokenGenerator
	rng        *rand.Rand
	roundLimit int
	ui         *ui.UI

	state  State
	report Report
}

// NewGenerator creates a Generator. cfg is normalized again, so the range
// invariants hold even for a hand built Config.
func NewGenerator(cfg Config, deps Dependencies, out *ui.UI) *Generator {
	rng := deps.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	tokens := deps.Tokens
	if tokens == nil {
		tokens = &SeededTokens{rng: rng}
	}
	if out == nil {
		out = ui.NewWithWriter(io.Discard)
	}

	return &Generator{
		cfg:        NewConfig(cfg.Params),
		files:      deps.Files,
		dirs:       deps.Dirs,
		space:      deps.Space,
		tokens:     tokens,
		rng:        rng,
		roundLimit: max(0, deps.RoundLimit),
		ui:         out,
		state:      Filling,
		report:     Report{RunID: deps.RunID, State: Filling},
	}
}

// State returns the current state.
func (g *Generator) State() State {
	return g.state
}

// Report returns a copy of the report collected so far.
func (g *Generator) Report() Report {
	r := g.report
	r.State = g.state
	return r
}

// Run fills the volume, then drains the remaining space if enabled.
func (g *Generator) Run() Report {
	g.state = Filling
	for g.state != Done {
		switch g.state {
		case Filling:
			g.Fill()
			if g.cfg.DrainRemainingSpace {
				g.state = Draining
			} else {
				g.state = Done
			}
		case Draining:
			g.DrainRemainingSpace()
			g.state = Done
		}
	}

	report := g.Report()
	g.ui.Successf("Finished: %d files (%s) in %d directories over %d rounds",
		report.Files, report.Allocated(), report.Directories, report.Rounds)
	g.ui.Infof("Stopped by: %s", report.StopReason())
	if report.Drained {
		g.ui.Infof("Drain file: %s (%s)", datasize.ByteSize(report.DrainSize).HumanReadable(), report.DrainResult)
	}
	return report
}

// Fill creates rounds of files until an allocation fails or the round limit
// is reached. Nothing is retried or rolled back.
func (g *Generator) Fill() {
	g.state = Filling

	root := g.cfg.Root
	if !g.ensureDirectory(root) {
		return
	}

	for dirIndex := 0; ; {
		target := root
		if g.cfg.Subdirectories {
			target = filepath.Join(root, g.cfg.SubdirectoryNaming.name(dirIndex, g.tokens))
			if !g.ensureDirectory(target) {
				return
			}
		}
		dirIndex++
		g.report.Rounds++

		count := g.intBetween(g.cfg.SubdirectoryMinFiles, g.cfg.SubdirectoryMaxFiles)
		for fileIndex := 0; fileIndex < count; fileIndex++ {
			path := filepath.Join(target, g.cfg.FileNaming.name(fileIndex, g.tokens))
			size := g.int64Between(g.cfg.FileMinSize, g.cfg.FileMaxSize)
			if result := g.createFile(path, size); result != Created {
				g.stop(result, path)
				return
			}
			g.report.Files++
			g.report.Bytes += size
		}

		if g.roundLimit > 0 && dirIndex >= g.roundLimit {
			g.report.RoundLimitReached = true
			g.ui.Infof("stopping: round limit of %d reached", g.roundLimit)
			return
		}
	}
}

// DrainRemainingSpace creates root/zero and one file in it sized to the free
// space reported for that directory. The free space may already be stale
// when the file is created, so the outcome is only recorded.
func (g *Generator) DrainRemainingSpace() {
	g.state = Draining

	dir := filepath.Join(g.cfg.Root, DrainDirName)
	g.ui.Infof("creating directory at %s...", dir)
	if err := g.dirs.EnsureDirectory(dir); err != nil {
		g.ui.Infof("directory %s: %s (%v)", dir, Classify(err), err)
	} else {
		g.report.Directories++
	}

	if g.space == nil {
		g.ui.Warning("no free space probe configured, skipping drain file")
		return
	}
	free, err := g.space.FreeSpace(dir)
	if err != nil {
		g.ui.Warningf("could not query free space for %s: %v", dir, err)
		return
	}

	size := int64(min(free, math.MaxInt64))
	path := filepath.Join(dir, g.cfg.FileNaming.name(0, g.tokens))

	g.report.Drained = true
	g.report.DrainSize = size
	g.report.DrainResult = g.createFile(path, size)
}

func (g *Generator) ensureDirectory(path string) bool {
	g.ui.Infof("creating directory at %s...", path)
	if err := g.dirs.EnsureDirectory(path); err != nil {
		result := Classify(err)
		g.ui.Infof("directory %s: %s (%v)", path, result, err)
		g.stop(result, path)
		return false
	}
	g.report.Directories++
	return true
}

func (g *Generator) createFile(path string, size int64) Result {
	g.ui.Infof("creating file at %s... (%s)", path, datasize.ByteSize(size).HumanReadable())
	err := g.files.CreateFile(path, size)
	result := Classify(err)
	if result != Created {
		g.ui.Infof("file %s: %s (%v)", path, result, err)
	}
	return result
}

func (g *Generator) stop(result Result, path string) {
	g.report.StoppedBy = result
	g.report.StoppedAt = path
	g.ui.Infof("stopping: %s", result)
}

// intBetween draws uniformly from [lo, hi]. NewConfig guarantees 1 <= lo <= hi.
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) int64Between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}
