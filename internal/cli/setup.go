// Package cli wires resolved options, console output and the filesystem into
// the operations behind each command: fill, status and clean.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"

	"github.com/zoro11031/drive-filler/internal/config"
	"github.com/zoro11031/drive-filler/internal/filler"
	"github.com/zoro11031/drive-filler/internal/system"
	"github.com/zoro11031/drive-filler/internal/ui"
)

// RunContext holds all dependencies needed for a command
type RunContext struct {
	Options *config.Options
	UI      *ui.UI
	FS      system.FileSystemManager
	RunID   string

	logFile io.Closer
}

// NewRunContext validates opts and creates a RunContext on the real filesystem
func NewRunContext(opts *config.Options, nonInteractive bool) (*RunContext, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", opts.Root, err)
	}
	opts.Root = root

	uiInstance := ui.New()
	uiInstance.SetNonInteractive(nonInteractive)

	ctx := NewRunContextWith(opts, uiInstance, system.NewFileSystem())

	if opts.LogFile != "" {
		logFile := ui.OpenLogFile(opts.LogFile)
		uiInstance.SetLogFile(logFile)
		ctx.logFile = logFile
	}

	return ctx, nil
}

// NewRunContextWith creates a RunContext from already built dependencies
func NewRunContextWith(opts *config.Options, out *ui.UI, fs system.FileSystemManager) *RunContext {
	return &RunContext{
		Options: opts,
		UI:      out,
		FS:      fs,
		RunID:   uuid.NewString(),
	}
}

// Close flushes and closes the log file, if any
func (c *RunContext) Close() error {
	if c.logFile == nil {
		return nil
	}
	c.UI.SetLogFile(nil)
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// NewGenerator builds the Generator for the current options. Dry runs get an
// allocator that never touches the disk and a round limit; free space is
// still read from the real volume.
func (c *RunContext) NewGenerator() *filler.Generator {
	cfg := filler.NewConfig(c.Options.Params())

	deps := filler.Dependencies{
		Files: c.FS,
		Dirs:  c.FS,
		Space: c.FS,
		Rand:  filler.NewRand(c.Options.Seed),
		RunID: c.RunID,
	}
	if cfg.DryRun {
		dryRun := filler.NewDryRunAllocator()
		deps.Files = dryRun
		deps.Dirs = dryRun
		deps.RoundLimit = filler.DryRunRoundLimit
	}

	return filler.NewGenerator(cfg, deps, c.UI)
}

// Fill runs the generator after asking for confirmation, unless confirmed is
// set or this is a dry run. It returns false if the user declined.
func (c *RunContext) Fill(confirmed bool) (filler.Report, bool, error) {
	opts := c.Options

	c.UI.Header("Drive Filler")
	c.UI.Infof("Run ID: %s", c.RunID)
	c.UI.Infof("Root: %s", opts.Root)
	c.UI.Infof("File size: %s - %s", opts.FileMinSize.HumanReadable(), opts.FileMaxSize.HumanReadable())
	if opts.Subdirectories {
		c.UI.Infof("Files per subdirectory: %d - %d", opts.SubdirectoryMinFiles, opts.SubdirectoryMaxFiles)
	}
	if total, _, free, err := c.FS.GetDiskUsage(opts.Root); err != nil {
		c.UI.Warningf("Could not read disk usage: %v", err)
	} else {
		c.UI.Infof("Free space: %s of %s", datasize.ByteSize(free).HumanReadable(), datasize.ByteSize(total).HumanReadable())
	}

	if opts.DryRun {
		c.UI.Warningf("Dry run: nothing is written, filling stops after %d rounds", filler.DryRunRoundLimit)
	} else if !confirmed {
		c.UI.Warning("This will write files until the volume is full")
		ok, err := c.UI.PromptYesNo(fmt.Sprintf("Fill %s?", opts.Root), false)
		if err != nil {
			return filler.Report{}, false, err
		}
		if !ok {
			c.UI.Info("Fill cancelled")
			return filler.Report{}, false, nil
		}
	}

	c.UI.Separator()
	report := c.NewGenerator().Run()
	return report, true, nil
}
