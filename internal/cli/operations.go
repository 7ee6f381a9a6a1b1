package cli

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// Status prints the usage of the volume holding root and what is stored
// below root
func (c *RunContext) Status() error {
	root := c.Options.Root

	total, used, free, err := c.FS.GetDiskUsage(root)
	if err != nil {
		return fmt.Errorf("failed to get disk usage: %w", err)
	}

	stats, err := c.FS.GetTreeStats(root)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", root, err)
	}

	c.UI.Header("Fill Status")
	c.UI.Infof("Root: %s", root)
	c.UI.Infof("Volume: %s used, %s free, %s total",
		datasize.ByteSize(used).HumanReadable(),
		datasize.ByteSize(free).HumanReadable(),
		datasize.ByteSize(total).HumanReadable())
	if total > 0 {
		c.UI.Infof("Volume usage: %.1f%%", float64(used)/float64(total)*100)
	}

	exists, err := c.FS.DirectoryExists(root)
	if err != nil {
		return err
	}
	if !exists {
		c.UI.Info("Root does not exist yet")
		return nil
	}
	c.UI.Infof("Under root: %d directories, %d files, %s",
		stats.Directories, stats.Files, datasize.ByteSize(stats.Bytes).HumanReadable())

	return nil
}

// Clean removes root and everything below it after confirmation, unless
// force is set. It returns false if nothing was removed.
func (c *RunContext) Clean(force bool) (bool, error) {
	root := c.Options.Root

	exists, err := c.FS.DirectoryExists(root)
	if err != nil {
		return false, err
	}
	if !exists {
		c.UI.Infof("Nothing to clean: %s does not exist", root)
		return false, nil
	}

	if !force {
		c.UI.Header("Clean Fill Root")
		c.UI.Warningf("This will delete %s and everything in it", root)

		confirm, err := c.UI.PromptYesNo("Are you sure you want to delete it?", false)
		if err != nil {
			return false, err
		}
		if !confirm {
			c.UI.Info("Clean cancelled")
			return false, nil
		}
	}

	c.UI.Infof("Removing %s...", root)
	if err := c.FS.RemoveDirectory(root); err != nil {
		return false, err
	}
	c.UI.Successf("Removed %s", root)

	return true, nil
}
