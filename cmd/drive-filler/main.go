package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoro11031/drive-filler/internal/cli"
	"github.com/zoro11031/drive-filler/internal/config"
	"github.com/zoro11031/drive-filler/pkg/version"
)

var (
	configFile string
	noColor    bool
	assumeYes  bool

	// options resolves flags, DRIVE_FILLER_* variables, the config file and defaults
	options = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "drive-filler",
	Short: "Fill a volume with generated files until it runs out of space",
	Long: `Fill a volume with generated files until allocating the next one fails.

Files are created below --root, optionally spread over generated
subdirectories, with sizes drawn between --file-min-size and --file-max-size.
With --zero the run ends with one more file sized to whatever space is left.

Use --dry-run to see what would be created without writing anything.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	RunE:          runFill,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	if err := config.BindPersistentFlags(options, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	// Fill flags are persistent so that "config init" and "config show" capture them too
	if err := config.BindFillFlags(options, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompt")

	rootCmd.AddCommand(versionCmd)
}

// newRunContext loads the effective options and builds a RunContext for them
func newRunContext() (*cli.RunContext, error) {
	opts, err := config.Load(options, configFile)
	if err != nil {
		return nil, err
	}

	ctx, err := cli.NewRunContext(opts, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run context: %w", err)
	}
	if noColor {
		ctx.UI.DisableColor()
	}
	return ctx, nil
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	_, _, err = ctx.Fill(assumeYes)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
