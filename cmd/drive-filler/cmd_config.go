package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoro11031/drive-filler/internal/config"
)

const defaultConfigPath = "drive-filler.yaml"

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective options to a YAML file",
	Long: fmt.Sprintf(`Write the effective options (defaults, --config file, DRIVE_FILLER_*
variables and fill flags such as --file-min-size merged) to a YAML file that
can be passed back with --config.

The file is written to %s unless a path is given.`, defaultConfigPath),
	Args: cobra.MaximumNArgs(1),
	RunE: initConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective options as YAML",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func loadValidOptions() (*config.Options, error) {
	opts, err := config.Load(options, configFile)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	opts, err := loadValidOptions()
	if err != nil {
		return err
	}

	if err := opts.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	opts, err := loadValidOptions()
	if err != nil {
		return err
	}

	data, err := opts.Marshal()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
