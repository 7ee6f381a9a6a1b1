package main

import (
	"github.com/spf13/cobra"
)

var cleanForce bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the fill root",
	Long: `Delete the fill root and every generated file and directory below it.

Volume roots and system directories are never removed.`,
	Args: cobra.NoArgs,
	RunE: cleanRoot,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func cleanRoot(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	_, err = ctx.Clean(cleanForce)
	return err
}
