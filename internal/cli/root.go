package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	dataDir    string
	debug      bool
}

func newRootCmd(version string) *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:   "memopad",
		Short: "memopad - a small notebook for the terminal",
		Long: `memopad keeps short plain-text memos, optionally grouped into coloured folders.

Run without arguments to open the interactive notebook.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
		Version:       effectiveVersion(version),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file (default ~/.config/memopad/config.json)")
	rootCmd.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "override storage.path from the config")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newNewCmd(g))
	rootCmd.AddCommand(newLsCmd(g))
	rootCmd.AddCommand(newRmCmd(g))
	rootCmd.AddCommand(newExportCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
