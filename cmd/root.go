package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/paperlens/paperlens-cli/internal/config"
)

var (
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "paperlens",
	Short: "Paperlens: summarize research-paper metadata CSVs",
	Long: `Paperlens loads a CSV of research-paper metadata (CORD-19 style),
cleans it, computes summary statistics, renders charts, and writes a text
report. The serve command offers the same analyses as a local dashboard.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.paperlens/config.yaml)")
}

// ensureConfig guards commands that run without the cobra initializer,
// e.g. when invoked directly from tests.
func ensureConfig() {
	if cfg == nil {
		loadConfig()
	}
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: every setting has a usable default
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{}
		return
	}
	cfg = c
}
