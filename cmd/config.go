package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/paperlens/paperlens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change paperlens configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfgpkg.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Print(string(b))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and save it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		key, val := args[0], args[1]
		switch key {
		case "sample_size", "top_journals", "max_upload_mb", "max_datasets":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("%s wants a non-negative integer, got %q", key, val)
			}
			switch key {
			case "sample_size":
				cfg.SampleSize = n
			case "top_journals":
				cfg.TopJournals = n
			case "max_upload_mb":
				cfg.MaxUploadMB = n
			case "max_datasets":
				cfg.MaxDatasets = n
			}
		case "output_dir":
			cfg.OutputDir = val
		case "charts_dir":
			cfg.ChartsDir = val
		case "listen_addr":
			cfg.ListenAddr = val
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s = %s\n", key, val)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
