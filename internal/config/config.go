package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	SampleSize  int    `mapstructure:"sample_size" yaml:"sample_size"`
	TopJournals int    `mapstructure:"top_journals" yaml:"top_journals"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	ChartsDir   string `mapstructure:"charts_dir" yaml:"charts_dir"`

	// Dashboard server
	ListenAddr     string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	MaxUploadMB    int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	MaxDatasets    int      `mapstructure:"max_datasets" yaml:"max_datasets"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".paperlens"), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes the given configuration to cfgFile, or to the default location
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PAPERLENS")
	v.AutomaticEnv()

	v.SetDefault("sample_size", 15000)
	v.SetDefault("top_journals", 15)
	v.SetDefault("output_dir", "results")
	v.SetDefault("charts_dir", filepath.Join("results", "visualizations"))
	v.SetDefault("listen_addr", "127.0.0.1:8490")
	v.SetDefault("allowed_origins", []string{"http://localhost:8490"})
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("max_datasets", 8)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
