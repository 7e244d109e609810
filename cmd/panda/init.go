package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/panda-dev/panda/pkg/logger"
	"github.com/panda-dev/panda/pkg/presenter"
)

// defaultConfig is the config.yaml written by panda init.
type defaultConfig struct {
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	Skills    skillsConfig `yaml:"skills"`
}

type skillsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Allowed []string `yaml:"allowed,omitempty"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the panda directories and configuration",
	Long:  `Create the personal skill and command directories under ~/.panda and write a default config.yaml.`,
	Run: func(cmd *cobra.Command, _ []string) {
		override, _ := cmd.Flags().GetBool("override")
		if err := initRun(cmd, override); err != nil {
			presenter.Error(err, "Initialization failed")
			os.Exit(1)
		}
	},
}

func init() {
	initCmd.Flags().Bool("override", false, "Overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}

func initRun(cmd *cobra.Command, override bool) error {
	ctx := cmd.Context()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	baseDir := filepath.Join(homeDir, ".panda")

	for _, dir := range []string{
		filepath.Join(baseDir, "skills"),
		filepath.Join(baseDir, "commands"),
		filepath.Join(baseDir, "plugins"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		logger.G(ctx).WithField("dir", dir).Debug("Ensured directory")
	}
	presenter.Success("Created directories under " + baseDir)

	configFile := filepath.Join(baseDir, "config.yaml")
	if !override {
		if _, err := os.Stat(configFile); err == nil {
			presenter.Warning(fmt.Sprintf("Configuration already exists at %s", configFile))
			presenter.Info("Use --override to replace it")
			return nil
		}
	}

	data, err := yaml.Marshal(defaultConfig{
		LogLevel:  "warn",
		LogFormat: "text",
		Skills:    skillsConfig{Enabled: true},
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return err
	}

	presenter.Success("Wrote " + configFile)
	return nil
}
