// Command panda is the CLI for the panda agent plugin: it discovers and
// resolves skills, renders command prompts, and implements the hooks the
// agent runtime calls into.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/panda-dev/panda/pkg/logger"
	"github.com/panda-dev/panda/pkg/presenter"
)

func init() {
	viper.SetEnvPrefix("PANDA")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./.panda")
	viper.AddConfigPath("$HOME/.panda")

	// Missing config file is fine; defaults and flags cover everything.
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "panda",
	Short: "Skill and command plugin for AI coding agents",
	Long: `Panda packages skills (model-invoked instructions) and commands
(user-invoked prompt templates) for AI coding agents.

Skills are resolved across three tiers: project skills override personal
skills, which override panda skills. Use "panda skill list" to see the
effective set.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.SetLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// bindGlobalFlags registers the persistent flags and binds them to viper.
func bindGlobalFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text or json)")
	flags.Bool("no-skills", false, "Disable skill discovery")
	flags.Bool("quiet", false, "Suppress non-error output")

	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("no_skills", flags.Lookup("no-skills"))
	viper.BindPFlag("quiet", flags.Lookup("quiet"))
}

func main() {
	bindGlobalFlags(rootCmd.PersistentFlags())

	ctx := logger.WithLogger(context.Background(), logger.L)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
