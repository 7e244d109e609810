package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/panda-dev/panda/pkg/hooks"
	"github.com/panda-dev/panda/pkg/presenter"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Hook entrypoints invoked by the agent runtime",
	Long:  `Subcommands under hook are wired into the agent runtime's hook configuration and are not normally run by hand.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Emit the session-start context envelope",
	Long: `Read the project context file and print the JSON envelope the agent
runtime expects from a session-start hook. A missing context file produces
an empty envelope; this command never fails session start.`,
	Run: func(cmd *cobra.Command, _ []string) {
		file, _ := cmd.Flags().GetString("file")

		out := hooks.SessionStart(cmd.Context(), file)
		if err := out.Write(cmd.OutOrStdout()); err != nil {
			presenter.Error(err, "Failed to write session-start output")
			os.Exit(1)
		}
	},
}

func init() {
	hookSessionStartCmd.Flags().String("file", "", "Context file to inject (default "+hooks.DefaultContextFile+")")

	hookCmd.AddCommand(hookSessionStartCmd)
	rootCmd.AddCommand(hookCmd)
}
