package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panda-dev/panda/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		short, _ := cmd.Flags().GetBool("short")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		info := version.Get()
		switch {
		case jsonOutput:
			renderJSON(cmd.OutOrStdout(), info)
		case short:
			fmt.Fprintln(cmd.OutOrStdout(), info.Version)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		}
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
	versionCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
}
