package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/panda-dev/panda/pkg/commands"
	"github.com/panda-dev/panda/pkg/presenter"
	"github.com/panda-dev/panda/pkg/skills"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate the panda installation",
	Long: `Scan all skill and command directories and report malformed files and
duplicate skill names. Exits non-zero when problems are found.`,
	Run: func(cmd *cobra.Command, _ []string) {
		if !doctorRun(cmd) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorRun(cmd *cobra.Command) bool {
	ctx := cmd.Context()
	healthy := true

	presenter.Section("Skills")
	registry, enabled := skills.Initialize(ctx)
	if !enabled {
		presenter.Info("Skills are disabled")
	} else {
		if err := registry.Validate(ctx); err != nil {
			healthy = false
			if merr, ok := err.(*multierror.Error); ok {
				for _, problem := range merr.Errors {
					presenter.Warning(problem.Error())
				}
			} else {
				presenter.Warning(err.Error())
			}
		}

		list, err := registry.ListSkills(ctx)
		if err != nil {
			presenter.Error(err, "Skill discovery failed")
			return false
		}
		presenter.Info(fmt.Sprintf("%d skills discoverable", len(list)))
	}

	presenter.Section("Commands")
	processor, err := commands.NewProcessor()
	if err != nil {
		presenter.Error(err, "Command discovery failed")
		return false
	}
	list, err := processor.List(ctx)
	if err != nil {
		presenter.Error(err, "Command discovery failed")
		return false
	}
	presenter.Info(fmt.Sprintf("%d commands discoverable", len(list)))

	if healthy {
		presenter.Success("Installation is healthy")
	} else {
		presenter.Warning("Problems found; see warnings above")
	}
	return healthy
}
