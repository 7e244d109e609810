package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/panda-dev/panda/pkg/presenter"
	"github.com/panda-dev/panda/pkg/skills"
)

type SkillListConfig struct {
	ShowPath   bool
	JSONOutput bool
}

func NewSkillListConfig() *SkillListConfig {
	return &SkillListConfig{
		ShowPath:   false,
		JSONOutput: false,
	}
}

type SkillShowConfig struct {
	JSONOutput bool
	BodyOnly   bool
}

func NewSkillShowConfig() *SkillShowConfig {
	return &SkillShowConfig{
		JSONOutput: false,
		BodyOnly:   false,
	}
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Discover and inspect panda skills",
	Long: `List and show skills across the project, personal, and panda tiers.

A bare skill name resolves through the tiers in precedence order; a
namespaced name such as "panda:brainstorming" addresses one tier directly.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discoverable skills",
	Long:  `List every discoverable skill in precedence order, including shadowed lower-tier definitions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getSkillListConfigFromFlags(cmd)
		if err := listSkillsRun(cmd, config); err != nil {
			presenter.Error(err, "Failed to list skills")
			os.Exit(1)
		}
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <[namespace:]name>",
	Short: "Resolve and display a single skill",
	Long: `Resolve an identifier to its effective skill definition and print it.

Examples:
  panda skill show brainstorming
  panda skill show panda:brainstorming --json
  panda skill show create-pr --body`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getSkillShowConfigFromFlags(cmd)
		if err := showSkillRun(cmd, args[0], config); err != nil {
			presenter.Error(err, "Failed to show skill")
			os.Exit(1)
		}
	},
}

func init() {
	listDefaults := NewSkillListConfig()
	skillListCmd.Flags().Bool("show-path", listDefaults.ShowPath, "Include each skill's source path")
	skillListCmd.Flags().Bool("json", listDefaults.JSONOutput, "Output as JSON")

	showDefaults := NewSkillShowConfig()
	skillShowCmd.Flags().Bool("json", showDefaults.JSONOutput, "Output as JSON")
	skillShowCmd.Flags().Bool("body", showDefaults.BodyOnly, "Print only the skill body")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	rootCmd.AddCommand(skillCmd)
}

func getSkillListConfigFromFlags(cmd *cobra.Command) *SkillListConfig {
	config := NewSkillListConfig()
	if showPath, err := cmd.Flags().GetBool("show-path"); err == nil {
		config.ShowPath = showPath
	}
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}
	return config
}

func getSkillShowConfigFromFlags(cmd *cobra.Command) *SkillShowConfig {
	config := NewSkillShowConfig()
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}
	if bodyOnly, err := cmd.Flags().GetBool("body"); err == nil {
		config.BodyOnly = bodyOnly
	}
	return config
}

// SkillOutput is the JSON shape for one skill.
type SkillOutput struct {
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"`
	Body        string `json:"body,omitempty"`
}

// SkillListOutput renders the skill listing as a table or JSON.
type SkillListOutput struct {
	Skills     []SkillOutput
	JSONOutput bool
	ShowPath   bool
}

func NewSkillListOutput(list []*skills.Skill, config *SkillListConfig) *SkillListOutput {
	output := &SkillListOutput{
		Skills:     make([]SkillOutput, 0, len(list)),
		JSONOutput: config.JSONOutput,
		ShowPath:   config.ShowPath,
	}

	for _, skill := range list {
		entry := SkillOutput{
			Namespace:   string(skill.Namespace),
			Name:        skill.Name,
			Description: skill.Description,
		}
		if config.ShowPath || config.JSONOutput {
			entry.Path = skill.Path
		}
		output.Skills = append(output.Skills, entry)
	}

	return output
}

func (o *SkillListOutput) Render(w io.Writer) error {
	if o.JSONOutput {
		return renderJSON(w, struct {
			Skills []SkillOutput `json:"skills"`
		}{Skills: o.Skills})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if o.ShowPath {
		fmt.Fprintln(tw, "NAMESPACE\tNAME\tDESCRIPTION\tPATH")
	} else {
		fmt.Fprintln(tw, "NAMESPACE\tNAME\tDESCRIPTION")
	}
	for _, skill := range o.Skills {
		if o.ShowPath {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", skill.Namespace, skill.Name, skill.Description, skill.Path)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Namespace, skill.Name, skill.Description)
		}
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error generating JSON output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func listSkillsRun(cmd *cobra.Command, config *SkillListConfig) error {
	ctx := cmd.Context()

	registry, enabled := skills.Initialize(ctx)
	if !enabled {
		presenter.Info("Skills are disabled")
		return nil
	}

	list, err := registry.ListSkills(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 && !config.JSONOutput {
		presenter.Info("No skills found")
		return nil
	}

	return NewSkillListOutput(list, config).Render(cmd.OutOrStdout())
}

func showSkillRun(cmd *cobra.Command, identifier string, config *SkillShowConfig) error {
	ctx := cmd.Context()

	registry, enabled := skills.Initialize(ctx)
	if !enabled {
		return errors.New("skills are disabled")
	}

	skill, err := registry.Resolve(ctx, identifier)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case config.JSONOutput:
		return renderJSON(w, SkillOutput{
			Namespace:   string(skill.Namespace),
			Name:        skill.Name,
			Description: skill.Description,
			Path:        skill.Path,
			Body:        skill.Body,
		})
	case config.BodyOnly:
		fmt.Fprintln(w, skill.Body)
	default:
		presenter.Section(skill.Qualified())
		if skill.Description != "" {
			presenter.Info(skill.Description)
			presenter.Info("")
		}
		fmt.Fprintln(w, skill.Body)
	}
	return nil
}
