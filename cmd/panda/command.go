package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/panda-dev/panda/pkg/commands"
	"github.com/panda-dev/panda/pkg/presenter"
)

type CommandListConfig struct {
	ShowPath   bool
	JSONOutput bool
}

func NewCommandListConfig() *CommandListConfig {
	return &CommandListConfig{
		ShowPath:   false,
		JSONOutput: false,
	}
}

type CommandShowConfig struct {
	Arguments map[string]string
	Raw       bool
}

func NewCommandShowConfig() *CommandShowConfig {
	return &CommandShowConfig{
		Arguments: make(map[string]string),
		Raw:       false,
	}
}

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Discover and render panda command prompts",
	Long: `List and render user-invoked command prompts. Commands are markdown
templates; rendering substitutes --arg values and executes {{bash ...}}
helpers.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var commandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discoverable commands",
	Run: func(cmd *cobra.Command, _ []string) {
		config := getCommandListConfigFromFlags(cmd)
		if err := listCommandsRun(cmd, config); err != nil {
			presenter.Error(err, "Failed to list commands")
			os.Exit(1)
		}
	},
}

var commandShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Render a command prompt",
	Long: `Render a command prompt with the given arguments.

Examples:
  panda command show commit-message
  panda command show release-notes --arg since=v1.2.0
  panda command show release-notes --raw`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := getCommandShowConfigFromFlags(cmd)
		if err != nil {
			presenter.Error(err, "Invalid arguments")
			os.Exit(1)
		}
		if err := showCommandRun(cmd, args[0], config); err != nil {
			presenter.Error(err, "Failed to render command")
			os.Exit(1)
		}
	},
}

func init() {
	listDefaults := NewCommandListConfig()
	commandListCmd.Flags().Bool("show-path", listDefaults.ShowPath, "Include each command's source path")
	commandListCmd.Flags().Bool("json", listDefaults.JSONOutput, "Output as JSON")

	commandShowCmd.Flags().StringArray("arg", nil, "Template argument as key=value (repeatable)")
	commandShowCmd.Flags().Bool("raw", false, "Print the template without rendering")

	commandCmd.AddCommand(commandListCmd)
	commandCmd.AddCommand(commandShowCmd)
	rootCmd.AddCommand(commandCmd)
}

func getCommandListConfigFromFlags(cmd *cobra.Command) *CommandListConfig {
	config := NewCommandListConfig()
	if showPath, err := cmd.Flags().GetBool("show-path"); err == nil {
		config.ShowPath = showPath
	}
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}
	return config
}

func getCommandShowConfigFromFlags(cmd *cobra.Command) (*CommandShowConfig, error) {
	config := NewCommandShowConfig()
	if raw, err := cmd.Flags().GetBool("raw"); err == nil {
		config.Raw = raw
	}

	pairs, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Errorf("invalid --arg %q, expected key=value", pair)
		}
		config.Arguments[key] = value
	}

	return config, nil
}

// CommandOutput is the JSON shape for one command.
type CommandOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"`
}

// CommandListOutput renders the command listing as a table or JSON.
type CommandListOutput struct {
	Commands   []CommandOutput
	JSONOutput bool
	ShowPath   bool
}

func NewCommandListOutput(list []*commands.Command, config *CommandListConfig) *CommandListOutput {
	output := &CommandListOutput{
		Commands:   make([]CommandOutput, 0, len(list)),
		JSONOutput: config.JSONOutput,
		ShowPath:   config.ShowPath,
	}

	for _, command := range list {
		entry := CommandOutput{
			ID:          command.ID,
			Name:        command.Name,
			Description: command.Description,
		}
		if config.ShowPath || config.JSONOutput {
			entry.Path = command.Path
		}
		output.Commands = append(output.Commands, entry)
	}

	return output
}

func (o *CommandListOutput) Render(w io.Writer) error {
	if o.JSONOutput {
		return renderJSON(w, struct {
			Commands []CommandOutput `json:"commands"`
		}{Commands: o.Commands})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if o.ShowPath {
		fmt.Fprintln(tw, "ID\tDESCRIPTION\tPATH")
	} else {
		fmt.Fprintln(tw, "ID\tDESCRIPTION")
	}
	for _, command := range o.Commands {
		if o.ShowPath {
			path := command.Path
			if path == "" {
				path = "(builtin)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", command.ID, command.Description, path)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", command.ID, command.Description)
		}
	}
	return tw.Flush()
}

func listCommandsRun(cmd *cobra.Command, config *CommandListConfig) error {
	ctx := cmd.Context()

	processor, err := commands.NewProcessor()
	if err != nil {
		return err
	}

	list, err := processor.List(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 && !config.JSONOutput {
		presenter.Info("No commands found")
		return nil
	}

	return NewCommandListOutput(list, config).Render(cmd.OutOrStdout())
}

func showCommandRun(cmd *cobra.Command, id string, config *CommandShowConfig) error {
	ctx := cmd.Context()

	processor, err := commands.NewProcessor()
	if err != nil {
		return err
	}

	if config.Raw {
		command, err := processor.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), command.Body)
		return nil
	}

	rendered, err := processor.Render(ctx, id, config.Arguments)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
