package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panda-dev/panda/pkg/commands"
)

func testCommands() []*commands.Command {
	return []*commands.Command{
		{ID: "commit-message", Name: "commit-message", Description: "Write a commit message"},
		{ID: "ship", Name: "ship", Description: "Ship the branch", Path: ".panda/commands/ship.md"},
	}
}

func TestCommandListOutputTable(t *testing.T) {
	t.Run("default columns", func(t *testing.T) {
		var buf bytes.Buffer
		output := NewCommandListOutput(testCommands(), NewCommandListConfig())
		require.NoError(t, output.Render(&buf))

		rendered := buf.String()
		assert.Contains(t, rendered, "commit-message")
		assert.Contains(t, rendered, "Ship the branch")
	})

	t.Run("builtin marker in path column", func(t *testing.T) {
		var buf bytes.Buffer
		config := NewCommandListConfig()
		config.ShowPath = true
		output := NewCommandListOutput(testCommands(), config)
		require.NoError(t, output.Render(&buf))

		rendered := buf.String()
		assert.Contains(t, rendered, "(builtin)")
		assert.Contains(t, rendered, ".panda/commands/ship.md")
	})
}

func TestCommandListOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	config := NewCommandListConfig()
	config.JSONOutput = true
	output := NewCommandListOutput(testCommands(), config)
	require.NoError(t, output.Render(&buf))

	var decoded struct {
		Commands []CommandOutput `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Commands, 2)
	assert.Equal(t, "commit-message", decoded.Commands[0].ID)
}

func newShowFlagsCommand(argValues ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "show"}
	cmd.Flags().StringArray("arg", nil, "")
	cmd.Flags().Bool("raw", false, "")
	for _, value := range argValues {
		cmd.Flags().Set("arg", value)
	}
	return cmd
}

func TestGetCommandShowConfigFromFlags(t *testing.T) {
	t.Run("parses key=value pairs", func(t *testing.T) {
		cmd := newShowFlagsCommand("since=v1.2.0", "scope=api")

		config, err := getCommandShowConfigFromFlags(cmd)
		require.NoError(t, err)
		assert.Equal(t, "v1.2.0", config.Arguments["since"])
		assert.Equal(t, "api", config.Arguments["scope"])
	})

	t.Run("value may contain equals", func(t *testing.T) {
		cmd := newShowFlagsCommand("query=a=b")

		config, err := getCommandShowConfigFromFlags(cmd)
		require.NoError(t, err)
		assert.Equal(t, "a=b", config.Arguments["query"])
	})

	t.Run("rejects malformed pair", func(t *testing.T) {
		cmd := newShowFlagsCommand("no-equals-here")

		_, err := getCommandShowConfigFromFlags(cmd)
		assert.Error(t, err)
	})
}
