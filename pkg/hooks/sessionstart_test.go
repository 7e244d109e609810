package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStart(t *testing.T) {
	ctx := context.Background()

	t.Run("injects file content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PANDA.md")
		content := "# Project conventions\n\nUse \"make test\" before committing.\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		out := SessionStart(ctx, path)
		assert.Equal(t, SessionStartEvent, out.HookSpecificOutput.HookEventName)
		assert.Equal(t, content, out.HookSpecificOutput.AdditionalContext)
	})

	t.Run("missing file yields empty envelope", func(t *testing.T) {
		out := SessionStart(ctx, filepath.Join(t.TempDir(), "absent.md"))
		assert.Equal(t, SessionStartEvent, out.HookSpecificOutput.HookEventName)
		assert.Empty(t, out.HookSpecificOutput.AdditionalContext)
	})
}

func TestSessionStartWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PANDA.md")
	content := "line one\nline \"two\" with quotes\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var buf bytes.Buffer
	out := SessionStart(context.Background(), path)
	require.NoError(t, out.Write(&buf))

	// The envelope must round-trip: JSON escaping of newlines and quotes is
	// the whole point of this hook.
	var decoded SessionStartOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, SessionStartEvent, decoded.HookSpecificOutput.HookEventName)
	assert.Equal(t, content, decoded.HookSpecificOutput.AdditionalContext)
}
