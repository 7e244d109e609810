// Package hooks implements the agent runtime hook payloads emitted by the
// panda plugin. The session-start hook injects project context into a new
// agent session by printing a JSON envelope on stdout.
package hooks

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/panda-dev/panda/pkg/logger"
)

// SessionStartEvent is the hook event name the agent runtime dispatches on.
const SessionStartEvent = "SessionStart"

// DefaultContextFile is the project context file injected at session start.
var DefaultContextFile = filepath.Join(".panda", "PANDA.md")

// SessionStartOutput is the envelope the agent runtime expects on stdout
// from a session-start hook.
type SessionStartOutput struct {
	HookSpecificOutput SessionStartContext `json:"hookSpecificOutput"`
}

// SessionStartContext carries the injected context content.
type SessionStartContext struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// SessionStart builds the session-start envelope from the given context
// file. A missing or unreadable file yields an empty envelope rather than
// an error: the hook must never break session start.
func SessionStart(ctx context.Context, path string) *SessionStartOutput {
	if path == "" {
		path = DefaultContextFile
	}

	out := &SessionStartOutput{
		HookSpecificOutput: SessionStartContext{HookEventName: SessionStartEvent},
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.G(ctx).WithError(err).WithField("path", path).Warn("Failed to read session context file")
		}
		return out
	}

	out.HookSpecificOutput.AdditionalContext = string(content)
	return out
}

// Write encodes the envelope as JSON to w.
func (o *SessionStartOutput) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(o); err != nil {
		return errors.Wrap(err, "failed to encode session-start output")
	}
	return nil
}
