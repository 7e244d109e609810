package commands

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/panda-dev/panda/pkg/logger"
)

// bashTimeout bounds each {{bash}} call so a hung command cannot stall
// prompt rendering.
const bashTimeout = 30 * time.Second

// bashFunc returns the template helper that executes a command and splices
// its output into the rendered prompt. Failures render as an inline error
// marker rather than aborting the template.
func bashFunc(ctx context.Context) func(...string) string {
	return func(args ...string) string {
		if len(args) == 0 {
			return "[ERROR: bash function requires at least one argument]"
		}

		name := args[0]
		cmdArgs := args[1:]

		cmdCtx, cancel := context.WithTimeout(ctx, bashTimeout)
		defer cancel()

		output, err := exec.CommandContext(cmdCtx, name, cmdArgs...).CombinedOutput()
		if err != nil {
			full := strings.Join(args, " ")
			logger.G(ctx).WithError(err).WithField("command", full).Warn("Template bash command failed")
			return fmt.Sprintf("[ERROR executing command '%s': %v]", full, err)
		}

		return strings.TrimRight(string(output), "\n\r")
	}
}
