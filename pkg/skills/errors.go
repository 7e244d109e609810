package skills

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when an identifier resolves in no namespace, or
// when an explicitly namespaced identifier is absent from that namespace.
var ErrNotFound = errors.New("skill not found")

// MalformedSkillError reports a SKILL.md file that violates the header
// contract. Discovery skips such files with a warning; a direct load
// surfaces the error to the caller.
type MalformedSkillError struct {
	Path   string
	Reason string
}

func (e *MalformedSkillError) Error() string {
	return fmt.Sprintf("malformed skill %s: %s", e.Path, e.Reason)
}

// IsMalformed reports whether err is (or wraps) a MalformedSkillError.
func IsMalformed(err error) bool {
	var malformed *MalformedSkillError
	return errors.As(err, &malformed)
}
