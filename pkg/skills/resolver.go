package skills

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ParseIdentifier splits a skill identifier of the form "[namespace:]name".
// The explicit flag reports whether a namespace prefix was present.
func ParseIdentifier(identifier string) (ns Namespace, name string, explicit bool, err error) {
	prefix, rest, found := strings.Cut(identifier, ":")
	if !found {
		if identifier == "" {
			return "", "", false, errors.Wrap(ErrNotFound, "empty skill identifier")
		}
		return "", identifier, false, nil
	}

	ns, ok := ParseNamespace(prefix)
	if !ok {
		return "", "", false, errors.Wrapf(ErrNotFound, "unknown namespace %q", prefix)
	}
	if rest == "" {
		return "", "", false, errors.Wrapf(ErrNotFound, "empty skill name in %q", identifier)
	}
	return ns, rest, true, nil
}

// Resolve maps an identifier to exactly one skill definition. A bare name
// searches project, then personal, then panda, returning the first match.
// An explicitly namespaced identifier is looked up only in that namespace,
// with no fallback. Resolution is a pure function of the current filesystem
// state; each call rescans the roots.
func (r *Registry) Resolve(ctx context.Context, identifier string) (*Skill, error) {
	ns, name, explicit, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	all, err := r.ListSkills(ctx)
	if err != nil {
		return nil, err
	}

	// ListSkills returns skills in precedence order with per-namespace
	// dedupe already applied, so the first hit is the effective definition.
	for _, skill := range all {
		if skill.Name != name {
			continue
		}
		if explicit && skill.Namespace != ns {
			continue
		}
		return skill, nil
	}

	if explicit {
		return nil, errors.Wrapf(ErrNotFound, "skill %q not found in namespace %s", name, ns)
	}
	return nil, errors.Wrapf(ErrNotFound, "skill %q not found in any namespace", name)
}
