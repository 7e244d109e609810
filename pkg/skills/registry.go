package skills

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/panda-dev/panda/pkg/logger"
)

// Root is one (namespace, directory) search root. Several roots may share a
// namespace; scan order within a namespace follows root order.
type Root struct {
	Namespace Namespace
	Dir       string
}

// Registry enumerates skill definitions across the configured search roots.
// Every listing rescans the filesystem; the registry holds no cached state.
type Registry struct {
	roots    []Root
	builtins fs.FS // lowest-precedence panda tier, may be nil
	allowed  []glob.Glob
}

// Option configures a Registry.
type Option func(*Registry) error

// WithRoots sets explicit search roots, replacing the defaults. Roots must
// be ordered by decreasing precedence.
func WithRoots(roots ...Root) Option {
	return func(r *Registry) error {
		if len(roots) == 0 {
			return errors.New("at least one search root must be specified")
		}
		r.roots = roots
		return nil
	}
}

// WithDefaultRoots configures the well-known search roots: the repo-local
// project tier, the user-global personal tier, and the installed plugin's
// panda tier.
func WithDefaultRoots() Option {
	return func(r *Registry) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		r.roots = []Root{
			{Namespace: NamespaceProject, Dir: filepath.Join(".panda", "skills")},
			{Namespace: NamespacePersonal, Dir: filepath.Join(homeDir, ".panda", "skills")},
			{Namespace: NamespacePanda, Dir: filepath.Join(homeDir, ".panda", "plugins", "panda", "skills")},
		}
		r.builtins = Builtins()
		return nil
	}
}

// WithBuiltins sets the embedded skill set serving as the lowest-precedence
// panda tier. Pass nil to disable builtins.
func WithBuiltins(fsys fs.FS) Option {
	return func(r *Registry) error {
		r.builtins = fsys
		return nil
	}
}

// WithAllowedPatterns restricts listing and resolution to skills whose name
// or qualified identifier matches one of the glob patterns, e.g. "panda:*".
// An empty pattern list allows everything.
func WithAllowedPatterns(patterns ...string) Option {
	return func(r *Registry) error {
		for _, pattern := range patterns {
			compiled, err := glob.Compile(pattern)
			if err != nil {
				return errors.Wrapf(err, "invalid allowlist pattern %q", pattern)
			}
			r.allowed = append(r.allowed, compiled)
		}
		return nil
	}
}

// NewRegistry creates a skill registry. With no options the well-known
// default roots are used.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{}

	if len(opts) == 0 {
		if err := WithDefaultRoots()(r); err != nil {
			return nil, err
		}
		return r, nil
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if len(r.roots) == 0 {
		if err := WithDefaultRoots()(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ListSkills rescans all search roots and returns every discoverable skill
// in precedence order. Within a namespace, duplicate names resolve to the
// first discovered definition; across namespaces duplicates are expected
// and retained. Missing root directories are treated as empty, and
// malformed skill files are skipped with a warning.
func (r *Registry) ListSkills(ctx context.Context) ([]*Skill, error) {
	var out []*Skill

	for _, ns := range precedence {
		seen := make(map[string]bool)

		for _, root := range r.roots {
			if root.Namespace != ns {
				continue
			}
			out = r.scanRoot(ctx, root, seen, out)
		}

		if ns == NamespacePanda && r.builtins != nil {
			out = r.scanBuiltins(ctx, seen, out)
		}
	}

	return r.filterAllowed(out), nil
}

// scanRoot appends the skills under one root directory, skipping names
// already seen in the root's namespace.
func (r *Registry) scanRoot(ctx context.Context, root Root, seen map[string]bool, out []*Skill) []*Skill {
	entries, err := os.ReadDir(root.Dir)
	if err != nil {
		// A missing search root is not an error.
		return out
	}

	for _, entry := range entries {
		entryPath := filepath.Join(root.Dir, entry.Name())

		// Stat rather than entry.IsDir so symlinked skill directories work.
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skill, err := LoadFile(filepath.Join(entryPath, SkillFileName))
		if err != nil {
			if IsMalformed(err) {
				logger.G(ctx).WithError(err).WithField("namespace", root.Namespace).
					Warn("Skipping malformed skill")
			}
			continue
		}

		if seen[skill.Name] {
			logger.G(ctx).WithFields(map[string]interface{}{
				"namespace": root.Namespace,
				"skill":     skill.Name,
			}).Debug("Duplicate skill name in namespace, keeping first discovered")
			continue
		}
		seen[skill.Name] = true

		skill.Namespace = root.Namespace
		skill.Dir = entryPath
		out = append(out, skill)
	}

	return out
}

// scanBuiltins appends embedded builtin skills not shadowed by an installed
// panda-tier skill of the same name.
func (r *Registry) scanBuiltins(ctx context.Context, seen map[string]bool, out []*Skill) []*Skill {
	entries, err := fs.ReadDir(r.builtins, ".")
	if err != nil {
		return out
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		skill, err := LoadFS(r.builtins, entry.Name()+"/"+SkillFileName)
		if err != nil {
			if IsMalformed(err) {
				logger.G(ctx).WithError(err).Warn("Skipping malformed builtin skill")
			}
			continue
		}

		if seen[skill.Name] {
			continue
		}
		seen[skill.Name] = true

		skill.Namespace = NamespacePanda
		out = append(out, skill)
	}

	return out
}

// filterAllowed applies the allowlist patterns. Patterns match either the
// bare name or the qualified "namespace:name" form.
func (r *Registry) filterAllowed(skills []*Skill) []*Skill {
	if len(r.allowed) == 0 {
		return skills
	}

	filtered := make([]*Skill, 0, len(skills))
	for _, skill := range skills {
		for _, pattern := range r.allowed {
			if pattern.Match(skill.Name) || pattern.Match(skill.Qualified()) {
				filtered = append(filtered, skill)
				break
			}
		}
	}
	return filtered
}

// Validate rescans all roots and aggregates every malformed skill file and
// same-namespace duplicate into a single error. A nil result means the
// installation is healthy. Backs the doctor command.
func (r *Registry) Validate(ctx context.Context) error {
	var result *multierror.Error

	for _, ns := range precedence {
		firstDir := make(map[string]string)

		for _, root := range r.roots {
			if root.Namespace != ns {
				continue
			}

			entries, err := os.ReadDir(root.Dir)
			if err != nil {
				continue
			}

			for _, entry := range entries {
				entryPath := filepath.Join(root.Dir, entry.Name())
				info, err := os.Stat(entryPath)
				if err != nil || !info.IsDir() {
					continue
				}

				skill, err := LoadFile(filepath.Join(entryPath, SkillFileName))
				if err != nil {
					if IsMalformed(err) {
						result = multierror.Append(result, err)
					}
					continue
				}

				if prev, dup := firstDir[skill.Name]; dup {
					result = multierror.Append(result, errors.Errorf(
						"duplicate skill %q in namespace %s: %s shadowed by %s",
						skill.Name, ns, entryPath, prev))
					continue
				}
				firstDir[skill.Name] = entryPath
			}
		}
	}

	return result.ErrorOrNil()
}
