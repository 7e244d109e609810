// Package skills implements discovery and resolution of panda skills.
// Skills are packaged as directories containing a SKILL.md file with YAML
// frontmatter describing the skill's purpose, followed by the instructions
// the agent consumes. Skills are discovered from three provenance tiers
// (project, personal, panda) with project taking precedence over personal,
// and personal over panda.
package skills

import "fmt"

// Namespace identifies the provenance tier a skill was discovered under.
type Namespace string

// The three fixed namespaces, in decreasing precedence.
const (
	NamespaceProject  Namespace = "project"
	NamespacePersonal Namespace = "personal"
	NamespacePanda    Namespace = "panda"
)

// precedence is the fixed namespace search order for bare identifiers.
var precedence = []Namespace{NamespaceProject, NamespacePersonal, NamespacePanda}

// ParseNamespace maps a namespace token to its Namespace value.
func ParseNamespace(s string) (Namespace, bool) {
	switch Namespace(s) {
	case NamespaceProject, NamespacePersonal, NamespacePanda:
		return Namespace(s), true
	}
	return "", false
}

// Skill represents a discovered skill definition.
type Skill struct {
	Name        string    // unique within its namespace
	Description string    // free text used for relevance matching, may be empty
	Body        string    // instructions (SKILL.md content after frontmatter)
	Namespace   Namespace // tier the skill was discovered under
	Dir         string    // skill directory, empty for builtin skills
	Path        string    // SKILL.md path, for diagnostics
}

// Qualified returns the fully namespaced identifier, e.g. "panda:create-pr".
func (s *Skill) Qualified() string {
	return fmt.Sprintf("%s:%s", s.Namespace, s.Name)
}

// Metadata represents the YAML frontmatter in SKILL.md files. Name is
// required; a missing description is tolerated and defaults to empty.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
