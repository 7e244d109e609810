package skills

import (
	"bytes"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the metadata file each skill directory must contain.
const SkillFileName = "SKILL.md"

// LoadFile parses one SKILL.md file into a Skill. The returned skill carries
// its source path; namespace and directory are assigned by the caller.
func LoadFile(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}
	return parseSkill(content, path)
}

// LoadFS is LoadFile for an fs.FS, used for the embedded builtin skills.
func LoadFS(fsys fs.FS, name string) (*Skill, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}
	return parseSkill(content, name)
}

// parseSkill extracts the YAML frontmatter and body from SKILL.md content.
func parseSkill(content []byte, path string) (*Skill, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, &MalformedSkillError{Path: path, Reason: err.Error()}
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, &MalformedSkillError{Path: path, Reason: "missing frontmatter"}
	}

	name, _ := metaData["name"].(string)
	if name == "" {
		return nil, &MalformedSkillError{Path: path, Reason: "name is required in frontmatter"}
	}

	// Description is used for relevance matching only, so its absence is
	// tolerated with an empty default.
	description, _ := metaData["description"].(string)

	return &Skill{
		Name:        name,
		Description: description,
		Body:        extractBody(string(content)),
		Path:        path,
	}, nil
}

// extractBody removes the YAML frontmatter block and returns the body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}
