// Package commands implements discovery and rendering of panda command
// prompts. Unlike skills, which the model invokes on its own, commands are
// user-invoked: single markdown files with optional YAML frontmatter,
// rendered through text/template with named arguments and a bash helper
// before being handed to the agent.
package commands

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/panda-dev/panda/pkg/logger"
)

// ErrNotFound is returned when no configured directory contains the
// requested command.
var ErrNotFound = errors.New("command not found")

// Command represents a discovered command prompt.
type Command struct {
	ID          string // filename stem, the invocation name
	Name        string // display name from frontmatter, falls back to ID
	Description string // from frontmatter, may be empty
	Path        string // source file, empty for builtin commands
	Body        string // template content after frontmatter
}

// Processor discovers and renders commands from precedence-ordered
// directories. Earlier directories shadow later ones by filename.
type Processor struct {
	dirs     []string
	builtins fs.FS
}

// Option configures a Processor.
type Option func(*Processor) error

// WithCommandDirs sets explicit command directories, highest precedence first.
func WithCommandDirs(dirs ...string) Option {
	return func(p *Processor) error {
		if len(dirs) == 0 {
			return errors.New("at least one command directory must be specified")
		}
		p.dirs = dirs
		return nil
	}
}

// WithDefaultDirs configures the well-known command directories.
func WithDefaultDirs() Option {
	return func(p *Processor) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		p.dirs = []string{
			filepath.Join(".panda", "commands"),
			filepath.Join(homeDir, ".panda", "commands"),
			filepath.Join(homeDir, ".panda", "plugins", "panda", "commands"),
		}
		p.builtins = Builtins()
		return nil
	}
}

// WithBuiltins sets the embedded command set used as the final fallback.
func WithBuiltins(fsys fs.FS) Option {
	return func(p *Processor) error {
		p.builtins = fsys
		return nil
	}
}

// NewProcessor creates a command processor. With no options the well-known
// default directories are used.
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(p); err != nil {
			return nil, err
		}
		return p, nil
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if len(p.dirs) == 0 {
		if err := WithDefaultDirs()(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// List returns all discoverable commands in precedence order, deduplicated
// by ID with first-discovered-wins. Missing directories are skipped.
func (p *Processor) List(ctx context.Context) ([]*Command, error) {
	var out []*Command
	seen := make(map[string]bool)

	for _, dir := range p.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			content, err := os.ReadFile(path)
			if err != nil {
				logger.G(ctx).WithError(err).WithField("path", path).Warn("Skipping unreadable command")
				continue
			}

			cmd := parseCommand(content, strings.TrimSuffix(entry.Name(), ".md"), path)
			if seen[cmd.ID] {
				continue
			}
			seen[cmd.ID] = true
			out = append(out, cmd)
		}
	}

	if p.builtins != nil {
		entries, err := fs.ReadDir(p.builtins, ".")
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
					continue
				}

				content, err := fs.ReadFile(p.builtins, entry.Name())
				if err != nil {
					continue
				}

				cmd := parseCommand(content, strings.TrimSuffix(entry.Name(), ".md"), "")
				if seen[cmd.ID] {
					continue
				}
				seen[cmd.ID] = true
				out = append(out, cmd)
			}
		}
	}

	return out, nil
}

// Get returns a single command by ID, honoring directory precedence.
func (p *Processor) Get(ctx context.Context, id string) (*Command, error) {
	all, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cmd := range all {
		if cmd.ID == id {
			return cmd, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "command %q not found in directories %v", id, p.dirs)
}

// Render loads a command and executes its body as a text/template with the
// given arguments. Templates may call {{bash "cmd" "arg"...}} to splice in
// command output.
func (p *Processor) Render(ctx context.Context, id string, args map[string]string) (string, error) {
	cmd, err := p.Get(ctx, id)
	if err != nil {
		return "", err
	}

	logger.G(ctx).WithField("command", cmd.ID).Debug("Rendering command template")

	tmpl, err := template.New(cmd.ID).Funcs(template.FuncMap{
		"bash": bashFunc(ctx),
	}).Parse(cmd.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse command template %q", cmd.ID)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, args); err != nil {
		return "", errors.Wrapf(err, "failed to execute command template %q", cmd.ID)
	}

	return buf.String(), nil
}

// parseCommand extracts frontmatter leniently: commands without frontmatter
// are valid, and a missing name falls back to the filename stem.
func parseCommand(content []byte, id, path string) *Command {
	cmd := &Command{ID: id, Name: id, Path: path}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		cmd.Body = string(content)
		return cmd
	}

	metaData := meta.Get(pctx)
	if metaData != nil {
		if name, _ := metaData["name"].(string); name != "" {
			cmd.Name = name
		}
		cmd.Description, _ = metaData["description"].(string)
	}

	cmd.Body = stripFrontmatter(string(content))
	return cmd
}

// stripFrontmatter removes a leading YAML frontmatter block, if any.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return content
}
