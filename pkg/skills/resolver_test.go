package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		identifier string
		ns         Namespace
		name       string
		explicit   bool
		wantErr    bool
	}{
		{identifier: "brainstorming", name: "brainstorming"},
		{identifier: "panda:brainstorming", ns: NamespacePanda, name: "brainstorming", explicit: true},
		{identifier: "project:deploy", ns: NamespaceProject, name: "deploy", explicit: true},
		{identifier: "personal:notes", ns: NamespacePersonal, name: "notes", explicit: true},
		{identifier: "unknown:thing", wantErr: true},
		{identifier: "panda:", wantErr: true},
		{identifier: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			ns, name, explicit, err := ParseIdentifier(tt.identifier)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ns, ns)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.explicit, explicit)
		})
	}
}

// The resolution scenario from the install docs: an empty project tier, a
// personal brainstorming skill, and panda shipping both brainstorming and
// create-pr.
func newScenarioRegistry(t *testing.T) *Registry {
	t.Helper()

	projectDir := t.TempDir()
	personalDir := t.TempDir()
	pandaDir := t.TempDir()
	writeSkill(t, personalDir, "brainstorming", "brainstorming", "From personal")
	writeSkill(t, pandaDir, "brainstorming", "brainstorming", "From panda")
	writeSkill(t, pandaDir, "create-pr", "create-pr", "From panda")

	return newTestRegistry(t,
		Root{Namespace: NamespaceProject, Dir: projectDir},
		Root{Namespace: NamespacePersonal, Dir: personalDir},
		Root{Namespace: NamespacePanda, Dir: pandaDir},
	)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	registry := newScenarioRegistry(t)

	t.Run("bare name prefers higher tier", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "brainstorming")
		require.NoError(t, err)
		assert.Equal(t, NamespacePersonal, skill.Namespace)
		assert.Equal(t, "From personal", skill.Description)
	})

	t.Run("explicit namespace bypasses precedence", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "panda:brainstorming")
		require.NoError(t, err)
		assert.Equal(t, NamespacePanda, skill.Namespace)
		assert.Equal(t, "From panda", skill.Description)
	})

	t.Run("bare name falls through to panda", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "create-pr")
		require.NoError(t, err)
		assert.Equal(t, NamespacePanda, skill.Namespace)
	})

	t.Run("explicit form matches owning namespace", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "panda:create-pr")
		require.NoError(t, err)
		assert.Equal(t, "panda:create-pr", skill.Qualified())
	})

	t.Run("missing skill", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "missing")
		assert.Nil(t, skill)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("explicit namespace has no fallback", func(t *testing.T) {
		skill, err := registry.Resolve(ctx, "project:brainstorming")
		assert.Nil(t, skill)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "project")
	})

	t.Run("unknown namespace prefix", func(t *testing.T) {
		_, err := registry.Resolve(ctx, "enterprise:brainstorming")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), `unknown namespace "enterprise"`)
	})
}

func TestResolvePrecedenceIsTotal(t *testing.T) {
	ctx := context.Background()

	projectDir := t.TempDir()
	personalDir := t.TempDir()
	pandaDir := t.TempDir()
	writeSkill(t, projectDir, "shared", "shared", "From project")
	writeSkill(t, personalDir, "shared", "shared", "From personal")
	writeSkill(t, pandaDir, "shared", "shared", "From panda")

	roots := []Root{
		{Namespace: NamespaceProject, Dir: projectDir},
		{Namespace: NamespacePersonal, Dir: personalDir},
		{Namespace: NamespacePanda, Dir: pandaDir},
	}

	t.Run("project wins when present everywhere", func(t *testing.T) {
		registry := newTestRegistry(t, roots...)
		skill, err := registry.Resolve(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "From project", skill.Description)
	})

	t.Run("personal wins when project is absent", func(t *testing.T) {
		registry := newTestRegistry(t, roots[1:]...)
		skill, err := registry.Resolve(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "From personal", skill.Description)
	})

	t.Run("panda is the final fallback", func(t *testing.T) {
		registry := newTestRegistry(t, roots[2:]...)
		skill, err := registry.Resolve(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "From panda", skill.Description)
	})

	t.Run("each tier remains explicitly addressable", func(t *testing.T) {
		registry := newTestRegistry(t, roots...)
		for ns, want := range map[Namespace]string{
			NamespaceProject:  "From project",
			NamespacePersonal: "From personal",
			NamespacePanda:    "From panda",
		} {
			skill, err := registry.Resolve(ctx, string(ns)+":shared")
			require.NoError(t, err)
			assert.Equal(t, want, skill.Description)
		}
	})
}

func TestResolveAllRootsEmpty(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(t,
		Root{Namespace: NamespaceProject, Dir: t.TempDir()},
		Root{Namespace: NamespacePersonal, Dir: t.TempDir()},
		Root{Namespace: NamespacePanda, Dir: t.TempDir()},
	)

	_, err := registry.Resolve(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}
