package skills

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("enabled by default", func(t *testing.T) {
		viper.Reset()
		registry, enabled := Initialize(ctx)
		assert.True(t, enabled)
		assert.NotNil(t, registry)
	})

	t.Run("no_skills flag disables", func(t *testing.T) {
		viper.Reset()
		viper.Set("no_skills", true)
		defer viper.Reset()

		registry, enabled := Initialize(ctx)
		assert.False(t, enabled)
		assert.Nil(t, registry)
	})

	t.Run("skills.enabled false disables", func(t *testing.T) {
		viper.Reset()
		viper.Set("skills.enabled", false)
		defer viper.Reset()

		_, enabled := Initialize(ctx)
		assert.False(t, enabled)
	})

	t.Run("configured tier directories are honored", func(t *testing.T) {
		projectDir := t.TempDir()
		writeSkill(t, projectDir, "local-skill", "local-skill", "Configured project tier")

		viper.Reset()
		viper.Set("skills.project_dir", projectDir)
		defer viper.Reset()

		registry, enabled := Initialize(ctx)
		require.True(t, enabled)

		skill, err := registry.Resolve(ctx, "project:local-skill")
		require.NoError(t, err)
		assert.Equal(t, "Configured project tier", skill.Description)
	})

	t.Run("allowlist from config", func(t *testing.T) {
		projectDir := t.TempDir()
		writeSkill(t, projectDir, "allowed-one", "allowed-one", "Kept")
		writeSkill(t, projectDir, "other", "other", "Filtered")

		viper.Reset()
		viper.Set("skills.project_dir", projectDir)
		viper.Set("skills.allowed", []string{"allowed-*"})
		defer viper.Reset()

		registry, enabled := Initialize(ctx)
		require.True(t, enabled)

		skills, err := registry.ListSkills(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(skills))
		for _, skill := range skills {
			names = append(names, skill.Name)
		}
		assert.Contains(t, names, "allowed-one")
		assert.NotContains(t, names, "other")
	})
}
