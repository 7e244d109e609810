package skills

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/panda-dev/panda/pkg/logger"
)

// Initialize builds a registry from configuration and CLI flags. It reads
// skills.enabled from config and respects the --no-skills flag (bound to
// no_skills in viper). The boolean reports whether skills are enabled.
func Initialize(ctx context.Context) (*Registry, bool) {
	if viper.GetBool("no_skills") {
		return nil, false
	}
	if viper.IsSet("skills.enabled") && !viper.GetBool("skills.enabled") {
		return nil, false
	}

	var opts []Option
	if roots, ok := rootsFromConfig(ctx); ok {
		opts = append(opts, WithRoots(roots...), WithBuiltins(Builtins()))
	}
	if allowed := viper.GetStringSlice("skills.allowed"); len(allowed) > 0 {
		opts = append(opts, WithAllowedPatterns(allowed...))
	}

	registry, err := NewRegistry(opts...)
	if err != nil {
		logger.G(ctx).WithError(err).Debug("Failed to create skill registry")
		return nil, false
	}

	return registry, true
}

// rootsFromConfig assembles search roots when any tier directory is
// overridden in config. Unset tiers keep their well-known defaults.
func rootsFromConfig(ctx context.Context) ([]Root, bool) {
	projectDir := viper.GetString("skills.project_dir")
	personalDir := viper.GetString("skills.personal_dir")
	pluginDir := viper.GetString("skills.plugin_dir")

	if projectDir == "" && personalDir == "" && pluginDir == "" {
		return nil, false
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.G(ctx).WithError(err).Debug("Failed to get user home directory")
		return nil, false
	}

	if projectDir == "" {
		projectDir = filepath.Join(".panda", "skills")
	}
	if personalDir == "" {
		personalDir = filepath.Join(homeDir, ".panda", "skills")
	}
	if pluginDir == "" {
		pluginDir = filepath.Join(homeDir, ".panda", "plugins", "panda", "skills")
	}

	return []Root{
		{Namespace: NamespaceProject, Dir: projectDir},
		{Namespace: NamespacePersonal, Dir: personalDir},
		{Namespace: NamespacePanda, Dir: pluginDir},
	}, true
}
