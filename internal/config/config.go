// Package config loads the sync settings from the global and project
// configuration files. The global file lives under the XDG config home;
// a project may override it with a .branchsync.yaml at the repository
// root. Command-line flags override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// GlobalFileName is the config file path relative to the XDG config home.
	GlobalFileName = "branchsync/config.yaml"

	// ProjectFileName is the per-repository override file.
	ProjectFileName = ".branchsync.yaml"
)

// Identity names the committer of replay commits.
type Identity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Config holds the sync settings.
type Config struct {
	// Source is the authoritative branch. Defaults to "main".
	Source string `yaml:"source"`

	// Remote is the remote targets are discovered on and published to.
	// Defaults to "origin".
	Remote string `yaml:"remote"`

	// ConflictPolicy selects the replay conflict handling: "ours" keeps
	// the target branch content for conflicting files, "fail" marks the
	// branch failed instead. Defaults to "ours".
	ConflictPolicy string `yaml:"conflict_policy"`

	// Committer identifies the committer of replay commits. When empty,
	// each replayed commit's original author is reused.
	Committer Identity `yaml:"committer"`

	// TokenEnv names the environment variable holding the HTTPS access
	// token for the remote. Defaults to "BRANCHSYNC_TOKEN".
	TokenEnv string `yaml:"token_env"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Source:         "main",
		Remote:         "origin",
		ConflictPolicy: "ours",
		TokenEnv:       "BRANCHSYNC_TOKEN",
	}
}

// Load resolves the effective configuration for a repository rooted at
// projectDir: defaults, overlaid by the global file, overlaid by the
// project file. Missing files are fine; malformed ones are not.
func Load(projectDir string) (Config, error) {
	cfg := Default()

	globalPath := filepath.Join(xdg.ConfigHome, GlobalFileName)
	if err := mergeFile(&cfg, globalPath); err != nil {
		return cfg, err
	}

	projectPath := filepath.Join(projectDir, ProjectFileName)
	if err := mergeFile(&cfg, projectPath); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// mergeFile overlays the settings from one yaml file onto cfg. Only the
// fields present in the file take effect.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("malformed config %s: %w", path, err)
	}

	if overlay.Source != "" {
		cfg.Source = overlay.Source
	}
	if overlay.Remote != "" {
		cfg.Remote = overlay.Remote
	}
	if overlay.ConflictPolicy != "" {
		cfg.ConflictPolicy = overlay.ConflictPolicy
	}
	if overlay.Committer.Name != "" {
		cfg.Committer.Name = overlay.Committer.Name
	}
	if overlay.Committer.Email != "" {
		cfg.Committer.Email = overlay.Committer.Email
	}
	if overlay.TokenEnv != "" {
		cfg.TokenEnv = overlay.TokenEnv
	}

	return nil
}
