// Package scaffold materializes the embedded FastAPI clean-architecture
// project template into a new directory. It writes through the filesystem
// abstraction so it can be exercised entirely in memory.
package scaffold

import (
	"embed"
	"fmt"
	"path"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

//go:embed templates
var templates embed.FS

// projectFiles maps target paths within the new project to template names.
// An empty template name produces an empty file (package markers).
var projectFiles = map[string]string{
	"app/__init__.py":                 "",
	"app/main.py":                     "main.py",
	"app/core/__init__.py":            "",
	"app/core/config.py":              "config.py",
	"app/core/dependencies.py":        "dependencies.py",
	"app/routers/__init__.py":         "routers_init.py",
	"app/routers/health.py":           "router_health.py",
	"app/services/__init__.py":        "",
	"app/services/health_service.py":  "service_health.py",
	"app/schemas/__init__.py":         "",
	"app/schemas/health.py":           "schemas_health.py",
	"tests/__init__.py":               "",
	"tests/conftest.py":               "conftest.py",
	"Dockerfile":                      "Dockerfile",
	"docker-compose.yml":              "docker-compose.yml",
	"docker-compose.override.yml":     "docker-compose.override.yml",
	"docker-compose.prod.yml":         "docker-compose.prod.yml",
	"requirements.txt":                "requirements.txt",
	"pyproject.toml":                  "pyproject.toml",
}

const envExample = "PROJECT_NAME=fastapi-app\nVERSION=0.1.0\nDEBUG=false\n"

// Create materializes the project template as a new directory named after
// the project under the root of fsys. It refuses to overwrite an existing
// directory.
func Create(fsys fs.Filesystem, name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	exists, err := fsys.Exists(name)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if exists {
		return fmt.Errorf("directory %q already exists", name)
	}

	if err := fsys.MkdirAll(name, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	for target, source := range projectFiles {
		content := []byte{}
		if source != "" {
			data, readErr := templates.ReadFile(path.Join("templates", source))
			if readErr != nil {
				return fmt.Errorf("missing template %q: %w", source, readErr)
			}
			content = data
		}

		full := path.Join(name, target)
		if dir := path.Dir(full); dir != "." {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %q: %w", dir, err)
			}
		}

		if err := fsys.WriteFile(full, content, 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", full, err)
		}
	}

	if err := fsys.WriteFile(path.Join(name, ".env.example"), []byte(envExample), 0o644); err != nil {
		return fmt.Errorf("failed to write .env.example: %w", err)
	}

	readme := fmt.Sprintf("# %s\n\nFastAPI Clean Architecture Application\n", name)
	if err := fsys.WriteFile(path.Join(name, "README.md"), []byte(readme), 0o644); err != nil {
		return fmt.Errorf("failed to write README.md: %w", err)
	}

	return nil
}

// NextSteps returns the post-creation hint printed by the CLI.
func NextSteps(name string) []string {
	return []string{
		"cd " + name,
		"cp .env.example .env",
		"docker compose up -d",
	}
}
