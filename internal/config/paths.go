package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rodrigobdz/lint-staged/internal/constants"
	"github.com/rodrigobdz/lint-staged/internal/errors"
)

// FindConfigFile returns the first configuration file found at repoRoot,
// following constants.ConfigFileNames order. A package.json only counts
// when it carries a "lint-staged" key.
func FindConfigFile(repoRoot string) (string, error) {
	for _, name := range constants.ConfigFileNames {
		path := filepath.Join(repoRoot, name)
		if !fileExists(path) {
			continue
		}
		if name == constants.PackageJSONFileName && !packageJSONHasKey(path) {
			continue
		}
		return path, nil
	}
	return "", errors.Wrapf(errors.ErrConfigNotFound, "searched %s", repoRoot)
}

// packageJSONHasKey reports whether the package.json at path has a top-level
// "lint-staged" key. Unreadable or malformed manifests are treated as absent.
func packageJSONHasKey(path string) bool {
	data, err := os.ReadFile(path) //#nosec G304 -- path is built from the repository root
	if err != nil {
		return false
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false
	}
	_, ok := lookupKey(documentRoot(&root), constants.PackageJSONKey)
	return ok
}

// fileExists returns true if a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
