package detect

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mailposture/mailposture/internal/appdir"
)

//go:embed patterns.yaml
var embeddedPatterns []byte

// EmailPattern maps an MX exchange suffix to an email provider name.
type EmailPattern struct {
	Suffix   string `yaml:"suffix"`
	Provider string `yaml:"provider"`
}

// Patterns holds all provider signature tables.
type Patterns struct {
	Email []EmailPattern `yaml:"email"`
}

// LoadPatterns tries each path in order; the first file that exists is used.
// Falls back to the embedded patterns.yaml when no override file is found.
func LoadPatterns(paths ...string) (Patterns, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Patterns{}, fmt.Errorf("reading patterns file %q: %w", path, err)
		}
		var p Patterns
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Patterns{}, fmt.Errorf("parsing patterns file %q: %w", path, err)
		}
		return p, nil
	}
	var p Patterns
	if err := yaml.Unmarshal(embeddedPatterns, &p); err != nil {
		return Patterns{}, fmt.Errorf("parsing embedded patterns: %w", err)
	}
	return p, nil
}

// DefaultPatternPaths returns the user override path checked before the
// embedded defaults. Derives from appdir.ConfigDir().
func DefaultPatternPaths() ([]string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	return []string{filepath.Join(dir, "providers.yaml")}, nil
}
