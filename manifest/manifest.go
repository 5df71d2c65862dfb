// Package manifest handles ember.toml player configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an ember.toml player configuration.
type Manifest struct {
	Project Project  `toml:"project"`
	Runtime Runtime  `toml:"runtime"`
	Source  Source   `toml:"source"`
	Domains []Domain `toml:"domains"`

	// Dir is the directory containing the ember.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Runtime configures the resolution core.
type Runtime struct {
	// DomainMemory is the initial domain memory length in bytes.
	DomainMemory int `toml:"domain-memory"`

	// UnitCache is the path of the persistent unit cache database,
	// relative to the manifest directory. Empty disables caching.
	UnitCache string `toml:"unit-cache"`
}

// Source configures compiled unit locations.
type Source struct {
	Dirs []string `toml:"dirs"`
}

// Domain declares one child domain to create under the global domain.
type Domain struct {
	Name   string `toml:"name"`
	Parent string `toml:"parent"`
}

// Load parses an ember.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "ember.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Runtime.DomainMemory == 0 {
		m.Runtime.DomainMemory = 1024
	}
	if len(m.Source.Dirs) == 0 {
		m.Source.Dirs = []string{"units"}
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an ember.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "ember.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	if m.Runtime.DomainMemory < 0 {
		return fmt.Errorf("runtime.domain-memory must not be negative")
	}

	seen := map[string]bool{}
	for _, d := range m.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain declared without a name")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate domain %q", d.Name)
		}
		seen[d.Name] = true
	}
	// Parents must be declared earlier (or be the implicit global domain).
	declared := map[string]bool{}
	for _, d := range m.Domains {
		if d.Parent != "" && !declared[d.Parent] {
			return fmt.Errorf("domain %q references undeclared parent %q", d.Name, d.Parent)
		}
		declared[d.Name] = true
	}
	return nil
}

// SourceDirPaths returns absolute paths for the configured unit directories.
func (m *Manifest) SourceDirPaths() []string {
	var paths []string
	for _, d := range m.Source.Dirs {
		paths = append(paths, filepath.Join(m.Dir, d))
	}
	return paths
}

// UnitCachePath returns the absolute path of the unit cache database, or
// empty when caching is disabled.
func (m *Manifest) UnitCachePath() string {
	if m.Runtime.UnitCache == "" {
		return ""
	}
	return filepath.Join(m.Dir, m.Runtime.UnitCache)
}
