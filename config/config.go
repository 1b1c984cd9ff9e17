// Package config loads per-command option defaults from a project
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FileName is the configuration file searched for, from the working
// directory upward.
const FileName = ".nbmend.yaml"

type Config struct {
	Verbose bool         `yaml:"verbose"`
	Fix     FixConfig    `yaml:"fix"`
	Meta    MetaConfig   `yaml:"meta"`
	Assert  AssertConfig `yaml:"assert"`
}

type FixConfig struct {
	MetadataFirst *bool    `yaml:"metadata_first"`
	CellsFirst    *bool    `yaml:"cells_first"`
	IgnoreFields  []string `yaml:"ignore_fields"`
}

type MetaConfig struct {
	NotebookMetaKeep []string `yaml:"notebook_meta_keep"`
	CellMetaKeep     []string `yaml:"cell_meta_keep"`
	RemoveOutputs    bool     `yaml:"remove_outputs"`
	KeepExecution    bool     `yaml:"keep_execution_count"`
	Prefix           string   `yaml:"prefix"`
	Suffix           string   `yaml:"suffix"`
}

type AssertConfig struct {
	Exprs   []string `yaml:"exprs"`
	Recipes []string `yaml:"recipes"`
}

// Find walks from dir upward looking for FileName.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		p := filepath.Join(dir, FileName)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest configuration file at or above dir. A
// missing file yields an empty configuration.
func Discover(dir string) (*Config, error) {
	p, err := Find(dir)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(p)
}
