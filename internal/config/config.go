// Package config loads named tokenizer profiles (paths to the vocabulary,
// merges, and optional RoBERTa dictionary files, plus default encode flags)
// from a YAML file, so the CLI and tests can switch between tokenizer
// variants without recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile names one tokenizer variant's data files and default behavior.
type Profile struct {
	Name       string `yaml:"name"`
	VocabPath  string `yaml:"vocab_path"`
	MergesPath string `yaml:"merges_path"`
	DictPath   string `yaml:"dict_path,omitempty"`

	BOSToken string `yaml:"bos_token,omitempty"`
	EOSToken string `yaml:"eos_token,omitempty"`
	UNKToken string `yaml:"unk_token,omitempty"`

	AddPrefixSpace bool `yaml:"add_prefix_space"`
	AddBOS         bool `yaml:"add_bos"`
	AddEOS         bool `yaml:"add_eos"`

	CacheCapacity int `yaml:"cache_capacity"`
}

// File is the top-level shape of a profile file: a set of named profiles
// plus which one is active by default.
type File struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and parses a profile file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: invalid format: %w", err)
	}
	return &f, nil
}

// Profile resolves a profile by name, falling back to File.Default when
// name is empty.
func (f *File) Profile(name string) (Profile, error) {
	if name == "" {
		name = f.Default
	}
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("config: unknown profile %q", name)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
