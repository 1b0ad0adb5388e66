// Package config loads the optional YAML defaults file for the
// generate command. Values from the file are used only where the
// command line did not provide one; positional arguments always win.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds generation defaults.
type File struct {
	Prefix    string `yaml:"prefix"`
	Basename  string `yaml:"basename"`
	OutputDir string `yaml:"output_dir"`
	Group     string `yaml:"group"`
}

// Load reads and decodes a defaults file. Unknown keys are rejected
// so typos surface instead of silently doing nothing.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	return &f, nil
}
