// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project holds the project descriptor: the single persisted
// configuration unit of a barge project.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Descriptor file names, in lookup order.
const (
	JSONFile = "barge.json"
	YAMLFile = "barge.yaml"
)

// Project is the on-disk project descriptor. Optional fields are pointers so
// that an absent field survives a load/save round trip.
type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Authors     []string `json:"authors" yaml:"authors"`
	Description string   `json:"description" yaml:"description"`
	Kind        Kind     `json:"project_type" yaml:"project_type"`
	Version     string   `json:"version" yaml:"version"`

	Toolset         *Toolset `json:"toolset,omitempty" yaml:"toolset,omitempty"`
	CStandard       *string  `json:"c_standard,omitempty" yaml:"c_standard,omitempty"`
	CppStandard     *string  `json:"cpp_standard,omitempty" yaml:"cpp_standard,omitempty"`
	FortranStandard *string  `json:"fortran_standard,omitempty" yaml:"fortran_standard,omitempty"`
	CobolStandard   *string  `json:"cobol_standard,omitempty" yaml:"cobol_standard,omitempty"`

	ExternalLibraries Libraries `json:"external_libraries,omitempty" yaml:"external_libraries,omitempty"`

	CustomCFlags       *string `json:"custom_cflags,omitempty" yaml:"custom_cflags,omitempty"`
	CustomCxxFlags     *string `json:"custom_cxxflags,omitempty" yaml:"custom_cxxflags,omitempty"`
	CustomFortranFlags *string `json:"custom_fortranflags,omitempty" yaml:"custom_fortranflags,omitempty"`
	CustomCobolFlags   *string `json:"custom_cobolflags,omitempty" yaml:"custom_cobolflags,omitempty"`
	CustomLDFlags      *string `json:"custom_ldflags,omitempty" yaml:"custom_ldflags,omitempty"`
	CustomMakeOpts     *string `json:"custom_makeopts,omitempty" yaml:"custom_makeopts,omitempty"`

	FormatStyle    *string  `json:"format_style,omitempty" yaml:"format_style,omitempty"`
	PreBuildSteps  []string `json:"pre_build_steps,omitempty" yaml:"pre_build_steps,omitempty"`
	PostBuildSteps []string `json:"post_build_steps,omitempty" yaml:"post_build_steps,omitempty"`
}

// New returns a descriptor with the required fields set and every optional
// field left to its default.
func New(name string, kind Kind, authors ...string) *Project {
	return &Project{
		Name:    name,
		Authors: authors,
		Kind:    kind,
		Version: "0.1.0",
	}
}

// Load reads the descriptor at path. The format follows the extension:
// ".yaml" and ".yml" are YAML, anything else JSON.
func Load(path string) (*Project, error) {
	return Parse(path, nil)
}

// Parse decodes a descriptor. If data is nil it is read from file; file
// also selects the format and names the descriptor in errors.
func Parse(file string, data []byte) (*Project, error) {
	var reader io.Reader
	if data != nil {
		reader = bytes.NewReader(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, &ConfigError{Path: file, Err: err}
		}
		defer f.Close()
		reader = f
	}

	var p Project
	var err error
	if isYAML(file) {
		err = yaml.NewDecoder(reader).Decode(&p)
	} else {
		err = json.NewDecoder(reader).Decode(&p)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty descriptor")
		}
		return nil, &ConfigError{Path: file, Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, &ConfigError{Path: file, Err: err}
	}
	return &p, nil
}

// Validate checks the required fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("missing required field name")
	}
	if p.Kind == kindUnset {
		return errors.New("missing required field project_type")
	}
	if p.Version == "" {
		return errors.New("missing required field version")
	}
	if !semver.IsValid(canonicalVersion(p.Version)) {
		return fmt.Errorf("version %q is not a semantic version", p.Version)
	}
	return nil
}

// Marshal encodes p in the format selected by file's extension.
func (p *Project) Marshal(file string) ([]byte, error) {
	if isYAML(file) {
		return yaml.Marshal(p)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes p to path.
func (p *Project) Save(path string) error {
	data, err := p.Marshal(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Find returns the descriptor path of the project containing dir, searching
// dir and then its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{JSONFile, YAMLFile} {
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func splitFields(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return []string{}
	}
	return fields
}
