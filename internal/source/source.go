// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source discovers the files of a project by role.
package source

import (
	"errors"
	"io/fs"
	"path"
	"sort"
)

// Language of a compiled unit.
type Language int

const (
	C Language = iota
	Cpp
	Assembly
	Fortran
	Cobol
)

func (l Language) String() string {
	switch l {
	case C:
		return "c"
	case Cpp:
		return "cpp"
	case Assembly:
		return "asm"
	case Fortran:
		return "fortran"
	case Cobol:
		return "cobol"
	}
	return "unknown"
}

// Ext returns the file extension of l, including the dot.
func (l Language) Ext() string {
	for ext, k := range extensions {
		if k.role == CompiledUnit && k.lang == l {
			return ext
		}
	}
	return ""
}

// Role classifies a discovered file.
type Role int

const (
	CompiledUnit Role = iota
	Header
	LinkerScript
)

// File is a discovered source path, relative to the project root with
// forward slashes, e.g. "src/main.c".
type File struct {
	Path string
	Role Role
	// Language is meaningful for compiled units only.
	Language Language
}

// Mode selects which roles Discover returns.
type Mode int

const (
	All Mode = iota
	CompiledOnly
	LinkerScriptsOnly
)

type kind struct {
	role Role
	lang Language
}

var extensions = map[string]kind{
	".c":   {CompiledUnit, C},
	".cpp": {CompiledUnit, Cpp},
	".s":   {CompiledUnit, Assembly},
	".f90": {CompiledUnit, Fortran},
	".cob": {CompiledUnit, Cobol},
	".h":   {Header, C},
	".hpp": {Header, Cpp},
	".ld":  {LinkerScript, C},
}

// Classify returns the File for name, or false if its extension is not a
// source extension.
func Classify(name string) (File, bool) {
	k, ok := extensions[path.Ext(name)]
	if !ok {
		return File{}, false
	}
	return File{Path: name, Role: k.role, Language: k.lang}, true
}

// Discover walks dir inside fsys and returns the files selected by mode,
// sorted by path. A missing dir yields no files.
func Discover(fsys fs.FS, dir string, mode Mode) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		f, ok := Classify(p)
		if !ok || !mode.selects(f.Role) {
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (m Mode) selects(r Role) bool {
	switch m {
	case CompiledOnly:
		return r == CompiledUnit
	case LinkerScriptsOnly:
		return r == LinkerScript
	}
	return true
}

// Files is a discovered file list.
type Files []File

// Has reports whether a compiled unit of lang is present.
func (files Files) Has(lang Language) bool {
	for _, f := range files {
		if f.Role == CompiledUnit && f.Language == lang {
			return true
		}
	}
	return false
}

// Compiled returns the compiled units of lang.
func (files Files) Compiled(lang Language) []string {
	var paths []string
	for _, f := range files {
		if f.Role == CompiledUnit && f.Language == lang {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Paths returns the paths of the files with role r.
func (files Files) Paths(r Role) []string {
	var paths []string
	for _, f := range files {
		if f.Role == r {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
