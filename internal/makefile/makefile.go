// Copyright 2024 The barge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package makefile builds make(1) input as an ordered list of nodes and
// renders it to text only at the boundary.
package makefile

import (
	"io"
	"strings"
)

// Node is one element of a Makefile.
type Node interface {
	render(b *strings.Builder)
}

// Comment is a "# text" line.
type Comment struct {
	Text string
}

// Blank is an empty line.
type Blank struct{}

// Var is a variable assignment. Op defaults to ":=".
type Var struct {
	Name  string
	Op    string
	Value string
}

// Rule is "targets: prereqs | orderOnly" followed by tab-indented recipe
// lines.
type Rule struct {
	Targets   []string
	Prereqs   []string
	OrderOnly []string
	Recipe    []string
}

// Phony declares targets that are not files.
type Phony struct {
	Targets []string
}

// Raw is text emitted verbatim, e.g. preprocessor-generated dependency
// rules. A trailing newline is added when missing.
type Raw struct {
	Text string
}

func (n Comment) render(b *strings.Builder) {
	b.WriteString("# ")
	b.WriteString(n.Text)
	b.WriteByte('\n')
}

func (Blank) render(b *strings.Builder) {
	b.WriteByte('\n')
}

func (n Var) render(b *strings.Builder) {
	op := n.Op
	if op == "" {
		op = ":="
	}
	b.WriteString(n.Name)
	b.WriteByte(' ')
	b.WriteString(op)
	if n.Value != "" {
		b.WriteByte(' ')
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')
}

func (n Rule) render(b *strings.Builder) {
	b.WriteString(strings.Join(n.Targets, " "))
	b.WriteByte(':')
	if len(n.Prereqs) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(n.Prereqs, " "))
	}
	if len(n.OrderOnly) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(n.OrderOnly, " "))
	}
	b.WriteByte('\n')
	for _, line := range n.Recipe {
		b.WriteByte('\t')
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func (n Phony) render(b *strings.Builder) {
	Rule{Targets: []string{".PHONY"}, Prereqs: n.Targets}.render(b)
}

func (n Raw) render(b *strings.Builder) {
	if n.Text == "" {
		return
	}
	b.WriteString(n.Text)
	if !strings.HasSuffix(n.Text, "\n") {
		b.WriteByte('\n')
	}
}

// File is an ordered Makefile.
type File struct {
	Nodes []Node
}

// Add appends nodes.
func (f *File) Add(nodes ...Node) *File {
	f.Nodes = append(f.Nodes, nodes...)
	return f
}

// Comment appends a comment line.
func (f *File) Comment(text string) *File {
	return f.Add(Comment{Text: text})
}

// Blank appends an empty line.
func (f *File) Blank() *File {
	return f.Add(Blank{})
}

// Set appends "name := value".
func (f *File) Set(name, value string) *File {
	return f.Add(Var{Name: name, Value: value})
}

// Rule appends a rule.
func (f *File) Rule(r Rule) *File {
	return f.Add(r)
}

// Lookup returns the value of the last assignment to name.
func (f *File) Lookup(name string) (string, bool) {
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		if v, ok := f.Nodes[i].(Var); ok && v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Rules returns the rules producing target.
func (f *File) Rules(target string) []Rule {
	var rules []Rule
	for _, n := range f.Nodes {
		r, ok := n.(Rule)
		if !ok {
			continue
		}
		for _, t := range r.Targets {
			if t == target {
				rules = append(rules, r)
				break
			}
		}
	}
	return rules
}

// String renders the Makefile.
func (f *File) String() string {
	var b strings.Builder
	for _, n := range f.Nodes {
		n.render(&b)
	}
	return b.String()
}

// WriteTo writes the rendered Makefile to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}
