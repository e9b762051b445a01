package project

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Library is an external library dependency. The set of implementations is
// closed: PkgConfig and Manual.
type Library interface {
	library()
}

// PkgConfig resolves its flags through a package-metadata query.
type PkgConfig struct {
	Name string
}

// Manual carries literal compile and link flags.
type Manual struct {
	CFlags  string
	LDFlags string
}

func (PkgConfig) library() {}
func (Manual) library()    {}

// Libraries is the ordered dependency list of a project. Order is
// significant: it is the order flags are concatenated in, and therefore the
// link order of static libraries.
type Libraries []Library

// libraryDoc is the serialized form of a Library, tagged by "type".
type libraryDoc struct {
	Type    string `json:"type" yaml:"type"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	CFlags  string `json:"cflags,omitempty" yaml:"cflags,omitempty"`
	LDFlags string `json:"ldflags,omitempty" yaml:"ldflags,omitempty"`
}

const (
	libraryPkgConfig = "pkg_config"
	libraryManual    = "manual"
)

func (ls Libraries) docs() ([]libraryDoc, error) {
	docs := make([]libraryDoc, 0, len(ls))
	for _, l := range ls {
		switch l := l.(type) {
		case PkgConfig:
			docs = append(docs, libraryDoc{Type: libraryPkgConfig, Name: l.Name})
		case Manual:
			docs = append(docs, libraryDoc{Type: libraryManual, CFlags: l.CFlags, LDFlags: l.LDFlags})
		default:
			return nil, fmt.Errorf("unknown library %T", l)
		}
	}
	return docs, nil
}

func librariesFrom(docs []libraryDoc) (Libraries, error) {
	var ls Libraries
	for i, d := range docs {
		switch d.Type {
		case libraryPkgConfig:
			if d.Name == "" {
				return nil, fmt.Errorf("external_libraries[%d]: pkg_config library without a name", i)
			}
			ls = append(ls, PkgConfig{Name: d.Name})
		case libraryManual:
			ls = append(ls, Manual{CFlags: d.CFlags, LDFlags: d.LDFlags})
		default:
			return nil, fmt.Errorf("external_libraries[%d]: %w", i, &InvalidValueError{
				What:  "library type",
				Value: d.Type,
				Valid: []string{libraryPkgConfig, libraryManual},
			})
		}
	}
	return ls, nil
}

func (ls Libraries) MarshalJSON() ([]byte, error) {
	docs, err := ls.docs()
	if err != nil {
		return nil, err
	}
	return json.Marshal(docs)
}

func (ls *Libraries) UnmarshalJSON(data []byte) error {
	var docs []libraryDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return err
	}
	v, err := librariesFrom(docs)
	if err != nil {
		return err
	}
	*ls = v
	return nil
}

func (ls Libraries) MarshalYAML() (any, error) {
	return ls.docs()
}

func (ls *Libraries) UnmarshalYAML(node *yaml.Node) error {
	var docs []libraryDoc
	if err := node.Decode(&docs); err != nil {
		return err
	}
	v, err := librariesFrom(docs)
	if err != nil {
		return err
	}
	*ls = v
	return nil
}
