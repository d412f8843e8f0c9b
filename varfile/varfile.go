/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package varfile reads variable files and applies them to vardb stores.
//
// Two syntaxes are supported. YAML (and JSON, which YAML accepts) files
// have a "vars" mapping and a "nodes" mapping:
//
//	vars:
//	  CC: gcc
//	  CFLAGS: [-O2, -Wall]      # first value is set, the rest appended
//	  LDFLAGS: ~                # declared without a value
//	  AR: {value: ar, entry: 12}
//	nodes:
//	  objs:
//	    - src/a.o
//	    - {path: src/b.o, entry: 7}
//
// HCL files use top-level attributes for variables and labelled node blocks:
//
//	CC     = "gcc"
//	CFLAGS = ["-O2", "-Wall"]
//
//	node "objs" {
//	  path  = "src/a.o"
//	  entry = 7
//	}
package varfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/vardb/fs"
	"bennypowers.dev/vardb/vardb"
)

// ErrUnknownFormat is returned for file extensions varfile cannot parse.
var ErrUnknownFormat = errors.New("varfile: unknown file format")

// Var is a variable binding read from a file.
type Var struct {
	Name   string
	Values []string      // the first value is set, the rest appended
	Entry  vardb.EntryID // build entry recorded on the first value
	Line   int
}

// Node is a single node variable path read from a file.
type Node struct {
	Name  string
	Path  string
	Entry vardb.EntryID
	Line  int
}

// File is a parsed variable file. Vars and Nodes keep file order.
type File struct {
	Path  string
	Vars  []Var
	Nodes []Node
}

// Parse parses data, choosing the syntax from the extension of filename.
// Files without an extension are read as YAML.
func Parse(data []byte, filename string) (*File, error) {
	var (
		f   *File
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json", "":
		f, err = parseYAML(data, filename)
	case ".hcl":
		f, err = parseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
	if err != nil {
		return nil, err
	}
	f.Path = filename
	return f, nil
}

// ParseFile reads and parses a variable file.
func ParseFile(fsys fs.FileSystem, path string) (*File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Apply writes the bindings of f into vars and nodes. Within one file the
// first node path of a name replaces any existing binding and later paths
// are appended, so applying several files lets later files override earlier
// ones. Either store may be nil to skip that kind of binding.
func (f *File) Apply(vars *vardb.Store, nodes *vardb.NodeStore) error {
	if vars != nil {
		for _, v := range f.Vars {
			if err := applyVar(vars, v); err != nil {
				return fmt.Errorf("%s:%d: %w", f.Path, v.Line, err)
			}
		}
	}

	if nodes != nil {
		seen := make(map[string]bool)
		for _, n := range f.Nodes {
			var err error
			if seen[n.Name] {
				err = nodes.Append(n.Name, n.Entry, n.Path)
			} else {
				err = nodes.Set(n.Name, n.Entry, n.Path)
				seen[n.Name] = true
			}
			if err != nil {
				return fmt.Errorf("%s:%d: %w", f.Path, n.Line, err)
			}
		}
	}
	return nil
}

func applyVar(s *vardb.Store, v Var) error {
	if len(v.Values) == 0 {
		_, err := s.Declare(v.Name, v.Entry)
		return err
	}
	if _, err := s.Set(v.Name, v.Values[0], v.Entry); err != nil {
		return err
	}
	for _, value := range v.Values[1:] {
		if err := s.Append(v.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// Load parses each path in order and applies it to vars and nodes.
func Load(fsys fs.FileSystem, paths []string, vars *vardb.Store, nodes *vardb.NodeStore) error {
	for _, p := range paths {
		f, err := ParseFile(fsys, p)
		if err != nil {
			return err
		}
		if err := f.Apply(vars, nodes); err != nil {
			return err
		}
	}
	return nil
}
