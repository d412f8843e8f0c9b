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

package varfile

import (
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/vardb/vardb"
)

type yamlVar struct {
	Value  *string  `yaml:"value"`
	Values []string `yaml:"values"`
	Entry  int64    `yaml:"entry"`
}

type yamlNode struct {
	Path  string `yaml:"path"`
	Entry int64  `yaml:"entry"`
}

func parseYAML(data []byte, filename string) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	f := &File{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: expected a mapping at top level", filename, root.Line)
	}

	var errs error
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "vars":
			errs = multierr.Append(errs, f.yamlVars(val))
		case "nodes":
			errs = multierr.Append(errs, f.yamlNodes(val))
		default:
			errs = multierr.Append(errs, fmt.Errorf("line %d: unknown section %q", key.Line, key.Value))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid %s: %w", filename, errs)
	}
	return f, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func (f *File) yamlVars(section *yaml.Node) error {
	if isNull(section) {
		return nil
	}
	if section.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: vars must be a mapping", section.Line)
	}

	var errs error
	seen := make(map[string]bool)
	for i := 0; i+1 < len(section.Content); i += 2 {
		key, val := section.Content[i], section.Content[i+1]
		if key.Value == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: empty variable name", key.Line))
			continue
		}
		if seen[key.Value] {
			errs = multierr.Append(errs, fmt.Errorf("line %d: variable %q defined twice", key.Line, key.Value))
			continue
		}
		seen[key.Value] = true

		v := Var{Name: key.Value, Line: key.Line}
		switch {
		case isNull(val):
		case val.Kind == yaml.ScalarNode:
			v.Values = []string{val.Value}
		case val.Kind == yaml.SequenceNode:
			values, err := scalars(val)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("variable %q: %w", key.Value, err))
				continue
			}
			v.Values = values
		case val.Kind == yaml.MappingNode:
			var def yamlVar
			if err := val.Decode(&def); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: variable %q: %w", val.Line, key.Value, err))
				continue
			}
			if def.Value != nil && len(def.Values) > 0 {
				errs = multierr.Append(errs, fmt.Errorf("line %d: variable %q has both value and values", val.Line, key.Value))
				continue
			}
			if def.Value != nil {
				v.Values = []string{*def.Value}
			} else {
				v.Values = def.Values
			}
			v.Entry = vardb.EntryID(def.Entry)
		default:
			errs = multierr.Append(errs, fmt.Errorf("line %d: variable %q has unsupported value", val.Line, key.Value))
			continue
		}
		f.Vars = append(f.Vars, v)
	}
	return errs
}

func scalars(seq *yaml.Node) ([]string, error) {
	values := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.ScalarNode || isNull(item) {
			return nil, fmt.Errorf("line %d: list items must be strings", item.Line)
		}
		values = append(values, item.Value)
	}
	return values, nil
}

func (f *File) yamlNodes(section *yaml.Node) error {
	if isNull(section) {
		return nil
	}
	if section.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: nodes must be a mapping", section.Line)
	}

	var errs error
	for i := 0; i+1 < len(section.Content); i += 2 {
		key, val := section.Content[i], section.Content[i+1]
		if key.Value == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: empty node variable name", key.Line))
			continue
		}

		items := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			items = val.Content
		}
		for _, item := range items {
			n := Node{Name: key.Value, Line: item.Line}
			switch {
			case item.Kind == yaml.ScalarNode && !isNull(item):
				n.Path = item.Value
			case item.Kind == yaml.MappingNode:
				var def yamlNode
				if err := item.Decode(&def); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("line %d: node %q: %w", item.Line, key.Value, err))
					continue
				}
				n.Path = def.Path
				n.Entry = vardb.EntryID(def.Entry)
			default:
				errs = multierr.Append(errs, fmt.Errorf("line %d: node %q: expected a path", item.Line, key.Value))
				continue
			}
			if n.Path == "" {
				errs = multierr.Append(errs, fmt.Errorf("line %d: node %q: empty path", item.Line, key.Value))
				continue
			}
			f.Nodes = append(f.Nodes, n)
		}
	}
	return errs
}
