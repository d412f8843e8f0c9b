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
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.uber.org/multierr"

	"bennypowers.dev/vardb/vardb"
)

var hclFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "node", LabelNames: []string{"name"}},
	},
}

// hclNode is the body of a node block.
type hclNode struct {
	Path  string `hcl:"path"`
	Entry int64  `hcl:"entry,optional"`
}

func parseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	content, remain, diags := file.Body.PartialContent(hclFileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s: %w", filename, diags)
	}
	attrs, diags := remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s: %w", filename, diags)
	}

	f := &File{}
	var errs error

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})
	for _, attr := range ordered {
		v, err := hclVar(attr)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		f.Vars = append(f.Vars, v)
	}

	for _, block := range content.Blocks {
		var body hclNode
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			errs = multierr.Append(errs, diags)
			continue
		}
		name := block.Labels[0]
		line := block.DefRange.Start.Line
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: empty node variable name", line))
			continue
		}
		if body.Path == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: node %q: empty path", line, name))
			continue
		}
		f.Nodes = append(f.Nodes, Node{
			Name:  name,
			Path:  body.Path,
			Entry: vardb.EntryID(body.Entry),
			Line:  line,
		})
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid %s: %w", filename, errs)
	}
	return f, nil
}

func hclVar(attr *hcl.Attribute) (Var, error) {
	v := Var{Name: attr.Name, Line: attr.Range.Start.Line}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return v, diags
	}
	if val.IsNull() {
		return v, nil
	}
	if !val.IsWhollyKnown() {
		return v, fmt.Errorf("line %d: variable %q has an unknown value", v.Line, v.Name)
	}

	ty := val.Type()
	switch {
	case ty.IsPrimitiveType():
		s, err := ctyString(val)
		if err != nil {
			return v, fmt.Errorf("line %d: variable %q: %w", v.Line, v.Name, err)
		}
		v.Values = []string{s}
	case ty.IsTupleType() || ty.IsListType():
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() || !elem.Type().IsPrimitiveType() {
				return v, fmt.Errorf("line %d: variable %q: list items must be strings", v.Line, v.Name)
			}
			s, err := ctyString(elem)
			if err != nil {
				return v, fmt.Errorf("line %d: variable %q: %w", v.Line, v.Name, err)
			}
			v.Values = append(v.Values, s)
		}
	default:
		return v, fmt.Errorf("line %d: variable %q has unsupported type %s", v.Line, v.Name, ty.FriendlyName())
	}
	return v, nil
}

func ctyString(val cty.Value) (string, error) {
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}
