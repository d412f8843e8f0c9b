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

package dirtree_test

import (
	"errors"
	"testing"

	"bennypowers.dev/vardb/dirtree"
	"bennypowers.dev/vardb/vardb"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "."},
		{".", "."},
		{"./", "."},
		{"/", "."},
		{"src", "src"},
		{"src/", "src"},
		{"./src/lib", "src/lib"},
		{"src//lib/../app", "src/app"},
	}
	for _, tt := range tests {
		if got := dirtree.Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIntern(t *testing.T) {
	tree := dirtree.New()

	a := tree.Intern("src/lib")
	b := tree.Intern("./src/lib/")
	if a != b {
		t.Errorf("Expected equal ids for equivalent paths, got %d and %d", a, b)
	}
	if a == tree.RootID() {
		t.Error("Expected distinct id from root")
	}

	p, ok := tree.Path(a)
	if !ok || p != "src/lib" {
		t.Errorf("Path(%d) = %q, %v; want src/lib, true", a, p, ok)
	}

	if _, ok := tree.Lookup("missing"); ok {
		t.Error("Expected lookup miss for unknown path")
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"src", ".", ".."},
		{"src/lib", ".", "../.."},
		{".", "build-debug", "build-debug"},
		{"src/lib", "build-debug", "../../build-debug"},
		{"build-debug/src", "build-debug", ".."},
		{"a/b", "a/c", "../c"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			tree := dirtree.New()
			got, err := tree.RelativePath(tree.Intern(tt.from), tree.Intern(tt.to))
			if err != nil {
				t.Fatalf("RelativePath failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRelativePathUnknown(t *testing.T) {
	tree := dirtree.New()
	if _, err := tree.RelativePath(tree.RootID(), 999); !errors.Is(err, dirtree.ErrUnknownDir) {
		t.Errorf("Expected ErrUnknownDir, got %v", err)
	}
	if _, err := tree.RelativePath(999, tree.RootID()); !errors.Is(err, dirtree.ErrUnknownDir) {
		t.Errorf("Expected ErrUnknownDir, got %v", err)
	}
}

func TestVariant(t *testing.T) {
	tree := dirtree.New()

	if v := tree.Variant("."); !v.Root || v.Dir != tree.RootID() {
		t.Errorf("Expected root variant, got %+v", v)
	}
	if v := tree.Variant("build-debug"); v.Root {
		t.Errorf("Expected non-root variant, got %+v", v)
	}
}

func TestNodeStoreWithTree(t *testing.T) {
	tree := dirtree.New()
	nodes := vardb.NewNodeStore(tree, nil)
	_ = nodes.Set("objs", 1, "src/a.o")
	_ = nodes.Append("objs", 2, "src/b.o")

	variant := tree.Variant("build-debug")
	got, err := nodes.Value("objs", tree.Intern("src/app"), variant)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	want := "../../build-debug/src/a.o ../../build-debug/src/b.o"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
