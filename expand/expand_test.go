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

package expand_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/vardb/dirtree"
	"bennypowers.dev/vardb/expand"
	"bennypowers.dev/vardb/vardb"
)

type fixture struct {
	tree  *dirtree.Tree
	vars  *vardb.Store
	nodes *vardb.NodeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tree := dirtree.New()
	vars := vardb.NewStore(nil)
	nodes := vardb.NewNodeStore(tree, nil)

	if _, err := vars.Set("CC", "gcc", vardb.NoEntry); err != nil {
		t.Fatal(err)
	}
	if _, err := vars.Set("CFLAGS", "-O2", vardb.NoEntry); err != nil {
		t.Fatal(err)
	}
	if err := vars.Append("CFLAGS", "-Wall"); err != nil {
		t.Fatal(err)
	}
	if _, err := vars.Declare("LDFLAGS", vardb.NoEntry); err != nil {
		t.Fatal(err)
	}
	if err := nodes.Set("objs", 1, "src/a.o"); err != nil {
		t.Fatal(err)
	}
	if err := nodes.Append("objs", 2, "src/b.o"); err != nil {
		t.Fatal(err)
	}
	return &fixture{tree: tree, vars: vars, nodes: nodes}
}

func TestExpand(t *testing.T) {
	f := newFixture(t)
	build := f.tree.Variant("build")
	src := f.tree.Intern("src")

	tests := []struct {
		name  string
		relTo vardb.DirID
		input string
		want  string
	}{
		{"literal only", build.Dir, "echo hello", "echo hello"},
		{"empty", build.Dir, "", ""},
		{"simple", build.Dir, "$(CC) $(CFLAGS) -c", "gcc -O2 -Wall -c"},
		{"declared is empty", build.Dir, "ld $(LDFLAGS)x", "ld x"},
		{"missing is empty", build.Dir, "[$(NOPE)]", "[]"},
		{"node same dir", build.Dir, "ar rcs lib.a &(objs)", "ar rcs lib.a src/a.o src/b.o"},
		{"node other dir", src, "ld &(objs)", "ld ../build/src/a.o ../build/src/b.o"},
		{"adjacent refs", build.Dir, "$(CC)$(CC)", "gccgcc"},
		{"dollar without paren", build.Dir, "cost $5 & more", "cost $5 & more"},
		{"trailing dollar", build.Dir, "x$", "x$"},
		{"empty name", build.Dir, "a$()b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := expand.New(f.vars, f.nodes, tt.relTo, build)
			got, err := x.Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExpandSyntaxError(t *testing.T) {
	f := newFixture(t)
	build := f.tree.Variant("build")
	x := expand.New(f.vars, f.nodes, build.Dir, build)

	for _, input := range []string{"$(CC", "echo &(objs", "ok $(CC) then $("} {
		t.Run(input, func(t *testing.T) {
			_, err := x.Expand(input)
			if !errors.Is(err, expand.ErrSyntax) {
				t.Errorf("Expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestExpandRelativizeFailure(t *testing.T) {
	f := newFixture(t)
	build := f.tree.Variant("build")
	x := expand.New(f.vars, f.nodes, vardb.DirID(999), build)

	_, err := x.Expand("ld &(objs)")
	if !errors.Is(err, vardb.ErrRelativize) {
		t.Errorf("Expected ErrRelativize, got %v", err)
	}
	if !errors.Is(err, dirtree.ErrUnknownDir) {
		t.Errorf("Expected ErrUnknownDir in chain, got %v", err)
	}
}

func TestExpandNilStores(t *testing.T) {
	x := expand.New(nil, nil, 1, vardb.Variant{Dir: 1, Root: true})
	got, err := x.Expand("a $(CC) &(objs) b")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got != "a   b" {
		t.Errorf("Expected %q, got %q", "a   b", got)
	}
}

func TestReferences(t *testing.T) {
	vars, nodes, err := expand.References("$(CC) &(objs) $(CFLAGS) $(CC) &(libs) &(objs)")
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if diff := cmp.Diff([]string{"CC", "CFLAGS"}, vars); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"objs", "libs"}, nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := expand.References("$(CC"); !errors.Is(err, expand.ErrSyntax) {
		t.Errorf("Expected ErrSyntax, got %v", err)
	}
}
