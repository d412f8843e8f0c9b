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

package vardb_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/vardb/vardb"
)

// callLog records visitor calls in order.
type callLog struct {
	calls  []string
	failOn string
}

var errStop = errors.New("stop")

func (c *callLog) OnlyLeft(e *vardb.Entry) error {
	c.calls = append(c.calls, "left:"+e.Name())
	return c.fail(e.Name())
}

func (c *callLog) OnlyRight(e *vardb.Entry) error {
	c.calls = append(c.calls, "right:"+e.Name())
	return c.fail(e.Name())
}

func (c *callLog) Both(l, r *vardb.Entry) error {
	c.calls = append(c.calls, "both:"+l.Name()+"="+r.Name())
	return c.fail(l.Name())
}

func (c *callLog) fail(name string) error {
	if name == c.failOn {
		return errStop
	}
	return nil
}

func storeOf(t *testing.T, kv ...string) *vardb.Store {
	t.Helper()
	s := vardb.NewStore(nil)
	for i := 0; i+1 < len(kv); i += 2 {
		if _, err := s.Set(kv[i], kv[i+1], vardb.NoEntry); err != nil {
			t.Fatalf("Set(%q) failed: %v", kv[i], err)
		}
	}
	return s
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		left  []string
		right []string
		want  []string
	}{
		{
			name:  "overlapping",
			left:  []string{"A", "1", "B", "2"},
			right: []string{"B", "2", "C", "3"},
			want:  []string{"left:A", "both:B=B", "right:C"},
		},
		{
			name:  "both empty",
			left:  nil,
			right: nil,
			want:  nil,
		},
		{
			name:  "left empty",
			right: []string{"X", "1", "Y", "2"},
			want:  []string{"right:X", "right:Y"},
		},
		{
			name: "right empty",
			left: []string{"X", "1", "Y", "2"},
			want: []string{"left:X", "left:Y"},
		},
		{
			name:  "identical",
			left:  []string{"A", "1", "B", "2"},
			right: []string{"A", "x", "B", "y"},
			want:  []string{"both:A=A", "both:B=B"},
		},
		{
			name:  "interleaved",
			left:  []string{"a", "", "c", "", "e", ""},
			right: []string{"b", "", "c", "", "d", "", "f", ""},
			want:  []string{"left:a", "right:b", "both:c=c", "right:d", "left:e", "right:f"},
		},
		{
			name:  "byte order",
			left:  []string{"a", "", "B", ""},
			right: []string{"A", "", "b", ""},
			want:  []string{"right:A", "left:B", "left:a", "right:b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			err := vardb.Compare(storeOf(t, tt.left...), storeOf(t, tt.right...), log)
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, log.calls); diff != "" {
				t.Errorf("Calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareShortCircuit(t *testing.T) {
	tests := []struct {
		failOn string
		want   []string
	}{
		{"A", []string{"left:A"}},
		{"B", []string{"left:A", "both:B=B"}},
		{"C", []string{"left:A", "both:B=B", "right:C"}},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			left := storeOf(t, "A", "1", "B", "2", "D", "4")
			right := storeOf(t, "B", "2", "C", "3", "E", "5")

			log := &callLog{failOn: tt.failOn}
			err := vardb.Compare(left, right, log)
			if !errors.Is(err, errStop) {
				t.Fatalf("Expected errStop, got %v", err)
			}
			if diff := cmp.Diff(tt.want, log.calls); diff != "" {
				t.Errorf("Calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareFuncsContext(t *testing.T) {
	type tally struct{ left, right, both int }

	ctx := &tally{}
	f := vardb.Funcs[*tally]{
		OnlyLeft: func(e *vardb.Entry, c *tally) error {
			c.left++
			return nil
		},
		Both: func(l, r *vardb.Entry, c *tally) error {
			c.both++
			return nil
		},
		Context: ctx,
	}

	left := storeOf(t, "A", "1", "B", "2")
	right := storeOf(t, "B", "2", "C", "3", "D", "4")
	if err := vardb.Compare(left, right, f.Visitor()); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if *ctx != (tally{left: 1, both: 1}) {
		t.Errorf("Unexpected tally %+v", *ctx)
	}
}

func TestCompareFuncsError(t *testing.T) {
	calls := 0
	f := vardb.Funcs[string]{
		OnlyRight: func(e *vardb.Entry, ctx string) error {
			calls++
			if ctx != "token" {
				t.Errorf("Expected context %q, got %q", "token", ctx)
			}
			return errStop
		},
		Context: "token",
	}

	err := vardb.Compare(storeOf(t), storeOf(t, "X", "1", "Y", "2"), f.Visitor())
	if !errors.Is(err, errStop) {
		t.Errorf("Expected errStop, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before abort, got %d", calls)
	}
}

func TestChanges(t *testing.T) {
	before := vardb.NewStore(nil)
	_, _ = before.Set("CC", "gcc", 0)
	_, _ = before.Set("CFLAGS", "-O2", 0)
	_, _ = before.Set("LDFLAGS", "-lm", 0)
	_, _ = before.Declare("EMPTY", 0)

	after := before.Clone()
	_ = after.Append("CFLAGS", "-g")
	_, _ = after.Set("AR", "ar", 0)
	_, _ = after.Set("EMPTY", "", 0)

	// LDFLAGS is removed by building the new snapshot without it.
	next := vardb.NewStore(nil)
	for name, e := range after.All() {
		if name == "LDFLAGS" {
			continue
		}
		if e.HasValue() {
			_, _ = next.Set(name, e.Value(), e.Source())
		} else {
			_, _ = next.Declare(name, e.Source())
		}
	}

	cs, err := vardb.Changes(before, next)
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}

	want := &vardb.ChangeSet{
		Added:     []string{"AR"},
		Removed:   []string{"LDFLAGS"},
		Changed:   []string{"CFLAGS", "EMPTY"},
		Unchanged: []string{"CC"},
	}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("ChangeSet mismatch (-want +got):\n%s", diff)
	}
	if cs.Empty() {
		t.Error("Expected non-empty change set")
	}
}

func TestChangesIdentical(t *testing.T) {
	s := storeOf(t, "A", "1", "B", "2")
	cs, err := vardb.Changes(s, s.Clone())
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}
	if !cs.Empty() {
		t.Errorf("Expected empty change set, got %+v", cs)
	}
	if diff := cmp.Diff([]string{"A", "B"}, cs.Unchanged); diff != "" {
		t.Errorf("Unchanged mismatch (-want +got):\n%s", diff)
	}
}
