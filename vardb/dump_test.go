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
	"bytes"
	"testing"

	"bennypowers.dev/vardb/testutil"
	"bennypowers.dev/vardb/vardb"
)

func TestDump(t *testing.T) {
	s := vardb.NewStore(nil)
	_, _ = s.Set("CFLAGS", "-O2", 0)
	_ = s.Append("CFLAGS", "-Wall")
	_, _ = s.Set("CC", "gcc", 3)
	_, _ = s.Declare("EMPTY", 0)

	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	testutil.UpdateGoldenFile(t, "vardb/dump.golden", buf.Bytes())
	expected := testutil.LoadGoldenFile(t, "vardb/dump.golden")
	if expected == nil {
		return
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Dump mismatch:\n  got:\n%s\n  expected:\n%s", buf.String(), expected)
	}
}

func TestDumpEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := vardb.NewStore(nil).Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if buf.String() != " ----------- VARDB -----------\n" {
		t.Errorf("Unexpected dump of empty store: %q", buf.String())
	}
}
