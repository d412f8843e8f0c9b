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

package mapfs

import (
	"testing"
)

func TestReadWrite(t *testing.T) {
	mfs := New()
	mfs.AddFile("work/a.yaml", "vars: {}", 0644)

	data, err := mfs.ReadFile("/work/a.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "vars: {}" {
		t.Errorf("Expected file content, got %q", data)
	}

	if err := mfs.WriteFile("/work/b.txt", []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.WriteFile("/work/a.yaml/c.txt", []byte("x"), 0644); err == nil {
		t.Error("Expected error writing below a file")
	}

	want := []string{"/work/a.yaml", "/work/b.txt"}
	got := mfs.Files()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
