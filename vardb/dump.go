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

package vardb

import (
	"fmt"
	"io"
)

// Dump writes every binding of s to w in name order, one per line, with the
// byte length of each name and value. It is meant for debugging.
func (s *Store) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, " ----------- VARDB -----------"); err != nil {
		return err
	}
	for name, e := range s.All() {
		if _, err := fmt.Fprintf(w, " [%d] '%s' = [%d] '%s'\n", len(name), name, len(e.value), e.value); err != nil {
			return err
		}
	}
	return nil
}
