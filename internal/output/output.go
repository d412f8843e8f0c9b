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

// Package output provides shared output utilities for vardb CLI commands.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bennypowers.dev/vardb/fs"
)

// Text writes text to stdout or a file.
// If viper's "output" flag is set, writes to that file; otherwise writes to w.
// A trailing newline is added when missing.
func Text(osfs fs.FileSystem, w io.Writer, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if outputPath := viper.GetString("output"); outputPath != "" {
		if err := osfs.WriteFile(outputPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		return nil
	}
	_, err := io.WriteString(w, text)
	return err
}

// Table renders an HTML table with a header row.
func Table(w io.Writer, class string, headers []string, rows [][]string) error {
	table := element(atom.Table)
	if class != "" {
		table.Attr = []html.Attribute{{Key: "class", Val: class}}
	}

	thead := element(atom.Thead)
	thead.AppendChild(row(atom.Th, headers))
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, cells := range rows {
		tbody.AppendChild(row(atom.Td, cells))
	}
	table.AppendChild(tbody)

	if err := html.Render(w, table); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func row(cell atom.Atom, values []string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		c := element(cell)
		c.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		tr.AppendChild(c)
	}
	return tr
}
