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

// Package expand provides the expand command for vardb.
package expand

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/vardb/dirtree"
	"bennypowers.dev/vardb/expand"
	"bennypowers.dev/vardb/fs"
	"bennypowers.dev/vardb/internal/load"
	"bennypowers.dev/vardb/internal/log"
	"bennypowers.dev/vardb/internal/output"
)

// Cmd is the expand cobra command that substitutes variables into a rule
// command string.
var Cmd = &cobra.Command{
	Use:   "expand [file...] COMMAND",
	Short: "Expand variable references in a command string",
	Long: `Expand $(NAME) and &(NAME) references in a command string.

$(NAME) is replaced by the value of a variable. &(NAME) is replaced by the
paths of a node variable, each prefixed with the path from the --relative-to
directory to the --variant directory when the two differ.`,
	Example: `  # Expand a compile rule
  vardb expand build.yaml 'gcc $(CFLAGS) -c &(srcs)'

  # Link from a subdirectory of a build/debug variant
  vardb expand build.yaml --relative-to src --variant build/debug 'ld -o app &(objs)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("glob", "", "Glob pattern to match variable files")
	Cmd.Flags().String("relative-to", ".", "Directory the command runs in")
	Cmd.Flags().String("variant", ".", "Directory of the variant being built")

	_ = viper.BindPFlag("relative-to", Cmd.Flags().Lookup("relative-to"))
	_ = viper.BindPFlag("variant", Cmd.Flags().Lookup("variant"))
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := log.New(os.Stderr, viper.GetBool("verbose"))

	command := args[len(args)-1]
	globPattern, _ := cmd.Flags().GetString("glob")

	sep, err := load.Separator(viper.GetString("separator"))
	if err != nil {
		return err
	}

	tree := dirtree.New()
	variant := tree.Variant(viper.GetString("variant"))
	relTo := tree.Intern(viper.GetString("relative-to"))

	var x *expand.Expander
	files, err := load.Files(args[:len(args)-1], globPattern)
	switch {
	case errors.Is(err, load.ErrNoFiles):
		x = expand.New(nil, nil, relTo, variant)
	case err != nil:
		return err
	default:
		vars, nodes, err := load.Stores(osfs, files, tree, sep, logger)
		if err != nil {
			return err
		}
		defer vars.Close()
		defer nodes.Close()
		x = expand.New(vars, nodes, relTo, variant)
	}

	expanded, err := x.Expand(command)
	if err != nil {
		return fmt.Errorf("failed to expand %q: %w", command, err)
	}
	logger.Debug("expanded %q to %q", command, expanded)
	return output.Text(osfs, cmd.OutOrStdout(), expanded)
}
