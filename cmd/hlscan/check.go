package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/hilite/compile"
	"github.com/ava12/hilite/langdef"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Load and compile grammar files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, name := range args {
				g, e := langdef.ParseFile(name)
				var l *compile.Language
				if e == nil {
					l, e = compile.Compile(g, compile.Options{MatchTimeout: a.timeout})
				}
				if e != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, e)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d modes\n", name, l.Name, len(l.Modes))
			}

			if failed > 0 {
				return errors.Errorf("%d of %d grammars failed", failed, len(args))
			}
			return nil
		},
	}
}
