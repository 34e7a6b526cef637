package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
	"github.com/ava12/hilite/langdef"
	"github.com/ava12/hilite/languages"
	"github.com/ava12/hilite/registry"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "hlscan")

type app struct {
	debug    bool
	timeout  time.Duration
	grammars []string
	reg      *registry.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "hlscan",
		Short:         "Syntax highlighting scanner",
		Long:          "hlscan - scan source files with hilite grammars and dump classified spans",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			logging.SetDebug(a.debug)
			return a.init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Print debug messages")
	flags.DurationVar(&a.timeout, "timeout", 0, "Limit for a single pattern match, 0 means no limit")
	flags.StringSliceVar(&a.grammars, "grammar", nil, "Additional grammar file (YAML or JSON), may be repeated")

	cmd.AddCommand(
		newScanCmd(a),
		newDetectCmd(a),
		newCheckCmd(a),
		newListCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	a.reg = registry.New(registry.MatchTimeout(a.timeout))
	if e := languages.Register(a.reg); e != nil {
		return e
	}

	for _, name := range a.grammars {
		g, e := langdef.ParseFile(name)
		if e != nil {
			return e
		}
		if e = a.reg.Register("", nil, g); e != nil {
			return e
		}
	}
	return nil
}

// readInput reads the named file or standard input if args are empty.
func readInput(cmd *cobra.Command, args []string) (name string, content []byte, e error) {
	if len(args) == 0 {
		content, e = io.ReadAll(cmd.InOrStdin())
		return "stdin", content, errors.Wrap(e, "reading standard input")
	}

	name = args[0]
	content, e = os.ReadFile(name)
	return name, content, errors.Wrapf(e, "reading %s", name)
}
