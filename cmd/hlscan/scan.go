package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/hilite/internal/logging/logfields"
	"github.com/ava12/hilite/scanner"
	"github.com/ava12/hilite/tree"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatColor = "color"
)

func newScanCmd(a *app) *cobra.Command {
	var lang, format string
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Print span tree of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, content, e := readInput(cmd, args)
			if e != nil {
				return e
			}

			res, e := a.scan(cmd.Context(), lang, string(content))
			if e != nil {
				return e
			}
			log.WithField(logfields.File, name).WithField(logfields.Language, res.Language).Debug("scanned")
			return writeResult(cmd.OutOrStdout(), format, res, content)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language name or alias, detected if empty")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json, or color")
	return cmd
}

func (a *app) scan(ctx context.Context, lang, text string) (*scanner.Result, error) {
	if lang != "" {
		return a.reg.Highlight(lang, text)
	}

	d, e := a.reg.Detect(ctx, text)
	if e != nil {
		return nil, e
	}
	return d.Best, nil
}

func writeResult(w io.Writer, format string, res *scanner.Result, src []byte) error {
	switch format {
	case formatText:
		sw := &strings.Builder{}
		if e := tree.Dump(sw, res.Root, src); e != nil {
			return e
		}
		_, e := io.WriteString(w, sw.String())
		return e

	case formatJSON:
		data, e := json.MarshalIndent(res.Root, "", "  ")
		if e != nil {
			return e
		}
		_, e = w.Write(append(data, '\n'))
		return e

	case formatColor:
		_, e := io.WriteString(w, colorize(res.Root, src))
		return e

	default:
		return errors.Errorf("unknown format %q", format)
	}
}

// scopeColors maps top level scope names to colors, nested names like "title.function" use their prefix.
var scopeColors = map[string]*color.Color{
	"keyword":  color.New(color.FgBlue, color.Bold),
	"built_in": color.New(color.FgCyan),
	"literal":  color.New(color.FgMagenta),
	"string":   color.New(color.FgGreen),
	"number":   color.New(color.FgMagenta),
	"comment":  color.New(color.FgHiBlack),
	"doctag":   color.New(color.FgHiBlack, color.Bold),
	"meta":     color.New(color.FgYellow),
	"subst":    color.New(color.FgWhite),
	"title":    color.New(color.FgYellow, color.Bold),
	"type":     color.New(color.FgCyan, color.Bold),
	"params":   color.New(color.Reset),
	"variable": color.New(color.FgRed),
	"symbol":   color.New(color.FgRed),
	"sql-text": color.New(color.FgGreen),
}

func scopeColor(scope string) *color.Color {
	for scope != "" {
		if c, has := scopeColors[scope]; has {
			return c
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return nil
}

// colorize renders leaves with the color of the innermost colored scope.
func colorize(root *tree.Span, src []byte) string {
	sb := &strings.Builder{}
	var walk func(s *tree.Span, c *color.Color)
	walk = func(s *tree.Span, c *color.Color) {
		if sc := scopeColor(s.Scope); sc != nil {
			c = sc
		}
		if s.IsLeaf() {
			text := string(s.Text(src))
			if c == nil {
				sb.WriteString(text)
			} else {
				sb.WriteString(c.Sprint(text))
			}
			return
		}
		for _, child := range s.Children {
			walk(child, c)
		}
	}
	walk(root, nil)
	return sb.String()
}
