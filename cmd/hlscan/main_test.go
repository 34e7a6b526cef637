package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/ava12/hilite/tree"
)

func run(stdin string, args ...string) (string, string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	e := cmd.Execute()
	return out.String(), errOut.String(), e
}

func TestScanText(t *testing.T) {
	out, _, e := run("def foo(x):", "scan", "--lang", "python")
	require.NoError(t, e)
	expected := `-
  keyword "def"
  - " "
  title.function "foo"
  params "(x)"
  - ":"
`
	require.Equal(t, expected, out)
}

func TestScanJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.py")
	text := `q = "SELECT 1"`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	out, _, e := run("", "scan", "-f", "json", path)
	require.NoError(t, e)

	root := &tree.Span{}
	require.NoError(t, json.Unmarshal([]byte(out), root))
	require.NoError(t, tree.Check(root, len(text)))
	require.Equal(t, text, string(tree.Text(root, []byte(text))))
}

func TestScanColor(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	text := "x = 1  # note"
	out, _, e := run(text, "scan", "--lang", "py", "--format", "color")
	require.NoError(t, e)
	require.Equal(t, text, out)
}

func TestScanErrors(t *testing.T) {
	_, _, e := run("x", "scan", "--lang", "cobol")
	require.Error(t, e)

	_, _, e = run("x", "scan", "--lang", "python", "--format", "html")
	require.EqualError(t, e, `unknown format "html"`)

	_, _, e = run("", "scan", filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, e)
}

func TestDetect(t *testing.T) {
	out, _, e := run("select name from users where id = 1;", "detect")
	require.NoError(t, e)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "LANGUAGE"))
	require.True(t, strings.HasPrefix(lines[1], "pgsql"), out)
	require.True(t, strings.HasPrefix(lines[2], "python"), out)

	out, _, e = run("def f(): pass", "detect", "-l", "python")
	require.NoError(t, e)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestCheckAndGrammar(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "words.yaml")
	require.NoError(t, os.WriteFile(good, []byte("name: words\naliases: [w]\nkeywords: {keyword: [foo bar]}\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\ncontains: [{begin: '('}]\n"), 0o644))

	out, _, e := run("", "check", good)
	require.NoError(t, e)
	require.Equal(t, good+": words, 1 modes\n", out)

	_, errOut, e := run("", "check", good, bad)
	require.EqualError(t, e, "1 of 2 grammars failed")
	require.Contains(t, errOut, bad)

	out, _, e = run("foo baz", "--grammar", good, "scan", "--lang", "w")
	require.NoError(t, e)
	require.Equal(t, "-\n  keyword \"foo\"\n  - \" baz\"\n", out)

	out, _, e = run("", "--grammar", good, "list")
	require.NoError(t, e)
	require.Contains(t, out, "words")
	require.Contains(t, out, "postgres, postgresql")

	_, _, e = run("", "--grammar", bad, "list")
	require.Error(t, e)
}
