/*
hlscan is a console utility scanning source files with hilite grammars.
Usage is

	hlscan [--debug] [--timeout <duration>] [--grammar <file>]... <command>

Commands are:

	scan [--lang <name>] [--format text|json|color] [<file>]
	detect [--lang <name>]... [<file>]
	check <file>...
	list

scan prints the span tree of the file (standard input if omitted), the language is detected
unless --lang is given. detect prints detection scores. check compiles grammar files.
list prints registered languages.

--grammar adds a YAML or JSON grammar file to built-in languages.
*/
package main

import (
	"os"
)

func main() {
	if e := newRootCmd().Execute(); e != nil {
		os.Exit(1)
	}
}
