// Command jactlc is the compiler-front-end CLI driving the lexer, parser,
// and resolver end to end (spec §1: "a parser and a semantic resolver...
// no bytecode compiler, no runtime/interpreter, no REPL").
package main

import (
	"os"

	"github.com/jactl-go/jactlc/cmd/jactlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
