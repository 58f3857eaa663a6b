package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "jactlc",
	Short: "Jactl parser and semantic resolver",
	Long: `jactlc is a Go implementation of the Jactl front end: a
lexer, a parser producing an unresolved AST, and a semantic resolver
that performs scope/symbol resolution, type inference, constant
folding, closure capture analysis, and async propagation.

It deliberately stops at the resolved AST: no bytecode compiler, no
runtime/interpreter, and no REPL are part of this tool.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML compiler config file (constantFolding, testAsync, repl, checkpointRestore)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI-colored diagnostics")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
