package cmd

import (
	"fmt"
	"io"
	"os"

	cerrors "github.com/jactl-go/jactlc/internal/errors"

	"github.com/jactl-go/jactlc/internal/context"
	"github.com/jactl-go/jactlc/pkg/ast"
)

// readSource resolves the `[file]` / `-e expr` / stdin precedence every
// subcommand shares (teacher's parse.go "Determine input source").
func readSource(expression bool, args []string) (src, name string, err error) {
	switch {
	case expression:
		if len(args) == 0 {
			return "", "", fmt.Errorf("no expression provided")
		}
		return args[0], "<expression>", nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}

// buildContext loads a JactlContext from --config when given, falling back
// to constant folding enabled by default (spec §5 "Shared resources").
func buildContext() (*context.Context, error) {
	if configPath == "" {
		return context.New(context.Flags{ConstantFolding: true}), nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", configPath, err)
	}
	ctx, err := context.NewFromConfigFile(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", configPath, err)
	}
	return ctx, nil
}

// useColor decides whether diagnostics written to stderr should carry ANSI
// color, honoring --no-color over the terminal auto-detection.
func useColor() bool {
	if noColor {
		return false
	}
	return cerrors.UseColor(os.Stderr.Fd())
}

func reportErrors(errs *cerrors.List) {
	fmt.Fprintln(os.Stderr, errs.Format(useColor()))
}

// stripGlobals hides the synthesized script-main FunDecl's own `globals`
// parameter from CLI output; it exists purely as the REPL-globals threading
// mechanism (spec §4.1 parse_script) and is noise for a human reading the
// AST.
func stripGlobals(fd *ast.FunDecl) []*ast.Param {
	params := make([]*ast.Param, 0, len(fd.Params))
	for _, p := range fd.Params {
		if p.Name == "globals" {
			continue
		}
		params = append(params, p)
	}
	return params
}
