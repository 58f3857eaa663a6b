package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jactl-go/jactlc/internal/lexer"
	"github.com/jactl-go/jactlc/internal/parser"
	"github.com/jactl-go/jactlc/pkg/ast"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Jactl source and print the unresolved AST",
	Long: `Parse Jactl source code into its unresolved AST (spec §4.1).

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line. Use --dump-ast for a full indented
tree; otherwise a one-line summary of the top-level statements is
printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print the full AST tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(parseExpression, args)
	if err != nil {
		return err
	}

	arena := ast.NewVarDeclArena()
	lx := lexer.New(0, src)
	p := parser.New(lx, src, name, arena)

	var script *ast.FunDecl
	if parseExpression {
		script = wrapExpression(p)
	} else {
		script = p.ParseScript("Script")
	}

	if p.Errors().HasErrors() {
		reportErrors(p.Errors())
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors().Errors()))
	}

	if parseDumpAST {
		fmt.Println("AST:")
		dumpStmt(script.Body, 0)
	} else {
		body, ok := script.Body.(*ast.Block)
		if !ok {
			return fmt.Errorf("internal error: script body is %T, not *ast.Block", script.Body)
		}
		fmt.Printf("Script (%d top-level statement(s), %d parameter(s))\n", len(body.Stmts), len(stripGlobals(script)))
	}
	return nil
}

// wrapExpression lets `-e` accept a bare expression by parsing it and
// wrapping the result in a synthetic single-statement script body, since
// Parser exposes no standalone "parse one expression as a script" entry
// point.
func wrapExpression(p *parser.Parser) *ast.FunDecl {
	expr := p.ParseExpression()
	block := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: expr}}}
	return &ast.FunDecl{Name: "Script", Body: block}
}

func dumpASTIndent(indent int) string {
	s := ""
	for i := 0; i < indent; i++ {
		s += "  "
	}
	return s
}

// dumpStmt is a pre-resolution AST printer (no types/const-values exist
// yet, unlike resolver.DumpJSON's post-resolution dump). It covers the node
// kinds common enough to be worth a dedicated line; anything else falls
// back to its Go type name.
func dumpStmt(s ast.Stmt, indent int) {
	pad := dumpASTIndent(indent)
	switch n := s.(type) {
	case *ast.Block:
		fmt.Printf("%sBlock (%d stmt(s))\n", pad, len(n.Stmts))
		for _, st := range n.Stmts {
			dumpStmt(st, indent+1)
		}
	case *ast.StmtList:
		fmt.Printf("%sStmtList (%d stmt(s))\n", pad, len(n.Stmts))
		for _, st := range n.Stmts {
			dumpStmt(st, indent+1)
		}
	case *ast.ExprStmt:
		fmt.Printf("%sExprStmt\n", pad)
		dumpExprTree(n.X, indent+1)
	case *ast.VarDeclStmt:
		fmt.Printf("%sVarDeclStmt %s\n", pad, n.Name)
		if n.Initialiser != nil {
			dumpExprTree(n.Initialiser, indent+1)
		}
	case *ast.Return:
		fmt.Printf("%sReturn\n", pad)
		if n.X != nil {
			dumpExprTree(n.X, indent+1)
		}
	case *ast.If:
		fmt.Printf("%sIf\n", pad)
		dumpExprTree(n.Cond, indent+1)
		dumpStmt(n.Then, indent+1)
		if n.Else != nil {
			dumpStmt(n.Else, indent+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", pad)
		dumpExprTree(n.Cond, indent+1)
		dumpStmt(n.Body, indent+1)
	case *ast.FunDecl:
		fmt.Printf("%sFunDecl %s (%d param(s))\n", pad, n.Name, len(n.Params))
		dumpStmt(n.Body, indent+1)
	case *ast.ClassDecl:
		fmt.Printf("%sClassDecl %s\n", pad, n.Name)
		for _, m := range n.Methods {
			dumpStmt(m, indent+1)
		}
	case *ast.ThrowError:
		fmt.Printf("%sThrowError\n", pad)
		dumpExprTree(n.X, indent+1)
	default:
		fmt.Printf("%s%T\n", pad, s)
	}
}

func dumpExprTree(e ast.Expr, indent int) {
	pad := dumpASTIndent(indent)
	switch n := e.(type) {
	case *ast.Literal:
		fmt.Printf("%sLiteral %v\n", pad, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier %s\n", pad, n.Name)
	case *ast.Binary:
		fmt.Printf("%sBinary %s\n", pad, n.Operator)
		dumpExprTree(n.Left, indent+1)
		dumpExprTree(n.Right, indent+1)
	case *ast.Unary:
		fmt.Printf("%sUnary %s\n", pad, n.Operator)
		dumpExprTree(n.Operand, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall\n", pad)
		dumpExprTree(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpExprTree(a, indent+1)
		}
	case *ast.Closure:
		fmt.Printf("%sClosure\n", pad)
		dumpStmt(n.FunDecl, indent+1)
	default:
		fmt.Printf("%s%T\n", pad, e)
	}
}
