package resolver

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/jactl-go/jactlc/pkg/ast"
)

// DumpJSON serialises a resolved FunDecl into the JSON shape spec §6.3's
// resolved-AST contract describes (kind/resolved/type/const_value/
// var_decl_id/op/resolved_func per node), grounded on the same per-node
// walk the resolver itself uses, but with each field threaded through
// sjson.Set rather than built with encoding/json -- so a consumer (e.g. a
// golden-file diff, or the round-trip check for spec §8 property 8) can
// query individual paths out of it with gjson.Get without unmarshalling
// the whole tree back into Go structs first.
func DumpJSON(fd *ast.FunDecl) (string, error) {
	return dumpFunDecl("", fd)
}

func kindName(n any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func setCommon(doc, path string, n ast.Node) (string, error) {
	var err error
	doc, err = sjson.Set(doc, path+".kind", kindName(n))
	if err != nil {
		return "", err
	}
	return sjson.Set(doc, path+".resolved", n.Resolved())
}

func setExprCommon(doc, path string, e ast.Expr) (string, error) {
	doc, err := setCommon(doc, path, e)
	if err != nil {
		return "", err
	}
	if t := e.Type(); t != nil {
		if doc, err = sjson.Set(doc, path+".type", t.String()); err != nil {
			return "", err
		}
	}
	if doc, err = sjson.Set(doc, path+".could_be_null", e.CouldBeNull()); err != nil {
		return "", err
	}
	if e.IsConst() {
		v, _ := e.ConstValue()
		if doc, err = sjson.Set(doc, path+".const_value", v); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func dumpFunDecl(doc string, fd *ast.FunDecl) (string, error) {
	if doc == "" {
		doc = "{}"
	}
	doc, err := setCommon(doc, "fun_decl", fd)
	if err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "fun_decl.name", fd.Name); err != nil {
		return "", err
	}
	if desc := fd.Descriptor; desc != nil {
		if doc, err = sjson.Set(doc, "fun_decl.is_async", desc.IsAsync); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, "fun_decl.wrapper_method", desc.WrapperMethod); err != nil {
			return "", err
		}
	}
	if fd.WrapperDecl != nil {
		if doc, err = sjson.Set(doc, "fun_decl.has_wrapper_decl", true); err != nil {
			return "", err
		}
	}
	if fd.Body != nil {
		return dumpStmt(doc, "fun_decl.body", fd.Body)
	}
	return doc, nil
}

// dumpStmt appends node at path, writing children at nested paths under it.
func dumpStmt(doc, path string, s ast.Stmt) (string, error) {
	doc, err := setCommon(doc, path, s)
	if err != nil {
		return "", err
	}
	switch n := s.(type) {
	case *ast.Block:
		for i, st := range n.Stmts {
			if doc, err = dumpStmt(doc, fmt.Sprintf("%s.stmts.%d", path, i), st); err != nil {
				return "", err
			}
		}
	case *ast.StmtList:
		for i, st := range n.Stmts {
			if doc, err = dumpStmt(doc, fmt.Sprintf("%s.stmts.%d", path, i), st); err != nil {
				return "", err
			}
		}
	case *ast.VarDeclStmt:
		if doc, err = sjson.Set(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		if n.VarDecl != nil {
			if doc, err = sjson.Set(doc, path+".var_decl_id", int(n.VarDecl.ID())); err != nil {
				return "", err
			}
			if doc, err = sjson.Set(doc, path+".is_heap_local", n.VarDecl.IsHeapLocal); err != nil {
				return "", err
			}
		}
		if n.Initialiser != nil {
			if doc, err = dumpExpr(doc, path+".init", n.Initialiser); err != nil {
				return "", err
			}
		}
	case *ast.ExprStmt:
		if doc, err = dumpExpr(doc, path+".x", n.X); err != nil {
			return "", err
		}
		if n.Guard != nil {
			if doc, err = dumpExpr(doc, path+".guard", n.Guard); err != nil {
				return "", err
			}
		}
	case *ast.Return:
		if doc, err = sjson.Set(doc, path+".implicit", n.Implicit); err != nil {
			return "", err
		}
		if n.X != nil {
			if doc, err = dumpExpr(doc, path+".x", n.X); err != nil {
				return "", err
			}
		}
	case *ast.If:
		if doc, err = dumpExpr(doc, path+".cond", n.Cond); err != nil {
			return "", err
		}
		if doc, err = dumpStmt(doc, path+".then", n.Then); err != nil {
			return "", err
		}
		if n.Else != nil {
			if doc, err = dumpStmt(doc, path+".else", n.Else); err != nil {
				return "", err
			}
		}
	case *ast.While:
		if doc, err = sjson.Set(doc, path+".is_until", n.IsUntil); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".is_for_each", n.IsForEach); err != nil {
			return "", err
		}
		if n.Cond != nil {
			if doc, err = dumpExpr(doc, path+".cond", n.Cond); err != nil {
				return "", err
			}
		}
		if n.Body != nil {
			if doc, err = dumpStmt(doc, path+".body", n.Body); err != nil {
				return "", err
			}
		}
	case *ast.ThrowError:
		if doc, err = dumpExpr(doc, path+".x", n.X); err != nil {
			return "", err
		}
	case *ast.FunDecl:
		if doc, err = sjson.Set(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		if n.Body != nil {
			if doc, err = dumpStmt(doc, path+".body", n.Body); err != nil {
				return "", err
			}
		}
	case *ast.ClassDecl:
		if doc, err = sjson.Set(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		for i, m := range n.Methods {
			if doc, err = dumpStmt(doc, fmt.Sprintf("%s.methods.%d", path, i), m); err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

func dumpExpr(doc, path string, e ast.Expr) (string, error) {
	doc, err := setExprCommon(doc, path, e)
	if err != nil {
		return "", err
	}
	switch n := e.(type) {
	case *ast.Identifier:
		if doc, err = sjson.Set(doc, path+".name", n.Name); err != nil {
			return "", err
		}
		if n.VarDecl != nil {
			if doc, err = sjson.Set(doc, path+".var_decl_id", int(n.VarDecl.ID())); err != nil {
				return "", err
			}
		}
	case *ast.Binary:
		if doc, err = sjson.Set(doc, path+".op", n.Operator); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".left", n.Left); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".right", n.Right); err != nil {
			return "", err
		}
	case *ast.Unary:
		if doc, err = sjson.Set(doc, path+".op", n.Operator); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".is_postfix", n.IsPostfix); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".operand", n.Operand); err != nil {
			return "", err
		}
	case *ast.Ternary:
		if doc, err = sjson.Set(doc, path+".is_elvis", n.IsElvis); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".cond", n.Cond); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".then", n.Then); err != nil {
			return "", err
		}
		if n.Else != nil {
			if doc, err = dumpExpr(doc, path+".else", n.Else); err != nil {
				return "", err
			}
		}
	case *ast.Call:
		if n.ResolvedFunc != nil {
			if doc, err = sjson.Set(doc, path+".resolved_func", n.ResolvedFunc.Name); err != nil {
				return "", err
			}
		}
		if doc, err = dumpExpr(doc, path+".callee", n.Callee); err != nil {
			return "", err
		}
		for i, a := range n.Args {
			if doc, err = dumpExpr(doc, fmt.Sprintf("%s.args.%d", path, i), a); err != nil {
				return "", err
			}
		}
	case *ast.MethodCall:
		if doc, err = sjson.Set(doc, path+".method_name", n.MethodName); err != nil {
			return "", err
		}
		if n.ResolvedFunc != nil {
			if doc, err = sjson.Set(doc, path+".resolved_func", n.ResolvedFunc.Name); err != nil {
				return "", err
			}
		}
		if doc, err = dumpExpr(doc, path+".receiver", n.Receiver); err != nil {
			return "", err
		}
		for i, a := range n.Args {
			if doc, err = dumpExpr(doc, fmt.Sprintf("%s.args.%d", path, i), a); err != nil {
				return "", err
			}
		}
	case *ast.FieldAccess:
		if doc, err = sjson.Set(doc, path+".is_index", n.IsIndex); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, path+".create_if_missing", n.CreateIfMissing); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".parent", n.Parent); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".field", n.Field); err != nil {
			return "", err
		}
	case *ast.ListLiteral:
		for i, el := range n.Elements {
			if doc, err = dumpExpr(doc, fmt.Sprintf("%s.elements.%d", path, i), el); err != nil {
				return "", err
			}
		}
	case *ast.Closure:
		if n.FunDecl != nil {
			if doc, err = dumpStmt(doc, path+".fun_decl", n.FunDecl); err != nil {
				return "", err
			}
		}
	case *ast.ConvertTo:
		if doc, err = dumpExpr(doc, path+".x", n.X); err != nil {
			return "", err
		}
	case *ast.FieldOpAssign:
		if doc, err = sjson.Set(doc, path+".op", n.Operator); err != nil {
			return "", err
		}
		if doc, err = dumpExpr(doc, path+".target", n.Target); err != nil {
			return "", err
		}
	case *ast.NewInstance:
		if doc, err = sjson.Set(doc, path+".class_name", n.ClassName); err != nil {
			return "", err
		}
	case *ast.Switch:
		if doc, err = dumpExpr(doc, path+".subject", n.Subject); err != nil {
			return "", err
		}
		for i, c := range n.Cases {
			cpath := fmt.Sprintf("%s.cases.%d", path, i)
			if doc, err = sjson.Set(doc, cpath+".is_default", c.IsDefault); err != nil {
				return "", err
			}
			for pi, pat := range c.Patterns {
				if doc, err = dumpExpr(doc, fmt.Sprintf("%s.patterns.%d", cpath, pi), pat); err != nil {
					return "", err
				}
			}
			if c.Body != nil {
				if doc, err = dumpExpr(doc, cpath+".body", c.Body); err != nil {
					return "", err
				}
			}
		}
	}
	return doc, nil
}
