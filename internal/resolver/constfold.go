package resolver

import (
	"math"
	"strings"

	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"===": true, "!==": true, "&&": true, "||": true,
}

// resolveBinary computes a Binary expression's result type (spec §3.2
// `result(left, op, right)`) and, when context.Flags.ConstantFolding is set
// and both operands are already constant, folds it down to a Literal (spec
// §4.2 "Constant folding"; testable property 7, which requires folding to
// be idempotent -- folding the resulting Literal a second time is a no-op
// since NewLiteral always marks itself const with its own value).
func (r *Resolver) resolveBinary(b *ast.Binary) ast.Expr {
	if comparisonOps[b.Operator] {
		b.SetType(types.Bool)
	} else {
		resultType, err := types.Result(b.Left.Type(), b.Operator, b.Right.Type())
		if err != nil {
			r.errorf(b.Token(), "%s", err)
			resultType = types.Any
		}
		b.SetType(resultType)
	}
	b.SetCouldBeNull(b.Left.CouldBeNull() || b.Right.CouldBeNull())

	if r.ctx == nil || !r.ctx.Flags().ConstantFolding {
		return b
	}
	if !b.Left.IsConst() || !b.Right.IsConst() {
		return b
	}
	folded, ok := r.foldBinaryConst(b)
	if !ok {
		return b
	}
	lit := ast.NewLiteral(b.Token(), folded)
	lit.SetType(b.Type())
	return lit
}

func (r *Resolver) foldBinaryConst(b *ast.Binary) (any, bool) {
	lv, _ := b.Left.ConstValue()
	rv, _ := b.Right.ConstValue()

	if isDecimalOperand(b.Left) || isDecimalOperand(b.Right) {
		if r.coerce == nil {
			return nil, false
		}
		res, err := r.coerce.DecimalArith(b.Operator, lv, rv, r.decimalScale())
		if err != nil {
			return nil, false
		}
		return res, true
	}

	if ls, ok := lv.(string); ok {
		switch b.Operator {
		case "+":
			if rs, ok := rv.(string); ok {
				return ls + rs, true
			}
		case "*":
			if n, ok := toInt(rv); ok {
				if n <= 0 {
					return "", true
				}
				return strings.Repeat(ls, int(n)), true
			}
		case "==":
			if rs, ok := rv.(string); ok {
				return ls == rs, true
			}
		case "!=":
			if rs, ok := rv.(string); ok {
				return ls != rs, true
			}
		}
		return nil, false
	}

	if lb, ok := lv.(bool); ok {
		rb, ok := rv.(bool)
		if !ok {
			return nil, false
		}
		switch b.Operator {
		case "&&":
			return lb && rb, true
		case "||":
			return lb || rb, true
		case "==":
			return lb == rb, true
		case "!=":
			return lb != rb, true
		}
		return nil, false
	}

	lf, lok := toFloat(lv)
	rf, rok := toFloat(rv)
	if !lok || !rok {
		return nil, false
	}
	_, lIsInt := toInt(lv)
	_, rIsInt := toInt(rv)
	bothInt := lIsInt && rIsInt

	switch b.Operator {
	case "+":
		if bothInt {
			li, _ := toInt(lv)
			ri, _ := toInt(rv)
			return li + ri, true
		}
		return lf + rf, true
	case "-":
		if bothInt {
			li, _ := toInt(lv)
			ri, _ := toInt(rv)
			return li - ri, true
		}
		return lf - rf, true
	case "*":
		if bothInt {
			li, _ := toInt(lv)
			ri, _ := toInt(rv)
			return li * ri, true
		}
		return lf * rf, true
	case "/":
		if rf == 0 {
			return nil, false
		}
		if bothInt {
			li, _ := toInt(lv)
			ri, _ := toInt(rv)
			// Truncating integer division (spec §4.2 "Constant folding":
			// "truncating int div"), not floor division.
			return li / ri, true
		}
		return lf / rf, true
	case "%":
		if rf == 0 {
			return nil, false
		}
		if bothInt {
			li, _ := toInt(lv)
			ri, _ := toInt(rv)
			return floorModInt(li, ri), true
		}
		return floorModFloat(lf, rf), true
	case "&", "|", "^":
		// Bitwise operators are limited to int/long (spec §4.2).
		if !bothInt {
			return nil, false
		}
		li, _ := toInt(lv)
		ri, _ := toInt(rv)
		switch b.Operator {
		case "&":
			return li & ri, true
		case "|":
			return li | ri, true
		default:
			return li ^ ri, true
		}
	case "<<", ">>":
		if !bothInt {
			return nil, false
		}
		li, _ := toInt(lv)
		ri, _ := toInt(rv)
		if b.Operator == "<<" {
			return li << uint(ri), true
		}
		return li >> uint(ri), true
	case "<":
		return lf < rf, true
	case "<=":
		return lf <= rf, true
	case ">":
		return lf > rf, true
	case ">=":
		return lf >= rf, true
	case "==":
		return lf == rf, true
	case "!=":
		return lf != rf, true
	}
	return nil, false
}

// resolveUnary computes a Unary expression's result type and, under the
// same folding gate as resolveBinary, folds constant operands.
func (r *Resolver) resolveUnary(u *ast.Unary) ast.Expr {
	switch u.Operator {
	case "not", "!":
		u.SetType(types.Bool)
	default:
		u.SetType(u.Operand.Type())
	}
	u.SetCouldBeNull(u.Operand.CouldBeNull())

	if r.ctx == nil || !r.ctx.Flags().ConstantFolding || !u.Operand.IsConst() {
		return u
	}
	v, _ := u.Operand.ConstValue()
	folded, ok := foldUnaryConst(u.Operator, v)
	if !ok {
		return u
	}
	lit := ast.NewLiteral(u.Token(), folded)
	lit.SetType(u.Type())
	return lit
}

func foldUnaryConst(op string, v any) (any, bool) {
	switch op {
	case "not", "!":
		if b, ok := v.(bool); ok {
			return !b, true
		}
	case "-":
		switch n := v.(type) {
		case int64:
			return -n, true
		case float64:
			return -n, true
		}
	case "+":
		return v, true
	case "~":
		if n, ok := toInt(v); ok {
			return ^n, true
		}
	}
	return nil, false
}

// foldListLiteral folds an all-constant list literal's elements into a
// single constant value via the runtime's AppendConst helper (spec §6.2
// "map/list append for folded constants").
func (r *Resolver) foldListLiteral(x *ast.ListLiteral, allConst bool) ast.Expr {
	if r.ctx == nil || !r.ctx.Flags().ConstantFolding || !allConst || r.coerce == nil {
		return x
	}
	var acc any = []any{}
	for _, el := range x.Elements {
		v, _ := el.ConstValue()
		next, ok := r.coerce.AppendConst(acc, v)
		if !ok {
			return x
		}
		acc = next
	}
	x.SetIsConst(true)
	x.SetConstValue(acc)
	return x
}

// decimalScale is the configurable scale spec §4.2 requires for folded
// Decimal arithmetic; fixed for now at a value generous enough for typical
// financial-style computation. A future context.Flags field could make
// this user-configurable per compilation unit.
func (r *Resolver) decimalScale() int { return 10 }

func isDecimalOperand(e ast.Expr) bool {
	return e.Type() != nil && e.Type().Kind() == types.KindDecimal
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func floorModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
