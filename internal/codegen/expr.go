package codegen

import (
	"fmt"
	"strings"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

// lowerExpr renders expr as a parenthesized C expression. Domain expressions
// are delegated to lowerDomainExpr's per-category cases; an expression from a
// category with no registered handler is a fatal "Unhandled IR expression"
// diagnostic, mirroring the statement-dispatch completeness contract.
func (g *Generator) lowerExpr(expr ir.Expr) string {
	switch e := expr.(type) {
	case *ir.Literal:
		return e.Value.String()
	case *ir.VarRef:
		return e.Name
	case *ir.Binary:
		l := g.lowerExpr(e.Left)
		r := g.lowerExpr(e.Right)
		return fmt.Sprintf("(%s %s %s)", l, e.Op.CSymbol(), r)
	case *ir.Unary:
		return fmt.Sprintf("(%s%s)", e.Op.CSymbol(), g.lowerExpr(e.Operand))
	case *ir.Ternary:
		return fmt.Sprintf("(%s ? %s : %s)", g.lowerExpr(e.Cond), g.lowerExpr(e.Then), g.lowerExpr(e.Else))
	case *ir.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.lowerExpr(a)
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
	case *ir.ArrayAccess:
		return fmt.Sprintf("%s[%s]", e.Array, g.lowerExpr(e.Index))
	case *ir.DomainExpr:
		if out, ok := g.lowerDomainExpr(e); ok {
			return out
		}
		g.fatalf(diag.CategoryUnhandledIR, "", "unhandled IR expression: category=%s op=%s", e.Category, e.Op)
		return "0"
	default:
		g.fatalf(diag.CategoryUnhandledIR, "", "unhandled IR expression type %T", expr)
		return "0"
	}
}

// lowerDomainExpr dispatches a DomainExpr to the category that owns it.
// First category match wins; the generic evaluator never interprets Op
// itself.
func (g *Generator) lowerDomainExpr(e *ir.DomainExpr) (string, bool) {
	switch e.Category {
	case "pool":
		switch e.Op {
		case "active_count":
			return poolCountVar(e.Target), true
		}
	case "camera":
		switch e.Op {
		case "x":
			return "_camera_x", true
		case "y":
			return "_camera_y", true
		}
	case "transition":
		switch e.Op {
		case "active":
			return fmt.Sprintf("(%s || %s)", transTimerVar, transSeqActiveVar), true
		}
	case "save":
		switch e.Op {
		case "field_read":
			field, _ := e.Scalars["field"].(string)
			return fmt.Sprintf("_save_%s.%s", e.Target, field), true
		}
	case "path":
		switch e.Op {
		case "found":
			return fmt.Sprintf("%s_found", e.Target), true
		}
	case "mixer":
		switch e.Op {
		case "group_volume":
			return mixerVolumeVar(e.Target), true
		}
	}
	return "", false
}
