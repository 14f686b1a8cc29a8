package codegen

import (
	"testing"

	"pixelforge/internal/ir"
)

// TestEveryStmtVariantIsHandled exercises lowerStmt against one instance of
// every concrete ir.Stmt type and fails if any triggers the "unhandled IR
// statement" fatal path, confirming each variant is claimed by exactly one
// handler.
func TestEveryStmtVariantIsHandled(t *testing.T) {
	gen := newTestGenerator()
	stmts := []ir.Stmt{
		&ir.Assign{Target: "x", Op: ir.SET, Value: ir.Lit(ir.U8, 1)},
		&ir.If{Cond: ir.Lit(ir.U8, 1), Then: nil, Else: nil},
		&ir.When{Branches: []ir.WhenBranch{{Cond: ir.Lit(ir.U8, 1), Body: nil}}, Else: nil},
		&ir.While{Cond: ir.Lit(ir.U8, 0), Body: nil},
		&ir.For{Counter: "i", Range: [2]ir.Expr{ir.Lit(ir.U8, 0), ir.Lit(ir.U8, 1)}, Body: nil},
		&ir.FuncCall{Name: "some_fn", Args: nil},
		&ir.Raw{Code: "/* raw */"},
		&ir.ArrayAssign{Array: "arr", Index: ir.Lit(ir.U8, 0), Value: ir.Lit(ir.U8, 1)},
		&ir.SceneChange{Scene: "main"},
		ir.PoolSpawn("pool"),
	}
	for _, stmt := range stmts {
		func() {
			defer func() {
				if p := recover(); p != nil {
					t.Errorf("%T panicked as unhandled: %v", stmt, p)
				}
			}()
			gen.lowerStmt(stmt)
		}()
	}
}

// TestEveryExprVariantIsHandled mirrors TestEveryStmtVariantIsHandled for
// ir.Expr.
func TestEveryExprVariantIsHandled(t *testing.T) {
	gen := newTestGenerator()
	exprs := []ir.Expr{
		ir.Lit(ir.U8, 1),
		ir.Var("x"),
		ir.Bin(ir.ADD, ir.Lit(ir.U8, 1), ir.Lit(ir.U8, 2)),
		ir.Un(ir.NOT, ir.Lit(ir.U8, 0)),
		&ir.Ternary{Cond: ir.Lit(ir.U8, 1), Then: ir.Lit(ir.U8, 1), Else: ir.Lit(ir.U8, 0)},
		ir.CallExpr("some_fn"),
		&ir.ArrayAccess{Array: "arr", Index: ir.Lit(ir.U8, 0)},
		ir.Domain("camera", "x", ""),
	}
	for _, expr := range exprs {
		func() {
			defer func() {
				if p := recover(); p != nil {
					t.Errorf("%T panicked as unhandled: %v", expr, p)
				}
			}()
			gen.lowerExpr(expr)
		}()
	}
}
