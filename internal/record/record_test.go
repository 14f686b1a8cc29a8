package record

import (
	"testing"

	"pixelforge/internal/diag"
	"pixelforge/internal/ir"
)

func TestWithScopeRecordsInOrder(t *testing.T) {
	b := NewBuilder()
	stmts := b.WithScope("main", func() {
		b.Record(ir.Set("a", ir.Lit(ir.U8, 1)))
		b.Record(ir.Set("b", ir.Lit(ir.U8, 2)))
	})
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	first, ok := stmts[0].(*ir.Assign)
	if !ok || first.Target != "a" {
		t.Errorf("first statement = %+v, want Assign{Target: a}", stmts[0])
	}
}

func TestWithScopeNesting(t *testing.T) {
	b := NewBuilder()
	var inner []ir.Stmt
	outer := b.WithScope("outer", func() {
		b.Record(ir.Set("x", ir.Lit(ir.U8, 1)))
		inner = b.WithScope("inner", func() {
			b.Record(ir.Set("y", ir.Lit(ir.U8, 2)))
		})
		b.Record(ir.Set("z", ir.Lit(ir.U8, 3)))
	})

	if len(outer) != 2 {
		t.Fatalf("outer scope has %d statements, want 2 (inner scope must not leak into outer)", len(outer))
	}
	if len(inner) != 1 {
		t.Fatalf("inner scope has %d statements, want 1", len(inner))
	}
}

func TestRecordOutsideScopePanics(t *testing.T) {
	b := NewBuilder()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected Record outside WithScope to panic")
		}
		d, ok := Recover(p)
		if !ok {
			t.Fatalf("Recover did not recognize panic payload: %v", p)
		}
		if d.Category != diag.CategoryRecorderMissing {
			t.Errorf("category = %v, want %v", d.Category, diag.CategoryRecorderMissing)
		}
	}()
	b.Record(ir.Set("a", ir.Lit(ir.U8, 1)))
}

func TestRequireFailurePanicsWithCategory(t *testing.T) {
	b := NewBuilder()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected Require(false, ...) to panic")
		}
		d, ok := Recover(p)
		if !ok {
			t.Fatalf("Recover did not recognize panic payload: %v", p)
		}
		if d.Category != diag.CategoryUnknownReference {
			t.Errorf("category = %v, want %v", d.Category, diag.CategoryUnknownReference)
		}
	}()
	b.WithScope("main", func() {
		b.Require(false, diag.CategoryUnknownReference, "main", "sprite %q does not exist", "hero")
	})
}

func TestRequireSuccessDoesNotPanic(t *testing.T) {
	b := NewBuilder()
	stmts := b.WithScope("main", func() {
		b.Require(true, diag.CategoryUnknownReference, "main", "unreachable")
		b.Record(ir.Set("a", ir.Lit(ir.U8, 1)))
	})
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
}

func TestScopeStackBalancedAfterPanic(t *testing.T) {
	b := NewBuilder()
	func() {
		defer func() { recover() }()
		b.WithScope("broken", func() {
			b.Require(false, diag.CategoryUnknownReference, "broken", "boom")
		})
	}()

	// The defer inside WithScope must have popped the broken scope even
	// though fn panicked, so a fresh WithScope starts from a clean stack.
	stmts := b.WithScope("main", func() {
		b.Record(ir.Set("a", ir.Lit(ir.U8, 1)))
	})
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (scope stack left unbalanced by prior panic)", len(stmts))
	}
}

func TestRecoverRejectsForeignPanic(t *testing.T) {
	if _, ok := Recover("some other panic"); ok {
		t.Error("Recover should not claim an unrelated panic value")
	}
}
