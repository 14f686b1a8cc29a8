package ir

import "testing"

func TestWrap(t *testing.T) {
	cases := []struct {
		name string
		v    int64
		k    Kind
		want int64
	}{
		{"u8 in range", 200, U8, 200},
		{"u8 overflow", 256, U8, 0},
		{"u8 overflow plus", 257, U8, 1},
		{"u8 negative", -1, U8, 255},
		{"u16 overflow", 65536, U16, 0},
		{"u16 negative", -1, U16, 65535},
		{"i8 in range", 100, I8, 100},
		{"i8 wraps negative", 200, I8, -56},
		{"i8 negative in range", -128, I8, -128},
		{"i8 negative overflow", -129, I8, 127},
		{"i16 wraps negative", 40000, I16, 40000 - 65536},
		{"i16 negative in range", -32768, I16, -32768},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Wrap(c.v, c.k); got != c.want {
				t.Errorf("Wrap(%d, %v) = %d, want %d", c.v, c.k, got, c.want)
			}
		})
	}
}

func TestWrapIdentity(t *testing.T) {
	// (x + y) mod 2^width(K) == add_K(x, y) for representative samples.
	widths := map[Kind]int64{U8: 256, U16: 65536, I8: 256, I16: 65536}
	for k, width := range widths {
		for _, x := range []int64{0, 1, 5, 100, 254, 255, 65535, -5, -100} {
			for _, y := range []int64{0, 1, 2, 300, -7} {
				want := ((x+y)%width + width) % width
				if k == I8 || k == I16 {
					// Re-derive expected via Wrap of the raw sum so signed
					// kinds compare against the same two's-complement
					// reduction EvalBinary uses, not an unsigned modulus.
					want = Wrap(x+y, k)
				}
				got, ok := EvalBinary(ADD, Value{Raw: Wrap(x, k), Kind: k}, Value{Raw: Wrap(y, k), Kind: k})
				if !ok {
					t.Fatalf("EvalBinary(ADD) returned !ok for %d,%d,%v", x, y, k)
				}
				if got.Raw != want {
					t.Errorf("kind %v: (%d+%d) wrap mismatch: got %d want %d", k, x, y, got.Raw, want)
				}
			}
		}
	}
}

func TestEvalBinaryArithmetic(t *testing.T) {
	a := Value{Raw: 10, Kind: U8}
	b := Value{Raw: 3, Kind: U8}

	tests := []struct {
		op   BinOp
		want int64
	}{
		{ADD, 13},
		{SUB, 7},
		{MUL, 30},
		{DIV, 3},
		{MOD, 1},
		{AND, 2},
		{OR, 11},
		{XOR, 9},
		{SHL, 80 % 256},
		{SHR, 1},
	}
	for _, tc := range tests {
		got, ok := EvalBinary(tc.op, a, b)
		if !ok {
			t.Fatalf("%v: unexpected !ok", tc.op)
		}
		if got.Raw != tc.want {
			t.Errorf("%v: got %d, want %d", tc.op, got.Raw, tc.want)
		}
	}
}

func TestEvalBinaryDivModByZero(t *testing.T) {
	a := Value{Raw: 10, Kind: U8}
	z := Value{Raw: 0, Kind: U8}

	if _, ok := EvalBinary(DIV, a, z); ok {
		t.Error("DIV by zero should return ok=false")
	}
	if _, ok := EvalBinary(MOD, a, z); ok {
		t.Error("MOD by zero should return ok=false")
	}
}

func TestEvalBinaryComparisons(t *testing.T) {
	a := Value{Raw: 5, Kind: U8}
	b := Value{Raw: 7, Kind: U8}

	tests := []struct {
		op   BinOp
		l, r Value
		want bool
	}{
		{EQ, a, a, true},
		{EQ, a, b, false},
		{NEQ, a, b, true},
		{LT, a, b, true},
		{LTE, a, a, true},
		{GT, b, a, true},
		{GTE, b, a, true},
		{LAND, a, b, true},
		{LAND, Value{Raw: 0, Kind: U8}, b, false},
		{LOR, Value{Raw: 0, Kind: U8}, b, true},
	}
	for _, tc := range tests {
		got, ok := EvalBinary(tc.op, tc.l, tc.r)
		if !ok {
			t.Fatalf("%v: unexpected !ok", tc.op)
		}
		if got.Kind != U8 {
			t.Errorf("%v: comparison result should be U8-kinded bool, got %v", tc.op, got.Kind)
		}
		wantRaw := int64(0)
		if tc.want {
			wantRaw = 1
		}
		if got.Raw != wantRaw {
			t.Errorf("%v: got %d, want %d", tc.op, got.Raw, wantRaw)
		}
	}
}

func TestEvalUnaryNot(t *testing.T) {
	zero := Value{Raw: 0, Kind: U8}
	nonzero := Value{Raw: 42, Kind: U8}

	if got := EvalUnary(NOT, zero); got.Raw != 1 {
		t.Errorf("NOT(0) = %d, want 1", got.Raw)
	}
	if got := EvalUnary(NOT, nonzero); got.Raw != 0 {
		t.Errorf("NOT(nonzero) = %d, want 0", got.Raw)
	}
}

func TestEvalUnaryNegAndBNot(t *testing.T) {
	v := Value{Raw: 10, Kind: I8}
	if got := EvalUnary(NEG, v); got.Raw != -10 {
		t.Errorf("NEG(10) = %d, want -10", got.Raw)
	}

	u := Value{Raw: 0, Kind: U8}
	if got := EvalUnary(BNOT, u); got.Raw != 255 {
		t.Errorf("BNOT(0) on U8 = %d, want 255", got.Raw)
	}
}

func TestBoolValue(t *testing.T) {
	if v := BoolValue(true); v.Raw != 1 || v.Kind != U8 {
		t.Errorf("BoolValue(true) = %+v", v)
	}
	if v := BoolValue(false); v.Raw != 0 || v.Kind != U8 {
		t.Errorf("BoolValue(false) = %+v", v)
	}
}
