package gosimp_test

import (
	"testing"

	"github.com/njchilds90/gosimp"
)

func TestPowSimp(t *testing.T) {
	xn := gosimp.S("x", gosimp.Nonnegative)
	yn := gosimp.S("y", gosimp.Nonnegative)
	nr := gosimp.S("n", gosimp.Real)

	tests := []struct {
		name string
		expr gosimp.Expr
		want gosimp.Expr
	}{
		{
			name: "shared base through separation",
			expr: gosimp.MulOf(gosimp.PowOf(x, n), gosimp.PowOf(gosimp.MulOf(x, n), gosimp.Neg(n)), n),
			want: gosimp.PowOf(n, gosimp.Minus(gosimp.N(1), n)),
		},
		{
			name: "numeric bases cancel",
			expr: gosimp.MulOf(gosimp.PowOf(gosimp.N(4), x), gosimp.PowOf(gosimp.N(2), gosimp.Neg(x)), gosimp.PowOf(gosimp.N(2), gosimp.Neg(x))),
			want: gosimp.N(1),
		},
		{
			name: "negative numeric bases cancel",
			expr: gosimp.MulOf(gosimp.PowOf(gosimp.N(-4), x), gosimp.PowOf(gosimp.N(-2), gosimp.Neg(x)), gosimp.PowOf(gosimp.N(2), gosimp.Neg(x))),
			want: gosimp.N(1),
		},
		{
			name: "coefficient pulled out of exponent",
			expr: gosimp.MulOf(gosimp.PowOf(gosimp.N(2), gosimp.MulOf(gosimp.N(2), y)), x),
			want: gosimp.MulOf(gosimp.PowOf(gosimp.N(4), y), x),
		},
		{
			name: "shared exponent merges bases",
			expr: gosimp.MulOf(gosimp.PowOf(x, a), gosimp.PowOf(y, a)),
			want: gosimp.PowOf(gosimp.MulOf(x, y), a),
		},
		{
			name: "nonnegative quotient",
			expr: gosimp.MulOf(gosimp.PowOf(yn, nr), gosimp.PowOf(gosimp.Quo(yn, xn), gosimp.Neg(nr))),
			want: gosimp.PowOf(xn, nr),
		},
		{
			name: "sum termwise",
			expr: gosimp.AddOf(gosimp.MulOf(gosimp.PowOf(x, a), gosimp.PowOf(y, a)), gosimp.N(1)),
			want: gosimp.AddOf(gosimp.PowOf(gosimp.MulOf(x, y), a), gosimp.N(1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExpr(t, tt.want, gosimp.PowSimp(tt.expr, false))
		})
	}
}

func TestPowSimp_Deep(t *testing.T) {
	inner := gosimp.MulOf(gosimp.PowOf(x, n), gosimp.PowOf(gosimp.MulOf(x, n), gosimp.Neg(n)), n)
	e := gosimp.LnOf(inner)
	assertExpr(t, e, gosimp.PowSimp(e, false))
	assertExpr(t, gosimp.LnOf(gosimp.PowOf(n, gosimp.Minus(gosimp.N(1), n))), gosimp.PowSimp(e, true))
}

func TestPowSimp_NoncommutativeOrder(t *testing.T) {
	A := gosimp.S("A", gosimp.Noncommutative)
	B := gosimp.S("B", gosimp.Noncommutative)
	e := gosimp.MulOf(gosimp.PowOf(x, a), B, gosimp.PowOf(y, a), A)
	want := gosimp.MulOf(gosimp.PowOf(gosimp.MulOf(x, y), a), B, A)
	assertExpr(t, want, gosimp.PowSimp(e, false))
}

func TestPowSimp_Idempotent(t *testing.T) {
	exprs := []gosimp.Expr{
		gosimp.MulOf(gosimp.PowOf(x, a), gosimp.PowOf(y, a)),
		gosimp.MulOf(gosimp.PowOf(gosimp.N(2), gosimp.MulOf(gosimp.N(2), y)), x),
		gosimp.MulOf(gosimp.PowOf(x, n), gosimp.PowOf(gosimp.MulOf(x, n), gosimp.Neg(n)), n),
		gosimp.AddOf(gosimp.MulOf(gosimp.PowOf(x, a), gosimp.PowOf(y, a), gosimp.PowOf(z, b)), x),
	}
	for _, e := range exprs {
		once := gosimp.PowSimp(e, false)
		assertExpr(t, once, gosimp.PowSimp(once, false))
	}
}
