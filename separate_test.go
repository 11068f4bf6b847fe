package gosimp_test

import (
	"testing"

	"github.com/njchilds90/gosimp"
)

func TestSeparate(t *testing.T) {
	tests := []struct {
		name string
		expr gosimp.Expr
		deep bool
		want gosimp.Expr
	}{
		{
			name: "product base",
			expr: gosimp.PowOf(gosimp.MulOf(x, y), z),
			want: gosimp.MulOf(gosimp.PowOf(x, z), gosimp.PowOf(y, z)),
		},
		{
			name: "numeric factor",
			expr: gosimp.SqrtOf(gosimp.MulOf(gosimp.N(2), x)),
			want: gosimp.MulOf(gosimp.SqrtOf(gosimp.N(2)), gosimp.SqrtOf(x)),
		},
		{
			name: "exponential base",
			expr: gosimp.PowOf(gosimp.ExpOf(x), y),
			want: gosimp.ExpOf(gosimp.MulOf(x, y)),
		},
		{
			name: "sum is untouched",
			expr: gosimp.PowOf(gosimp.AddOf(x, y), z),
			want: gosimp.PowOf(gosimp.AddOf(x, y), z),
		},
		{
			name: "terms of a sum",
			expr: gosimp.AddOf(gosimp.PowOf(gosimp.MulOf(x, y), z), gosimp.N(1)),
			want: gosimp.AddOf(gosimp.MulOf(gosimp.PowOf(x, z), gosimp.PowOf(y, z)), gosimp.N(1)),
		},
		{
			name: "shallow skips function arguments",
			expr: gosimp.SinOf(gosimp.PowOf(gosimp.MulOf(x, y), z)),
			want: gosimp.SinOf(gosimp.PowOf(gosimp.MulOf(x, y), z)),
		},
		{
			name: "deep enters function arguments",
			expr: gosimp.SinOf(gosimp.PowOf(gosimp.MulOf(x, y), z)),
			deep: true,
			want: gosimp.SinOf(gosimp.MulOf(gosimp.PowOf(x, z), gosimp.PowOf(y, z))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExpr(t, tt.want, gosimp.Separate(tt.expr, tt.deep))
		})
	}
}

func TestSeparate_Idempotent(t *testing.T) {
	exprs := []gosimp.Expr{
		gosimp.PowOf(gosimp.MulOf(x, gosimp.PowOf(y, gosimp.N(2))), z),
		gosimp.PowOf(gosimp.ExpOf(gosimp.MulOf(x, y)), z),
		gosimp.MulOf(gosimp.PowOf(gosimp.MulOf(x, y), n), gosimp.AddOf(x, gosimp.N(1))),
	}
	for _, e := range exprs {
		once := gosimp.Separate(e, true)
		assertExpr(t, once, gosimp.Separate(once, true))
	}
}
