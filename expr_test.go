package gosimp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/gosimp"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_String(t *testing.T) {
	assert.Equal(t, "42", gosimp.N(42).String())
	assert.Equal(t, "1/3", gosimp.F(2, 6).String())
	assert.Equal(t, "-1/2", gosimp.F(1, -2).String())
}

func TestNum_LaTeX_Rational(t *testing.T) {
	assert.Equal(t, `\frac{2}{5}`, gosimp.F(2, 5).LaTeX())
	assert.Equal(t, `-\frac{1}{3}`, gosimp.F(-1, 3).LaTeX())
}

func TestNum_NumeratorDenominator(t *testing.T) {
	r := gosimp.F(-6, 8)
	assertExpr(t, gosimp.N(-3), r.Numerator())
	assertExpr(t, gosimp.N(4), r.Denominator())
}

// ============================================================
// Canonical construction
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	e := gosimp.AddOf(x, x, gosimp.MulOf(gosimp.N(3), x))
	assertExpr(t, gosimp.MulOf(gosimp.N(5), x), e)
}

func TestAdd_CollapseToZero(t *testing.T) {
	assertExpr(t, gosimp.N(0), gosimp.Minus(x, x))
}

func TestAdd_Flatten(t *testing.T) {
	left := gosimp.AddOf(gosimp.AddOf(x, y), z)
	right := gosimp.AddOf(z, gosimp.AddOf(y, x))
	assertExpr(t, left, right)
}

func TestAdd_String(t *testing.T) {
	assert.Equal(t, "x + 1", gosimp.AddOf(gosimp.N(1), x).String())
	assert.Equal(t, "x - y", gosimp.Minus(x, y).String())
}

func TestMul_CombinesExponents(t *testing.T) {
	e := gosimp.MulOf(x, gosimp.PowOf(x, gosimp.N(2)), gosimp.PowOf(x, y))
	assertExpr(t, gosimp.PowOf(x, gosimp.AddOf(y, gosimp.N(3))), e)
}

func TestMul_ZeroAndOne(t *testing.T) {
	assertExpr(t, gosimp.N(0), gosimp.MulOf(x, gosimp.N(0)))
	assertExpr(t, x, gosimp.MulOf(gosimp.N(1), x))
	assertExpr(t, gosimp.N(1), gosimp.MulOf(x, inv(x)))
}

func TestMul_DistributesNumberOverSum(t *testing.T) {
	e := gosimp.MulOf(gosimp.N(2), gosimp.AddOf(x, gosimp.N(1)))
	assertExpr(t, gosimp.AddOf(gosimp.MulOf(gosimp.N(2), x), gosimp.N(2)), e)
}

func TestMul_Noncommutative_KeepsOrder(t *testing.T) {
	A := gosimp.S("A", gosimp.Noncommutative)
	B := gosimp.S("B", gosimp.Noncommutative)
	ab := gosimp.MulOf(A, B)
	ba := gosimp.MulOf(B, A)
	assert.False(t, ab.Equal(ba))
	assertExpr(t, gosimp.MulOf(gosimp.PowOf(A, gosimp.N(2)), B), gosimp.MulOf(A, A, B))
	assert.False(t, gosimp.IsCommutative(ab))
}

func TestMul_String(t *testing.T) {
	assert.Equal(t, "2*x", gosimp.MulOf(x, gosimp.N(2)).String())
	assert.Equal(t, "-x", gosimp.Neg(x).String())
}

func TestPow_ExactNumeric(t *testing.T) {
	assertExpr(t, gosimp.F(2, 3), gosimp.PowOf(gosimp.F(4, 9), gosimp.F(1, 2)))
	assertExpr(t, gosimp.F(1, 8), gosimp.PowOf(gosimp.N(2), gosimp.N(-3)))
	assertExpr(t, gosimp.N(-2), gosimp.PowOf(gosimp.N(-8), gosimp.F(1, 3)))
	_, isPow := gosimp.SqrtOf(gosimp.N(2)).(*gosimp.Pow)
	assert.True(t, isPow, "sqrt(2) must stay symbolic")
}

func TestPow_NumericRadicals(t *testing.T) {
	two, sqrt2 := gosimp.N(2), gosimp.SqrtOf(gosimp.N(2))
	assertExpr(t, gosimp.MulOf(two, sqrt2), gosimp.SqrtOf(gosimp.N(8)))
	assertExpr(t, gosimp.MulOf(two, sqrt2), gosimp.PowOf(two, gosimp.F(3, 2)))
	assertExpr(t, gosimp.MulOf(gosimp.F(2, 3), sqrt2), gosimp.PowOf(gosimp.F(8, 9), gosimp.F(1, 2)))
	assertExpr(t, gosimp.MulOf(gosimp.N(3), gosimp.PowOf(gosimp.N(2), gosimp.F(1, 3))), gosimp.PowOf(gosimp.N(54), gosimp.F(1, 3)))

	_, isPow := gosimp.PowOf(two, gosimp.F(-1, 2)).(*gosimp.Pow)
	assert.True(t, isPow, "negative exponents are not rationalized")
}

func TestMul_MergesNumericRadicals(t *testing.T) {
	sqrt2 := gosimp.SqrtOf(gosimp.N(2))
	assertExpr(t, gosimp.N(4), gosimp.MulOf(sqrt2, gosimp.PowOf(gosimp.N(8), gosimp.F(1, 2))))
	assertExpr(t, gosimp.SqrtOf(gosimp.N(6)), gosimp.MulOf(sqrt2, gosimp.SqrtOf(gosimp.N(3))))
	assertExpr(t, gosimp.MulOf(gosimp.N(6), x), gosimp.MulOf(sqrt2, x, gosimp.SqrtOf(gosimp.N(18))))

	// Different exponents stay apart.
	got := gosimp.MulOf(sqrt2, gosimp.PowOf(gosimp.N(3), gosimp.F(1, 3)))
	m, ok := got.(*gosimp.Mul)
	if assert.True(t, ok) {
		assert.Len(t, m.Factors(), 2)
	}
}

func TestPow_Identities(t *testing.T) {
	assertExpr(t, gosimp.N(1), gosimp.PowOf(x, gosimp.N(0)))
	assertExpr(t, x, gosimp.PowOf(x, gosimp.N(1)))
	assertExpr(t, gosimp.N(1), gosimp.PowOf(gosimp.N(1), x))
}

func TestPow_NestedIntegerExponent(t *testing.T) {
	e := gosimp.PowOf(gosimp.PowOf(x, y), gosimp.N(2))
	assertExpr(t, gosimp.PowOf(x, gosimp.MulOf(gosimp.N(2), y)), e)
}

func TestPow_NestedSymbolicStays(t *testing.T) {
	e := gosimp.PowOf(gosimp.PowOf(x, gosimp.N(2)), y)
	p, ok := e.(*gosimp.Pow)
	if assert.True(t, ok) {
		assertExpr(t, gosimp.PowOf(x, gosimp.N(2)), p.Base())
		assertExpr(t, y, p.ExpExpr())
	}
}

func TestPow_NestedNonnegativeFolds(t *testing.T) {
	p := gosimp.S("p", gosimp.Nonnegative)
	r := gosimp.S("r", gosimp.Real)
	e := gosimp.PowOf(gosimp.PowOf(p, gosimp.N(2)), r)
	assertExpr(t, gosimp.PowOf(p, gosimp.MulOf(gosimp.N(2), r)), e)
}

func TestPow_String(t *testing.T) {
	assert.Equal(t, "x^2", gosimp.PowOf(x, gosimp.N(2)).String())
	assert.Equal(t, "x^y", gosimp.PowOf(x, y).String())
}

func TestExp_E(t *testing.T) {
	assert.Equal(t, "E", gosimp.E.String())
	assertExpr(t, gosimp.ExpOf(x), gosimp.PowOf(gosimp.E, x))
	assertExpr(t, gosimp.ExpOf(gosimp.MulOf(gosimp.N(2), x)), gosimp.PowOf(gosimp.ExpOf(x), gosimp.N(2)))
}

func TestFunc_ExactIdentities(t *testing.T) {
	assertExpr(t, gosimp.N(1), gosimp.ExpOf(gosimp.N(0)))
	assertExpr(t, gosimp.N(0), gosimp.LnOf(gosimp.N(1)))
	assertExpr(t, x, gosimp.LnOf(gosimp.ExpOf(x)))
	assertExpr(t, gosimp.N(3), gosimp.AbsOf(gosimp.N(-3)))
}

func TestDerivative_Flattens(t *testing.T) {
	f := gosimp.FuncOf("f", x)
	once := gosimp.DerivativeOf(f, x)
	twice := gosimp.DerivativeOf(once, x)
	assertExpr(t, gosimp.DerivativeOf(f, x, x), twice)
	assert.Equal(t, "D(f(x), x, x)", twice.String())
}

func TestDerivative_SubSkipsVariable(t *testing.T) {
	d := gosimp.DerivativeOf(gosimp.FuncOf("f", x, y), x)
	assertExpr(t, d, d.Sub("x", gosimp.N(1)))
	assertExpr(t, gosimp.DerivativeOf(gosimp.FuncOf("f", x, gosimp.N(2)), x), d.Sub("y", gosimp.N(2)))
}

// ============================================================
// Assumptions and predicates
// ============================================================

func TestAssumptions_Implication(t *testing.T) {
	k := gosimp.S("k", gosimp.Integer)
	assert.True(t, k.Has(gosimp.Rational))
	assert.True(t, k.Has(gosimp.Real))
	p := gosimp.S("p", gosimp.Positive)
	assert.True(t, p.Has(gosimp.Nonnegative))
	assert.False(t, x.Equal(gosimp.S("x", gosimp.Real)), "assumptions are part of identity")
}

func TestPredicates(t *testing.T) {
	p := gosimp.S("p", gosimp.Positive)
	m := gosimp.S("m", gosimp.Negative)
	assert.True(t, gosimp.IsPositive(gosimp.MulOf(p, p)))
	assert.True(t, gosimp.IsNegative(gosimp.MulOf(p, m)))
	assert.True(t, gosimp.IsNonnegative(gosimp.MulOf(m, m)))
	assert.False(t, gosimp.IsNegative(gosimp.MulOf(x, m)))
	assert.True(t, gosimp.IsNegative(gosimp.N(-2)))
	assert.True(t, gosimp.IsNonnegative(gosimp.AbsOf(x)))
	assert.True(t, gosimp.IsReal(gosimp.ExpOf(gosimp.S("r", gosimp.Real))))
	assert.False(t, gosimp.IsReal(x))
}

func TestParseAssumption(t *testing.T) {
	a, ok := gosimp.ParseAssumption("positive")
	assert.True(t, ok)
	assert.Equal(t, gosimp.Positive, a)
	_, ok = gosimp.ParseAssumption("prime")
	assert.False(t, ok)
}

// ============================================================
// Expand, Subs, symbols
// ============================================================

func TestExpand_Square(t *testing.T) {
	e := gosimp.Expand(gosimp.PowOf(gosimp.AddOf(x, gosimp.N(1)), gosimp.N(2)))
	want := gosimp.AddOf(gosimp.PowOf(x, gosimp.N(2)), gosimp.MulOf(gosimp.N(2), x), gosimp.N(1))
	assertExpr(t, want, e)
}

func TestExpand_Product(t *testing.T) {
	e := gosimp.Expand(gosimp.MulOf(gosimp.AddOf(x, y), gosimp.AddOf(x, gosimp.Neg(y))))
	assertExpr(t, gosimp.Minus(gosimp.PowOf(x, gosimp.N(2)), gosimp.PowOf(y, gosimp.N(2))), e)
}

func TestSubs_Simultaneous(t *testing.T) {
	e := gosimp.Minus(x, y)
	got := gosimp.Subs(e, map[string]gosimp.Expr{"x": y, "y": x})
	assertExpr(t, gosimp.Minus(y, x), got)
}

func TestFreeSymbols(t *testing.T) {
	e := gosimp.AddOf(gosimp.MulOf(x, y), gosimp.SinOf(z))
	syms := gosimp.FreeSymbols(e)
	assert.Len(t, syms, 3)
	assert.Contains(t, syms, "z")
	ordered := gosimp.SymbolsOf(e)
	if assert.Len(t, ordered, 3) {
		assert.Equal(t, "x", ordered[0].Name())
		assert.Equal(t, "z", ordered[2].Name())
	}
}

func TestEvalf(t *testing.T) {
	v, ok := gosimp.Evalf(gosimp.AddOf(gosimp.F(1, 2), gosimp.F(1, 4)))
	assert.True(t, ok)
	assert.InDelta(t, 0.75, v, 1e-12)
	_, ok = gosimp.Evalf(x)
	assert.False(t, ok)
}

// ============================================================
// ExprMap
// ============================================================

func TestExprMap_InsertionOrder(t *testing.T) {
	m := gosimp.NewExprMap[int]()
	m.Set(y, 1)
	m.Set(x, 2)
	m.Set(gosimp.S("y"), 3)
	assert.Equal(t, 2, m.Len())
	keys := m.Keys()
	assertExpr(t, y, keys[0])
	v, ok := m.Get(y)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	m.Delete(y)
	assert.False(t, m.Has(y))
	v, ok = m.Get(x)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
