package gosimp_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gosimp"
)

func polyInX() gosimp.Expr {
	x2 := gosimp.PowOf(x, gosimp.N(2))
	return gosimp.AddOf(
		gosimp.MulOf(a, x2),
		gosimp.MulOf(b, x2),
		gosimp.MulOf(a, x),
		gosimp.Neg(gosimp.MulOf(b, x)),
		c,
	)
}

func TestCollect_Polynomial(t *testing.T) {
	got, err := gosimp.Collect(polyInX(), []gosimp.Expr{x}, false)
	require.NoError(t, err)
	want := gosimp.AddOf(
		gosimp.MulOf(gosimp.PowOf(x, gosimp.N(2)), gosimp.AddOf(a, b)),
		gosimp.MulOf(x, gosimp.Minus(a, b)),
		c,
	)
	assertExpr(t, want, got)
}

func TestCollectDict_Polynomial(t *testing.T) {
	d, err := gosimp.CollectDict(polyInX(), []gosimp.Expr{x}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	v, ok := d.Get(gosimp.PowOf(x, gosimp.N(2)))
	require.True(t, ok)
	assertExpr(t, gosimp.AddOf(a, b), v)
	v, ok = d.Get(x)
	require.True(t, ok)
	assertExpr(t, gosimp.Minus(a, b), v)
	v, ok = d.Get(gosimp.N(1))
	require.True(t, ok)
	assertExpr(t, c, v)
}

func TestCollect_SumOfDictMatchesCollect(t *testing.T) {
	e := gosimp.AddOf(polyInX(), gosimp.MulOf(y, x), gosimp.MulOf(a, y))
	syms := []gosimp.Expr{x, y}
	d, err := gosimp.CollectDict(e, syms, false)
	require.NoError(t, err)
	var terms []gosimp.Expr
	d.Range(func(k, v gosimp.Expr) bool {
		terms = append(terms, gosimp.MulOf(k, v))
		return true
	})
	got, err := gosimp.Collect(e, syms, false)
	require.NoError(t, err)
	assertExpr(t, gosimp.AddOf(terms...), got)
	assertExpr(t, gosimp.Expand(e), gosimp.Expand(got))
}

func TestCollect_FirstPatternWins(t *testing.T) {
	e := gosimp.AddOf(gosimp.MulOf(a, x, y), gosimp.MulOf(b, x, y))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{y, x}, false)
	require.NoError(t, err)
	v, ok := d.Get(y)
	require.True(t, ok)
	assertExpr(t, gosimp.AddOf(gosimp.MulOf(a, x), gosimp.MulOf(b, x)), v)
	assert.False(t, d.Has(x))
}

func TestCollect_Exact(t *testing.T) {
	x2 := gosimp.PowOf(x, gosimp.N(2))
	e := gosimp.AddOf(gosimp.MulOf(a, x2), gosimp.MulOf(b, x))

	d, err := gosimp.CollectDict(e, []gosimp.Expr{x}, true)
	require.NoError(t, err)
	v, ok := d.Get(x)
	require.True(t, ok)
	assertExpr(t, b, v)
	v, ok = d.Get(gosimp.N(1))
	require.True(t, ok)
	assertExpr(t, gosimp.MulOf(a, x2), v)

	d, err = gosimp.CollectDict(e, []gosimp.Expr{x2}, true)
	require.NoError(t, err)
	v, ok = d.Get(x2)
	require.True(t, ok)
	assertExpr(t, a, v)
	assert.False(t, d.Has(x))
}

func TestCollect_SymbolicExponent(t *testing.T) {
	x2c := gosimp.PowOf(x, gosimp.MulOf(gosimp.N(2), c))
	e := gosimp.AddOf(gosimp.MulOf(a, x2c), gosimp.MulOf(b, x2c))
	got, err := gosimp.Collect(e, []gosimp.Expr{gosimp.PowOf(x, c)}, false)
	require.NoError(t, err)
	assertExpr(t, gosimp.MulOf(x2c, gosimp.AddOf(a, b)), got)
}

func TestCollect_Exponential(t *testing.T) {
	e2x := gosimp.ExpOf(gosimp.MulOf(gosimp.N(2), x))
	e := gosimp.AddOf(gosimp.MulOf(a, e2x), gosimp.MulOf(b, e2x))
	got, err := gosimp.Collect(e, []gosimp.Expr{gosimp.ExpOf(x)}, false)
	require.NoError(t, err)
	assertExpr(t, gosimp.MulOf(e2x, gosimp.AddOf(a, b)), got)
}

func TestCollect_ProductPattern(t *testing.T) {
	e := gosimp.AddOf(gosimp.MulOf(a, x, y), gosimp.MulOf(b, x, y), gosimp.MulOf(c, x))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{gosimp.MulOf(x, y)}, false)
	require.NoError(t, err)
	v, ok := d.Get(gosimp.MulOf(x, y))
	require.True(t, ok)
	assertExpr(t, gosimp.AddOf(a, b), v)
	v, ok = d.Get(gosimp.N(1))
	require.True(t, ok)
	assertExpr(t, gosimp.MulOf(c, x), v)
}

func TestCollect_ProductPatternMixedPowers(t *testing.T) {
	x2 := gosimp.PowOf(x, gosimp.N(2))
	y3 := gosimp.PowOf(y, gosimp.N(3))
	e := gosimp.AddOf(gosimp.MulOf(a, x2, y3), gosimp.MulOf(b, x2, y3))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{gosimp.MulOf(x, y)}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	v, ok := d.Get(gosimp.MulOf(x2, y3))
	require.True(t, ok)
	assertExpr(t, gosimp.AddOf(a, b), v)
}

func TestCollect_NumericPatternFactor(t *testing.T) {
	e := gosimp.AddOf(gosimp.MulOf(a, x), gosimp.MulOf(b, x))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{gosimp.MulOf(gosimp.N(2), x)}, false)
	require.NoError(t, err)
	v, ok := d.Get(x)
	require.True(t, ok)
	assertExpr(t, gosimp.AddOf(a, b), v)
}

func TestCollect_Derivatives(t *testing.T) {
	f := gosimp.FuncOf("f", x)
	d1 := gosimp.DerivativeOf(f, x)
	d2 := gosimp.DerivativeOf(f, x, x)

	got, err := gosimp.Collect(gosimp.AddOf(gosimp.MulOf(a, d1), gosimp.MulOf(b, d1)), []gosimp.Expr{d1}, false)
	require.NoError(t, err)
	assertExpr(t, gosimp.MulOf(d1, gosimp.AddOf(a, b)), got)

	e := gosimp.AddOf(gosimp.MulOf(a, d2), gosimp.MulOf(b, d1))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{d1}, false)
	require.NoError(t, err)
	v, ok := d.Get(d2)
	require.True(t, ok)
	assertExpr(t, a, v)
	v, ok = d.Get(d1)
	require.True(t, ok)
	assertExpr(t, b, v)

	d, err = gosimp.CollectDict(e, []gosimp.Expr{d1}, true)
	require.NoError(t, err)
	assert.False(t, d.Has(d2))
	v, ok = d.Get(gosimp.N(1))
	require.True(t, ok)
	assertExpr(t, gosimp.MulOf(a, d2), v)
}

func TestCollect_DerivativeDoesNotMatchPlainBase(t *testing.T) {
	f := gosimp.FuncOf("f", x)
	e := gosimp.AddOf(gosimp.MulOf(a, f), gosimp.MulOf(b, gosimp.DerivativeOf(f, x)))
	d, err := gosimp.CollectDict(e, []gosimp.Expr{f}, false)
	require.NoError(t, err)
	v, ok := d.Get(f)
	require.True(t, ok)
	assertExpr(t, a, v)
}

func TestCollect_MixedDerivativeFails(t *testing.T) {
	f := gosimp.FuncOf("f", x, y)
	e := gosimp.AddOf(gosimp.MulOf(a, gosimp.DerivativeOf(f, x, y)), b)
	_, err := gosimp.Collect(e, []gosimp.Expr{x}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gosimp.ErrUnsupportedDerivative))

	_, err = gosimp.CollectDict(b, []gosimp.Expr{gosimp.DerivativeOf(f, x, y)}, false)
	assert.ErrorIs(t, err, gosimp.ErrUnsupportedDerivative)
}

func TestCollect_ProductInput(t *testing.T) {
	e := gosimp.MulOf(y, gosimp.AddOf(gosimp.MulOf(a, x), gosimp.MulOf(b, x)))
	got, err := gosimp.Collect(e, []gosimp.Expr{x}, false)
	require.NoError(t, err)
	assertExpr(t, gosimp.MulOf(y, x, gosimp.AddOf(a, b)), got)
}

func TestCollect_NoPatterns(t *testing.T) {
	e := polyInX()
	got, err := gosimp.Collect(e, nil, false)
	require.NoError(t, err)
	assertExpr(t, e, got)
}

func TestCollect_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := gosimp.Collect(polyInX(), []gosimp.Expr{x}, false,
		gosimp.WithLogger(logger), gosimp.WithContext(context.Background()))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "collect: matched")
	assert.Contains(t, buf.String(), "common_exponent=2")
}
