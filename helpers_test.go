package gosimp_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/gosimp"
)

var (
	a = gosimp.S("a")
	b = gosimp.S("b")
	c = gosimp.S("c")
	n = gosimp.S("n")
	x = gosimp.S("x")
	y = gosimp.S("y")
	z = gosimp.S("z")
)

func assertExpr(t *testing.T, want, got gosimp.Expr) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "want %s, got %s", want, got)
}

func inv(e gosimp.Expr) gosimp.Expr { return gosimp.PowOf(e, gosimp.N(-1)) }

// numericValue substitutes rational values for the free symbols and
// evaluates exactly.
func numericValue(t *testing.T, e gosimp.Expr, bindings map[string]gosimp.Expr) *gosimp.Num {
	t.Helper()
	v, ok := gosimp.Subs(e, bindings).Eval()
	if !ok {
		t.Fatalf("%s did not evaluate under %v", e, bindings)
	}
	return v
}

// randomBindings draws a nonzero rational value for each name.
func randomBindings(r *rand.Rand, names ...string) map[string]gosimp.Expr {
	m := make(map[string]gosimp.Expr, len(names))
	for _, name := range names {
		p := r.Int63n(19) - 9
		if p == 0 {
			p = 1
		}
		m[name] = gosimp.F(p, r.Int63n(9)+1)
	}
	return m
}
