package gosimp

import "math/big"

// ============================================================
// Together — combine rational terms over a common denominator
// ============================================================

// Together rewrites a sum of rational terms as a single fraction whose
// denominator is the product of every denominator base raised to the
// largest exponent it carries in any addend:
//
//	Together(1/x + 1/y)        = (x + y)/(x*y)
//	Together(1/(x*y) + 1/y^2)  = (x + y)/(x*y^2)
//
// Products and powers are processed operand-wise; function arguments only
// when deep is set. No polynomial cancellation is attempted. Like
// Separate, the pre-pass ignores branch cuts of fractional powers.
func Together(expr Expr, deep bool) Expr {
	return together(Separate(expr, false), deep)
}

type basisEntry struct {
	total, max *Num
}

type addendParts struct {
	numer Expr
	denom *ExprMap[*Num]
	coeff *Num
}

func together(expr Expr, deep bool) Expr {
	switch v := expr.(type) {
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = together(f, deep)
		}
		return MulOf(fs...)
	case *Pow:
		return PowOf(together(v.base, deep), together(v.exp, deep))
	case *Func:
		if !deep {
			return v
		}
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = together(a, deep)
		}
		return FuncOf(v.name, args...)
	case *Add:
		return togetherAdd(v, deep)
	}
	return expr
}

func togetherAdd(a *Add, deep bool) Expr {
	basis := NewExprMap[basisEntry]()
	items := make([]addendParts, 0, len(a.terms))
	for _, t := range a.terms {
		numer, q := Fraction(together(t, deep), false)
		item := addendParts{numer: numer, denom: NewExprMap[*Num](), coeff: N(1)}
		for _, term := range mulArgs(Expand(q)) {
			base, expo, coeff := denomTerm(term)
			item.coeff = numMul(item.coeff, coeff)
			if base == nil {
				continue
			}
			prev, _ := item.denom.Get(base)
			if prev == nil {
				prev = N(0)
			}
			item.denom.Set(base, numAdd(prev, expo))
			if be, ok := basis.Get(base); ok {
				mx := be.max
				if numCmp(expo, mx) > 0 {
					mx = expo
				}
				basis.Set(base, basisEntry{total: numAdd(be.total, expo), max: mx})
			} else {
				basis.Set(base, basisEntry{total: expo, max: expo})
			}
		}
		items = append(items, item)
	}

	// Common denominator.
	denoms := make([]Expr, 0, basis.Len())
	basis.Range(func(base Expr, be basisEntry) bool {
		denoms = append(denoms, basisPower(base, be.max))
		return true
	})

	// Numeric scale: the addend coefficients multiply their numerators and
	// share their integer gcd.
	g := new(big.Int)
	for _, it := range items {
		g = gcdInt(g, it.coeff.val.Num())
	}
	if g.Sign() == 0 {
		g.SetInt64(1)
	}
	scale := newNum(new(big.Rat).SetInt(g))

	numers := make([]Expr, 0, len(items))
	for _, it := range items {
		fs := []Expr{numDiv(it.coeff, scale), it.numer}
		basis.Range(func(base Expr, be basisEntry) bool {
			sub := numSub(be.total, be.max)
			d, ok := it.denom.Get(base)
			if !ok {
				d = N(0)
			}
			fs = append(fs, basisPower(base, numSub(numSub(be.total, sub), d)))
			return true
		})
		numers = append(numers, MulOf(fs...))
	}
	return MulOf(scale, AddOf(numers...), PowOf(MulOf(denoms...), N(-1)))
}

// denomTerm decomposes one factor of an expanded denominator into a basis
// key, its rational exponent and a numeric coefficient that multiplies the
// addend's numerator. A nil base means the factor is purely numeric.
func denomTerm(term Expr) (base Expr, expo, coeff *Num) {
	switch v := term.(type) {
	case *Pow:
		if r, ok := v.exp.(*Num); ok {
			return v.base, r, N(1)
		}
		if m, ok := v.exp.(*Mul); ok {
			c, tail := splitCoeff(m)
			if !c.IsOne() {
				return PowOf(v.base, tail), c, N(1)
			}
		}
		return v, N(1), N(1)
	case *Func:
		if f, ok := isExp(v); ok {
			switch arg := f.args[0].(type) {
			case *Num:
				return E, arg, N(1)
			case *Mul:
				c, tail := splitCoeff(arg)
				if !c.IsOne() {
					return ExpOf(tail), c, N(1)
				}
			}
		}
		return v, N(1), N(1)
	case *Num:
		if v.IsOne() {
			return nil, N(1), N(1)
		}
		if v.IsInteger() {
			return v, N(1), N(1)
		}
		// A factor p/q of the denominator is p in the basis and q on the
		// numerator.
		p := v.Numerator()
		if p.IsOne() {
			return nil, N(1), v.Denominator()
		}
		return p, N(1), v.Denominator()
	}
	return term, N(1), N(1)
}

// basisPower raises a basis key to e, rebuilding exponential keys as exp.
func basisPower(base Expr, e *Num) Expr {
	if f, ok := isExp(base); ok {
		return ExpOf(MulOf(e, f.args[0]))
	}
	return PowOf(base, e)
}
