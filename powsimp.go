package gosimp

// ============================================================
// PowSimp — merge powers sharing a base or an exponent
// ============================================================

// PowSimp combines the commutative factors of every product:
// x^a*x^b becomes x^(a+b), numeric coefficients are pulled out of
// exponents (2^(2*y) becomes 4^y), and bases sharing an exponent are
// merged (x^a*y^a becomes (x*y)^a). Non-commutative factors are kept in
// order after the merged part. With deep set, function arguments and
// power operands are simplified as well.
func PowSimp(expr Expr, deep bool) Expr {
	return powsimp(Separate(expr, deep), deep)
}

func powsimp(expr Expr, deep bool) Expr {
	switch v := expr.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = powsimp(t, deep)
		}
		return AddOf(terms...)
	case *Func:
		if !deep {
			return v
		}
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = PowSimp(a, deep)
		}
		return FuncOf(v.name, args...)
	case *Pow:
		if !deep {
			return v
		}
		return PowOf(PowSimp(v.base, deep), PowSimp(v.exp, deep))
	case *Mul:
		return powsimpMul(v)
	}
	return expr
}

func powsimpMul(m *Mul) Expr {
	cPowers := NewExprMap[Expr]()
	var ncPart []Expr
	for _, term := range m.factors {
		if !IsCommutative(term) {
			ncPart = append(ncPart, term)
			continue
		}
		b, e := asBaseExp(term)
		if prev, ok := cPowers.Get(b); ok {
			cPowers.Set(b, AddOf(prev, e))
		} else {
			cPowers.Set(b, e)
		}
	}

	// Pull numeric coefficients out of exponents: b^(c*t) -> (b^c)^t.
	for _, b := range cPowers.Keys() {
		e, _ := cPowers.Get(b)
		c, t := splitCoeff(e)
		if c.IsOne() || isOne(t) {
			continue
		}
		cPowers.Delete(b)
		nb := PowOf(b, c)
		if prev, ok := cPowers.Get(nb); ok {
			cPowers.Set(nb, AddOf(prev, t))
		} else {
			cPowers.Set(nb, t)
		}
	}

	// Merge bases that share an exponent.
	cExp := NewExprMap[[]Expr]()
	cPowers.Range(func(b, e Expr) bool {
		bs, _ := cExp.Get(e)
		cExp.Set(e, append(bs, b))
		return true
	})
	cExp.Range(func(e Expr, bases []Expr) bool {
		if len(bases) < 2 {
			return true
		}
		for _, b := range bases {
			cPowers.Delete(b)
		}
		nb := MulOf(bases...)
		if prev, ok := cPowers.Get(nb); ok {
			cPowers.Set(nb, AddOf(prev, e))
		} else {
			cPowers.Set(nb, e)
		}
		return true
	})

	parts := make([]Expr, 0, cPowers.Len()+len(ncPart))
	cPowers.Range(func(b, e Expr) bool {
		parts = append(parts, PowOf(b, e))
		return true
	})
	parts = append(parts, ncPart...)
	return MulOf(parts...)
}

// asBaseExp views a factor as base^exp, reading exp(a) as E^a.
func asBaseExp(e Expr) (Expr, Expr) {
	if f, ok := isExp(e); ok {
		return E, f.args[0]
	}
	return splitPow(e)
}
