package gosimp

// ============================================================
// RatSimp, RadSimp
// ============================================================

// RatSimp joins the terms of every sum into one fraction pairwise,
// a/b + c/d = (a*d + b*c)/(b*d), and returns 0 when the joined numerator
// expands to zero. Common factors are not cancelled.
func RatSimp(expr Expr) Expr {
	switch v := expr.(type) {
	case *Pow:
		return PowOf(RatSimp(v.base), RatSimp(v.exp))
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = RatSimp(f)
		}
		return MulOf(fs...)
	case *Func:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = RatSimp(a)
		}
		return FuncOf(v.name, args...)
	case *Add:
		a, b := Fraction(RatSimp(v.terms[0]), false)
		c, d := Fraction(RatSimp(AddOf(v.terms[1:]...)), false)
		num := AddOf(MulOf(a, d), MulOf(b, c))
		if isNumEqual(Expand(num), 0) {
			return N(0)
		}
		return Quo(num, MulOf(b, d))
	}
	return expr
}

// RadSimp rationalizes a denominator of the form a + b*sqrt(c) by
// multiplying through with a - b*sqrt(c). The new numerator is expanded
// and collected over its symbols.
//
//	RadSimp(1/(2 + sqrt(2))) = 1 - sqrt(2)/2
//
// Other denominators are returned unchanged.
func RadSimp(expr Expr) Expr {
	n, d := Fraction(expr, false)
	a, b, c, ok := matchSqrtSum(d)
	if !ok {
		return Quo(n, d)
	}
	syms := SymbolsOf(n)
	patterns := make([]Expr, len(syms))
	for i, s := range syms {
		patterns[i] = s
	}
	expanded := Expand(MulOf(n, Minus(a, MulOf(b, SqrtOf(c)))))
	num, err := Collect(expanded, patterns, false)
	if err != nil {
		num = expanded
	}
	return Quo(num, Minus(PowOf(a, N(2)), MulOf(c, PowOf(b, N(2)))))
}

// matchSqrtSum reads d as a + b*sqrt(c), taking the first term of d that
// carries a square root factor.
func matchSqrtSum(d Expr) (a, b, c Expr, ok bool) {
	terms := addArgs(d)
	for i, t := range terms {
		fs := mulArgs(t)
		for j, f := range fs {
			p, isPow := f.(*Pow)
			if !isPow || !isHalf(p.exp) {
				continue
			}
			rest := make([]Expr, 0, len(fs)-1)
			rest = append(rest, fs[:j]...)
			rest = append(rest, fs[j+1:]...)
			others := make([]Expr, 0, len(terms)-1)
			others = append(others, terms[:i]...)
			others = append(others, terms[i+1:]...)
			return AddOf(others...), MulOf(rest...), p.base, true
		}
	}
	return nil, nil, nil, false
}

func isHalf(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(F(1, 2))
}
