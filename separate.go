package gosimp

// ============================================================
// Separate — distribute exponents over products
// ============================================================

// Separate rewrites (f1*f2*...)^e as f1^e * f2^e * ... recursively and
// exp(a)^e as exp(a*e). Sums are never expanded. Function arguments are
// visited only when deep is set.
//
// The rewrite ignores branch cuts: (x*y)^(1/2) becomes x^(1/2)*y^(1/2)
// even though that only holds for nonnegative x and y.
func Separate(expr Expr, deep bool) Expr {
	switch v := expr.(type) {
	case *Pow:
		exp := Separate(v.exp, deep)
		if f, ok := isExp(v.base); ok {
			arg := f.args[0]
			if deep {
				arg = Separate(arg, deep)
			}
			return ExpOf(MulOf(arg, exp))
		}
		base := Separate(v.base, deep)
		if b, ok := base.(*Mul); ok {
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = Separate(PowOf(f, exp), deep)
			}
			return MulOf(fs...)
		}
		return PowOf(base, exp)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Separate(t, deep)
		}
		return AddOf(terms...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = Separate(f, deep)
		}
		return MulOf(fs...)
	case *Func:
		if !deep {
			return v
		}
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = Separate(a, deep)
		}
		return FuncOf(v.name, args...)
	}
	return expr
}
