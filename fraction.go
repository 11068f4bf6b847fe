package gosimp

// ============================================================
// Fraction — numerator/denominator decomposition
// ============================================================

// Fraction splits expr into a numerator and a denominator such that
// numer/denom equals expr. No common factors are cancelled.
//
// A power with a negative exponent contributes base^(-exp) to the
// denominator; exp(a) is treated as E^a. Unless exact is set, an exponent
// of the form c*t with c a negative rational is also read as a reciprocal,
// so x^(-y) splits as 1/x^y. A non-integer rational p/q contributes p and q.
func Fraction(expr Expr, exact bool) (numer, denom Expr) {
	var nums, dens []Expr
	for _, term := range mulArgs(expr) {
		switch v := term.(type) {
		case *Pow:
			if toDenominator(v.exp, exact) {
				dens = append(dens, PowOf(v.base, Neg(v.exp)))
			} else {
				nums = append(nums, v)
			}
		case *Func:
			if f, ok := isExp(v); ok && toDenominator(f.args[0], exact) {
				dens = append(dens, ExpOf(Neg(f.args[0])))
			} else {
				nums = append(nums, v)
			}
		case *Num:
			if v.IsInteger() {
				nums = append(nums, v)
			} else {
				nums = append(nums, v.Numerator())
				dens = append(dens, v.Denominator())
			}
		default:
			nums = append(nums, term)
		}
	}
	return MulOf(nums...), MulOf(dens...)
}

// toDenominator reports whether a power with exponent exp belongs in the
// denominator.
func toDenominator(exp Expr, exact bool) bool {
	if IsNegative(exp) {
		return true
	}
	if exact {
		return false
	}
	if m, ok := exp.(*Mul); ok {
		c, _ := splitCoeff(m)
		return c.IsNegative()
	}
	return false
}

// Numer returns the numerator of expr.
func Numer(expr Expr) Expr {
	n, _ := Fraction(expr, false)
	return n
}

// Denom returns the denominator of expr.
func Denom(expr Expr) Expr {
	_, d := Fraction(expr, false)
	return d
}

// FractionExpand expands numerator and denominator separately and
// recombines them.
func FractionExpand(expr Expr) Expr {
	n, d := Fraction(expr, false)
	return Quo(Expand(n), Expand(d))
}

// NumerExpand expands only the numerator.
func NumerExpand(expr Expr) Expr {
	n, d := Fraction(expr, false)
	return Quo(Expand(n), d)
}

// DenomExpand expands only the denominator.
func DenomExpand(expr Expr) Expr {
	n, d := Fraction(expr, false)
	return Quo(n, Expand(d))
}
