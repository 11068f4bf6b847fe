package gosimp

// Canceler removes common factors from a fraction. Polynomial
// factorization is outside this package; callers plug it in here.
type Canceler interface {
	Cancel(num, den Expr) Expr
}

// CancelerFunc adapts a function to Canceler.
type CancelerFunc func(num, den Expr) Expr

func (f CancelerFunc) Cancel(num, den Expr) Expr { return f(num, den) }

// Simplify runs PowSimp, cancels the resulting fraction with c, expands
// and recombines with Together. A nil c skips cancellation.
func Simplify(expr Expr, c Canceler) Expr {
	e := PowSimp(expr, false)
	if c != nil {
		n, d := Fraction(e, false)
		e = c.Cancel(n, d)
	}
	return Together(Expand(e), false)
}

// CoefficientCanceler cancels fractions whose numerator and denominator
// differ only by a numeric factor, and evaluates purely numeric ones.
// Matching factors of products cancel through the normal product rules.
type CoefficientCanceler struct{}

func (CoefficientCanceler) Cancel(num, den Expr) Expr {
	if nn, ok := num.Eval(); ok {
		if dn, ok := den.Eval(); ok && !dn.IsZero() {
			return numDiv(nn, dn)
		}
	}
	if dn, ok := den.(*Num); ok {
		if dn.IsOne() {
			return num
		}
		if dn.IsZero() {
			return Quo(num, den)
		}
	}
	nc, nr := content(num)
	dc, dr := content(den)
	if nr.Equal(dr) {
		return numDiv(nc, dc)
	}
	return Quo(num, den)
}

// content splits e into a rational factor and a primitive part. For sums
// the factor normalizes the leading term's coefficient to 1.
func content(e Expr) (*Num, Expr) {
	a, ok := e.(*Add)
	if !ok {
		return splitCoeff(e)
	}
	c, _ := splitCoeff(a.terms[0])
	if c.IsOne() || c.IsZero() {
		return N(1), e
	}
	inv := numRecip(c)
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = MulOf(inv, t)
	}
	return c, AddOf(terms...)
}
