package gosimp

// ============================================================
// Assumption predicates
// ============================================================
//
// The predicates answer "known to be" questions: false means unknown or
// known not to hold. They inspect a node and its immediate operands.

func IsCommutative(e Expr) bool {
	switch v := e.(type) {
	case *Sym:
		return v.flags&Noncommutative == 0
	case *Add:
		return !v.nc
	case *Mul:
		return !v.nc
	case *Pow:
		return !v.nc
	case *Func:
		return !v.nc
	case *Derivative:
		return !v.nc
	}
	return true
}

func IsInteger(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsInteger()
	case *Sym:
		return v.Has(Integer)
	case *Add:
		return all(v.terms, IsInteger)
	case *Mul:
		return all(v.factors, IsInteger)
	case *Pow:
		return IsInteger(v.base) && IsInteger(v.exp) && IsNonnegative(v.exp)
	}
	return false
}

func IsRational(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return true
	case *Sym:
		return v.Has(Rational)
	case *Add:
		return all(v.terms, IsRational)
	case *Mul:
		return all(v.factors, IsRational)
	case *Pow:
		return IsRational(v.base) && IsInteger(v.exp)
	}
	return false
}

func IsReal(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return true
	case *Sym:
		return v.Has(Real)
	case *Add:
		return all(v.terms, IsReal)
	case *Mul:
		return all(v.factors, IsReal)
	case *Pow:
		if IsReal(v.base) && IsInteger(v.exp) {
			return true
		}
		return IsNonnegative(v.base) && IsReal(v.exp)
	case *Func:
		if len(v.args) != 1 {
			return false
		}
		switch v.name {
		case "exp", "sin", "cos", "sinh", "cosh", "tanh", "atan", "abs":
			return IsReal(v.args[0])
		case "ln":
			return IsPositive(v.args[0])
		}
	}
	return false
}

func IsPositive(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsPositive()
	case *Sym:
		return v.Has(Positive)
	case *Add:
		return all(v.terms, IsPositive)
	case *Mul:
		neg, ok := signCount(v.factors)
		return ok && neg%2 == 0
	case *Pow:
		return IsPositive(v.base) && IsReal(v.exp)
	case *Func:
		if v.name == "exp" && len(v.args) == 1 {
			return IsReal(v.args[0])
		}
	}
	return false
}

func IsNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsNegative()
	case *Sym:
		return v.Has(Negative)
	case *Add:
		return all(v.terms, IsNegative)
	case *Mul:
		neg, ok := signCount(v.factors)
		return ok && neg%2 == 1
	}
	return false
}

func IsNonnegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.val.Sign() >= 0
	case *Sym:
		return v.Has(Nonnegative)
	case *Add:
		return all(v.terms, IsNonnegative)
	case *Mul:
		return all(v.factors, IsNonnegative)
	case *Pow:
		if IsNonnegative(v.base) && IsReal(v.exp) {
			return true
		}
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && IsReal(v.base) {
			return n.val.Num().Bit(0) == 0
		}
	case *Func:
		switch v.name {
		case "abs":
			return true
		case "exp":
			return len(v.args) == 1 && IsReal(v.args[0])
		}
	}
	return false
}

// signCount counts the known-negative factors; ok is false when any
// factor's sign is unknown.
func signCount(fs []Expr) (neg int, ok bool) {
	for _, f := range fs {
		switch {
		case IsPositive(f):
		case IsNegative(f):
			neg++
		default:
			return 0, false
		}
	}
	return neg, true
}

func all(es []Expr, pred func(Expr) bool) bool {
	for _, e := range es {
		if !pred(e) {
			return false
		}
	}
	return true
}
