package gosimp

import "sort"

// ============================================================
// Expand, substitution, free symbols
// ============================================================

// maxExpandPower bounds the multinomial expansion of (a + b + ...)^n.
const maxExpandPower = 32

// Expand distributes products over sums and expands small integer powers
// of sums, recursing into function arguments. A negative integer power of
// a sum expands its base under the reciprocal.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Expand(t)
		}
		return AddOf(terms...)
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = Expand(f)
		}
		return distribute(expanded)
	case *Pow:
		base := Expand(v.base)
		exp := Expand(v.exp)
		n, ok := exp.(*Num)
		if !ok || !n.IsInteger() {
			return PowOf(base, exp)
		}
		if _, isAdd := base.(*Add); !isAdd {
			return PowOf(base, exp)
		}
		k := n.val.Num().Int64()
		neg := k < 0
		if neg {
			k = -k
		}
		if k > maxExpandPower {
			return PowOf(base, exp)
		}
		result := Expr(N(1))
		for i := int64(0); i < k; i++ {
			result = distribute([]Expr{result, base})
		}
		if neg {
			return PowOf(result, N(-1))
		}
		return result
	case *Func:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = Expand(a)
		}
		return FuncOf(v.name, args...)
	case *Derivative:
		return DerivativeOf(Expand(v.expr), v.vars...)
	}
	return e
}

// distribute multiplies out already-expanded factors, keeping factor order
// within every product so non-commutative factors stay in place.
func distribute(factors []Expr) Expr {
	products := [][]Expr{{}}
	for _, f := range factors {
		terms := addArgs(f)
		next := make([][]Expr, 0, len(products)*len(terms))
		for _, p := range products {
			for _, t := range terms {
				np := make([]Expr, len(p), len(p)+1)
				copy(np, p)
				next = append(next, append(np, t))
			}
		}
		products = next
	}
	sums := make([]Expr, len(products))
	for i, p := range products {
		sums[i] = MulOf(p...)
	}
	out := AddOf(sums...)
	if m, ok := out.(*Mul); ok {
		// Merging equal bases can surface a bare sum, e.g. sqrt(s)*sqrt(s).
		for _, f := range m.factors {
			if _, isAdd := f.(*Add); isAdd {
				return distribute(m.factors)
			}
		}
	}
	return out
}

// Subs substitutes every bound symbol simultaneously.
func Subs(e Expr, bindings map[string]Expr) Expr {
	switch v := e.(type) {
	case *Sym:
		if val, ok := bindings[v.name]; ok {
			return val
		}
		return v
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Subs(t, bindings)
		}
		return AddOf(terms...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = Subs(f, bindings)
		}
		return MulOf(fs...)
	case *Pow:
		return PowOf(Subs(v.base, bindings), Subs(v.exp, bindings))
	case *Func:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = Subs(a, bindings)
		}
		return FuncOf(v.name, args...)
	case *Derivative:
		for _, s := range v.vars {
			if _, ok := bindings[s.name]; ok {
				return v
			}
		}
		return DerivativeOf(Subs(v.expr, bindings), v.vars...)
	}
	return e
}

// Evalf evaluates a closed expression to a float64.
func Evalf(e Expr) (float64, bool) {
	n, ok := e.Eval()
	if !ok {
		return 0, false
	}
	return n.Float64(), true
}

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	for _, s := range SymbolsOf(e) {
		result[s.name] = struct{}{}
	}
	return result
}

// SymbolsOf returns the distinct symbols of e ordered by name.
func SymbolsOf(e Expr) []*Sym {
	seen := NewExprMap[*Sym]()
	collectSymbols(e, seen)
	out := make([]*Sym, 0, seen.Len())
	seen.Range(func(_ Expr, s *Sym) bool {
		out = append(out, s)
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func collectSymbols(e Expr, out *ExprMap[*Sym]) {
	switch v := e.(type) {
	case *Sym:
		out.Set(v, v)
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		for _, a := range v.args {
			collectSymbols(a, out)
		}
	case *Derivative:
		collectSymbols(v.expr, out)
		for _, s := range v.vars {
			out.Set(s, s)
		}
	}
}
