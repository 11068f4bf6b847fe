package gosimp

import "strings"

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct {
	terms []Expr
	key   string
	nc    bool
}

func newAdd(terms []Expr) *Add {
	return &Add{terms: terms, key: "a(" + joinKeys(terms) + ")", nc: anyNoncommutative(terms...)}
}

// AddOf builds a canonical sum: nested sums are flattened, numbers folded,
// like terms combined and the result ordered with the number last.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}
	numAccum := N(0)
	coeffs := NewExprMap[*Num]()
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, n)
			continue
		}
		c, rest := splitCoeff(t)
		if prev, ok := coeffs.Get(rest); ok {
			coeffs.Set(rest, numAdd(prev, c))
		} else {
			coeffs.Set(rest, c)
		}
	}
	result := make([]Expr, 0, coeffs.Len()+1)
	coeffs.Range(func(rest Expr, c *Num) bool {
		switch {
		case c.IsZero():
		case c.IsOne():
			result = append(result, rest)
		default:
			result = append(result, withCoeff(c, rest))
		}
		return true
	})
	sortExprs(result)
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return newAdd(result)
}

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool { return keyEqual(a, other) }
func (a *Add) Key() string           { return a.key }
func (a *Add) exprType() string      { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}

// Terms returns the addends. The slice must not be modified.
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct {
	factors []Expr
	key     string
	nc      bool
}

func newMul(factors []Expr) *Mul {
	return &Mul{factors: factors, key: "m(" + joinKeys(factors) + ")", nc: anyNoncommutative(factors...)}
}

// MulOf builds a canonical product. Numeric factors fold into one leading
// coefficient; commutative factors sharing a base merge by adding
// exponents and are ordered; non-commutative factors keep their relative
// order after the commutative ones. Positive numeric bases sharing a
// rational exponent are multiplied (2^(1/2)*8^(1/2) = 4). A number times a
// single sum is distributed.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}
	coeff := N(1)
	groups := NewExprMap[[]Expr]()
	firstOf := NewExprMap[Expr]()
	var nc []Expr
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		if !IsCommutative(f) {
			nc = append(nc, f)
			continue
		}
		b, e := splitPow(f)
		exps, _ := groups.Get(b)
		groups.Set(b, append(exps, e))
		if !firstOf.Has(b) {
			firstOf.Set(b, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	reflatten := false
	merged := make([]Expr, 0, groups.Len())
	groups.Range(func(b Expr, exps []Expr) bool {
		var p Expr
		if len(exps) == 1 {
			p, _ = firstOf.Get(b)
		} else {
			p = PowOf(b, AddOf(exps...))
		}
		switch v := p.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			reflatten = true
			merged = append(merged, v)
		default:
			merged = append(merged, p)
		}
		return true
	})

	if m, ok := mergeNumericRadicals(merged); ok {
		merged = m
		reflatten = true
	}

	ncMerged := make([]Expr, 0, len(nc))
	for _, f := range nc {
		if n := len(ncMerged); n > 0 {
			pb, pe := splitPow(ncMerged[n-1])
			b, e := splitPow(f)
			if pb.Equal(b) {
				p := PowOf(b, AddOf(pe, e))
				if isOne(p) {
					ncMerged = ncMerged[:n-1]
				} else {
					ncMerged[n-1] = p
				}
				continue
			}
		}
		ncMerged = append(ncMerged, f)
	}

	if reflatten {
		all := make([]Expr, 0, len(merged)+len(ncMerged)+1)
		all = append(all, coeff)
		all = append(all, merged...)
		all = append(all, ncMerged...)
		return MulOf(all...)
	}
	if coeff.IsZero() {
		return N(0)
	}
	sortExprs(merged)
	if len(merged)+len(ncMerged) == 0 {
		return coeff
	}
	if !coeff.IsOne() && len(merged) == 1 && len(ncMerged) == 0 {
		if a, ok := merged[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = MulOf(coeff, t)
			}
			return AddOf(terms...)
		}
	}
	out := make([]Expr, 0, len(merged)+len(ncMerged)+1)
	if !coeff.IsOne() {
		out = append(out, coeff)
	}
	out = append(out, merged...)
	out = append(out, ncMerged...)
	if len(out) == 1 {
		return out[0]
	}
	return newMul(out)
}

// mergeNumericRadicals multiplies together the positive numeric bases of
// factors raised to the same rational exponent. ok reports whether any
// factors were merged.
func mergeNumericRadicals(fs []Expr) ([]Expr, bool) {
	byExp := NewExprMap[[]int]()
	for i, f := range fs {
		p, isPow := f.(*Pow)
		if !isPow {
			continue
		}
		b, isNum := p.base.(*Num)
		if _, ratExp := p.exp.(*Num); !isNum || !ratExp || !b.IsPositive() {
			continue
		}
		idx, _ := byExp.Get(p.exp)
		byExp.Set(p.exp, append(idx, i))
	}
	drop := make(map[int]bool)
	var joined []Expr
	byExp.Range(func(e Expr, idx []int) bool {
		if len(idx) < 2 {
			return true
		}
		prod := N(1)
		for _, i := range idx {
			prod = numMul(prod, fs[i].(*Pow).base.(*Num))
			drop[i] = true
		}
		joined = append(joined, PowOf(prod, e))
		return true
	})
	if len(joined) == 0 {
		return fs, false
	}
	out := make([]Expr, 0, len(fs)-len(drop)+len(joined))
	for i, f := range fs {
		if !drop[i] {
			out = append(out, f)
		}
	}
	return append(out, joined...), true
}

// Quo returns a/b as a*b^-1.
func Quo(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, 0, len(m.factors))
	prefix := ""
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 && n.IsNegOne() {
			prefix = "-"
			continue
		}
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "("+f.String()+")")
		} else {
			parts = append(parts, f.String())
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		_, isAdd := f.(*Add)
		if isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool { return keyEqual(m, other) }
func (m *Mul) Key() string           { return m.key }
func (m *Mul) exprType() string      { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}

// Factors returns the factors, coefficient first. The slice must not be
// modified.
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Decomposition helpers
// ============================================================

// splitCoeff returns the numeric coefficient of e and the remaining
// product (1 when e is a number).
func splitCoeff(e Expr) (*Num, Expr) {
	switch v := e.(type) {
	case *Num:
		return v, N(1)
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return c, rest[0]
			}
			return c, newMul(rest)
		}
	}
	return N(1), e
}

// withCoeff rebuilds c*rest from a canonical coefficient-free rest without
// re-canonicalizing.
func withCoeff(c *Num, rest Expr) Expr {
	if m, ok := rest.(*Mul); ok {
		fs := make([]Expr, 0, len(m.factors)+1)
		fs = append(fs, c)
		fs = append(fs, m.factors...)
		return newMul(fs)
	}
	if _, ok := rest.(*Add); ok {
		return MulOf(c, rest)
	}
	return newMul([]Expr{c, rest})
}

// splitPow views e as base^exp with exp defaulting to 1.
func splitPow(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

// mulArgs lists the factors of a product, or e itself.
func mulArgs(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

// addArgs lists the terms of a sum, or e itself.
func addArgs(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}
