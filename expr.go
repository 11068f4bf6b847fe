// Package gosimp provides rational-expression normalization and
// pattern-based term collection over an immutable symbolic expression tree.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Canonical, immutable nodes with structural keys
//   - Deterministic output: every accumulator map preserves insertion order
//   - Pure functions, safe for concurrent use
package gosimp

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of the expression tree. The set of node kinds is closed:
// *Num, *Sym, *Add, *Mul, *Pow, *Func and *Derivative.
type Expr interface {
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	// Key is the canonical structural key. Two nodes are equal iff their
	// keys are identical.
	Key() string
	exprType() string
	toJSON() map[string]interface{}
}

// String and LaTeX are nil-safe conveniences around the methods.
func String(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func LaTeX(e Expr) string {
	if e == nil {
		return ""
	}
	return e.LaTeX()
}

func keyEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct {
	val *big.Rat
	key string
}

func newNum(r *big.Rat) *Num { return &Num{val: r, key: "n:" + r.RatString()} }

func N(n int64) *Num { return newNum(new(big.Rat).SetInt64(n)) }

func F(p, q int64) *Num {
	if q == 0 {
		panic("gosimp: denominator is zero")
	}
	return newNum(new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q)))
}

func NFloat(f float64) *Num { return newNum(new(big.Rat).SetFloat64(f)) }

// NRat wraps a copy of r.
func NRat(r *big.Rat) *Num { return newNum(new(big.Rat).Set(r)) }

func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { return keyEqual(n, other) }
func (n *Num) Key() string           { return n.key }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == 1 }
func (n *Num) IsNegOne() bool        { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == -1 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

// Numerator and Denominator return the integer parts of the reduced fraction.
func (n *Num) Numerator() *Num   { return newNum(new(big.Rat).SetInt(n.val.Num())) }
func (n *Num) Denominator() *Num { return newNum(new(big.Rat).SetInt(n.val.Denom())) }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return newNum(new(big.Rat).Add(a.val, b.val)) }
func numSub(a, b *Num) *Num { return newNum(new(big.Rat).Sub(a.val, b.val)) }
func numMul(a, b *Num) *Num { return newNum(new(big.Rat).Mul(a.val, b.val)) }
func numNeg(a *Num) *Num    { return newNum(new(big.Rat).Neg(a.val)) }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("gosimp: division by zero")
	}
	return newNum(new(big.Rat).Inv(a.val))
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

// maxExactExponent bounds the integer powers computed exactly; larger ones
// stay symbolic.
const maxExactExponent = 4096

// numPow computes b^e exactly. It reports false when the result is not a
// rational number (or would be too large to be worth materializing).
func numPow(b, e *Num) (*Num, bool) {
	if e.IsInteger() {
		ei := e.val.Num()
		if !ei.IsInt64() || ei.Int64() > maxExactExponent || ei.Int64() < -maxExactExponent {
			return nil, false
		}
		k := ei.Int64()
		if b.IsZero() {
			if k < 0 {
				return nil, false
			}
			return N(0), true
		}
		abs := big.NewInt(k)
		abs.Abs(abs)
		num := new(big.Int).Exp(b.val.Num(), abs, nil)
		den := new(big.Int).Exp(b.val.Denom(), abs, nil)
		if k < 0 {
			num, den = den, num
		}
		return newNum(new(big.Rat).SetFrac(num, den)), true
	}
	p, q := e.val.Num(), e.val.Denom()
	if !q.IsInt64() || q.Int64() > 64 {
		return nil, false
	}
	r, ok := numPow(b, newNum(new(big.Rat).SetInt(p)))
	if !ok {
		return nil, false
	}
	k := q.Int64()
	neg := r.val.Sign() < 0
	if neg && k%2 == 0 {
		return nil, false
	}
	num := new(big.Int).Abs(r.val.Num())
	rn, ok := intRoot(num, k)
	if !ok {
		return nil, false
	}
	rd, ok := intRoot(r.val.Denom(), k)
	if !ok {
		return nil, false
	}
	if neg {
		rn.Neg(rn)
	}
	return newNum(new(big.Rat).SetFrac(rn, rd)), true
}

// powerTrialBound caps the trial divisors used to pull perfect powers out
// of a numeric base.
const powerTrialBound = 4096

// numRootSplit rewrites b^e, for positive rational b and positive
// non-integer e = p/q, as c*m^(r/q) with r < q by pulling out the integer
// part of the exponent and every perfect q-th power factor of the base:
// 8^(1/2) = 2*2^(1/2) and 2^(3/2) = 2*2^(1/2). ok is false when c would
// be 1.
func numRootSplit(b, e *Num) (c, m, t *Num, ok bool) {
	if !b.IsPositive() || !e.IsPositive() || e.IsInteger() {
		return nil, nil, nil, false
	}
	p, q := e.val.Num(), e.val.Denom()
	if !q.IsInt64() || q.Int64() > 64 {
		return nil, nil, nil, false
	}
	whole, rem := new(big.Int).QuoRem(p, q, new(big.Int))
	wp, ok := numPow(b, newNum(new(big.Rat).SetInt(whole)))
	if !ok {
		return nil, nil, nil, false
	}
	k := q.Int64()
	an, mn := extractPower(b.val.Num(), k)
	ad, md := extractPower(b.val.Denom(), k)
	rp, ok := numPow(newNum(new(big.Rat).SetFrac(an, ad)), newNum(new(big.Rat).SetInt(rem)))
	if !ok {
		return nil, nil, nil, false
	}
	c = numMul(wp, rp)
	if c.IsOne() {
		return nil, nil, nil, false
	}
	return c, newNum(new(big.Rat).SetFrac(mn, md)), newNum(new(big.Rat).SetFrac(rem, q)), true
}

// extractPower splits n as a^k*m, dividing out k-th powers of the trial
// divisors up to powerTrialBound.
func extractPower(n *big.Int, k int64) (a, m *big.Int) {
	a = big.NewInt(1)
	m = new(big.Int).Set(n)
	kk := big.NewInt(k)
	for i := int64(2); i <= powerTrialBound; i++ {
		f := new(big.Int).Exp(big.NewInt(i), kk, nil)
		if f.Cmp(m) > 0 {
			break
		}
		for {
			quo, r := new(big.Int).QuoRem(m, f, new(big.Int))
			if r.Sign() != 0 {
				break
			}
			m = quo
			a.Mul(a, big.NewInt(i))
		}
	}
	return a, m
}

// intRoot returns the exact k-th root of a non-negative n.
func intRoot(n *big.Int, k int64) (*big.Int, bool) {
	if n.Sign() == 0 || k == 1 {
		return new(big.Int).Set(n), true
	}
	if k == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	kk := big.NewInt(k)
	lo := big.NewInt(0)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/int(k)+1))
	one := big.NewInt(1)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		c := new(big.Int).Exp(mid, kk, nil).Cmp(n)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid.Add(mid, one)
		default:
			hi = mid.Sub(mid, one)
		}
	}
	return nil, false
}

func gcdInt(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// ============================================================
// Sym — symbolic variable
// ============================================================

// Assumption is a declared algebraic property of a symbol.
type Assumption uint16

const (
	Integer Assumption = 1 << iota
	Rational
	Real
	Positive
	Negative
	Nonnegative
	Noncommutative
)

var assumptionNames = []struct {
	a    Assumption
	name string
}{
	{Integer, "integer"},
	{Rational, "rational"},
	{Real, "real"},
	{Positive, "positive"},
	{Negative, "negative"},
	{Nonnegative, "nonnegative"},
	{Noncommutative, "noncommutative"},
}

// ParseAssumption maps a lower-case assumption name to its flag.
func ParseAssumption(name string) (Assumption, bool) {
	for _, an := range assumptionNames {
		if an.name == name {
			return an.a, true
		}
	}
	return 0, false
}

func closeAssumptions(a Assumption) Assumption {
	if a&Integer != 0 {
		a |= Rational
	}
	if a&Positive != 0 {
		a |= Nonnegative
	}
	if a&(Rational|Positive|Negative|Nonnegative) != 0 {
		a |= Real
	}
	return a
}

type Sym struct {
	name  string
	flags Assumption
	key   string
}

// S returns the symbol name carrying the given assumptions.
func S(name string, assumptions ...Assumption) *Sym {
	var flags Assumption
	for _, a := range assumptions {
		flags |= a
	}
	flags = closeAssumptions(flags)
	key := "s:" + strconv.Quote(name)
	if flags != 0 {
		key += "|" + strconv.FormatUint(uint64(flags), 16)
	}
	return &Sym{name: name, flags: flags, key: key}
}

func (s *Sym) String() string          { return s.name }
func (s *Sym) LaTeX() string           { return s.name }
func (s *Sym) Eval() (*Num, bool)      { return nil, false }
func (s *Sym) Equal(other Expr) bool   { return keyEqual(s, other) }
func (s *Sym) Key() string             { return s.key }
func (s *Sym) exprType() string        { return "sym" }
func (s *Sym) Name() string            { return s.name }
func (s *Sym) Has(a Assumption) bool   { return s.flags&a == a }
func (s *Sym) Assumptions() Assumption { return s.flags }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name}
	var as []string
	for _, an := range assumptionNames {
		if s.flags&an.a != 0 {
			as = append(as, an.name)
		}
	}
	if len(as) > 0 {
		m["assumptions"] = as
	}
	return m
}

// ============================================================
// Ordering and keys
// ============================================================

func joinKeys(es []Expr) string {
	var sb strings.Builder
	for i, e := range es {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.Key())
	}
	return sb.String()
}

func anyNoncommutative(es ...Expr) bool {
	for _, e := range es {
		if !IsCommutative(e) {
			return true
		}
	}
	return false
}

// orderKey groups powers next to their bases so that printed products read
// x*x^2*y rather than following raw key order.
func orderKey(e Expr) string {
	switch v := e.(type) {
	case *Pow:
		return orderKey(v.base) + "\x01" + v.exp.Key()
	case *Mul:
		var sb strings.Builder
		for _, f := range v.factors {
			if _, ok := f.(*Num); ok {
				continue
			}
			sb.WriteString(orderKey(f))
			sb.WriteByte('\x02')
		}
		return sb.String()
	}
	return e.Key()
}

func sortExprs(es []Expr) {
	type keyed struct {
		e          Expr
		order, key string
	}
	ks := make([]keyed, len(es))
	for i, e := range es {
		ks[i] = keyed{e: e, order: orderKey(e), key: e.Key()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].order != ks[j].order {
			return ks[i].order < ks[j].order
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		es[i] = ks[i].e
	}
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == v
}

func isIntegerNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsInteger()
}

func isOne(e Expr) bool { return isNumEqual(e, 1) }
