package gosimp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ============================================================
// Collect — group additive terms by pattern
// ============================================================

// CollectOption configures Collect and CollectDict.
type CollectOption func(*collectConfig)

type collectConfig struct {
	logger *slog.Logger
	ctx    context.Context
}

// WithLogger sends a debug record for every term the collector parses and
// every pattern it matches.
func WithLogger(l *slog.Logger) CollectOption {
	return func(c *collectConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContext attaches ctx to the emitted log records.
func WithContext(ctx context.Context) CollectOption {
	return func(c *collectConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func newCollectConfig(opts []CollectOption) *collectConfig {
	c := &collectConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), ctx: context.Background()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect groups the terms of expr by the patterns in syms and returns
// the sum of pattern*coefficient. Patterns are tried in the given order
// and the first one matching a term wins. Terms matching no pattern are
// left as they are.
//
// Without exact, a pattern also matches a uniform power of itself:
// collecting x gathers x^2 terms under x^2. With exact, exponents and
// derivative orders must agree literally.
//
//	Collect(a*x^2 + b*x^2 + a*x - b*x + c, [x]) = x^2*(a + b) + x*(a - b) + c
//
// Products and powers are collected factor-wise before matching.
func Collect(expr Expr, syms []Expr, exact bool, opts ...CollectOption) (Expr, error) {
	switch v := expr.(type) {
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			c, err := Collect(f, syms, exact, opts...)
			if err != nil {
				return nil, err
			}
			fs[i] = c
		}
		return MulOf(fs...), nil
	case *Pow:
		b, err := Collect(v.base, syms, exact, opts...)
		if err != nil {
			return nil, err
		}
		return PowOf(b, v.exp), nil
	}
	collected, err := collect(expr, syms, exact, newCollectConfig(opts))
	if err != nil {
		return nil, err
	}
	terms := make([]Expr, 0, collected.Len())
	collected.Range(func(k, v Expr) bool {
		terms = append(terms, MulOf(k, v))
		return true
	})
	return AddOf(terms...), nil
}

// CollectDict is Collect without the final summation: it maps every
// collected pattern power to its coefficient. Unmatched terms are
// gathered under the key 1.
func CollectDict(expr Expr, syms []Expr, exact bool, opts ...CollectOption) (*ExprMap[Expr], error) {
	return collect(expr, syms, exact, newCollectConfig(opts))
}

func collect(expr Expr, syms []Expr, exact bool, cfg *collectConfig) (*ExprMap[Expr], error) {
	patterns := make([]Expr, len(syms))
	for i, s := range syms {
		patterns[i] = Separate(s, false)
	}

	collected := NewExprMap[Expr]()
	var disliked []Expr
	for _, t := range addArgs(expr) {
		product := Separate(t, false)
		factors := mulArgs(product)
		terms := make([]termInfo, len(factors))
		for i, f := range factors {
			ti, err := parseTerm(f)
			if err != nil {
				return nil, err
			}
			terms[i] = ti
		}
		cfg.logger.DebugContext(cfg.ctx, "collect: parsed term", slog.String("term", product.String()), slog.Int("factors", len(terms)))

		matched := false
		for _, pattern := range patterns {
			res, ok, err := parseExpression(terms, pattern, exact)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			index := makeExpression(res.elems)
			rest := Separate(makeExpression(res.remaining), false)
			attrs := []any{slog.String("pattern", pattern.String()), slog.String("index", index.String()), slog.String("coefficient", rest.String())}
			if res.common != nil {
				attrs = append(attrs, slog.String("common_exponent", res.common.String()))
			}
			cfg.logger.DebugContext(cfg.ctx, "collect: matched", attrs...)
			addInto(collected, index, rest)
			matched = true
			break
		}
		if !matched {
			disliked = append(disliked, product)
		}
	}
	if len(disliked) > 0 {
		if d := AddOf(disliked...); !isNumEqual(d, 0) {
			addInto(collected, N(1), d)
		}
	}
	return collected, nil
}

func addInto(m *ExprMap[Expr], k, v Expr) {
	if prev, ok := m.Get(k); ok {
		m.Set(k, AddOf(prev, v))
		return
	}
	m.Set(k, v)
}

// ============================================================
// Term decomposition
// ============================================================

type derivInfo struct {
	sym   *Sym
	order int
}

// termInfo describes one multiplicative factor as base^(rat*sym), where
// base may carry a single-variable derivative of the given order.
type termInfo struct {
	base  Expr
	rat   *Num
	sym   Expr
	deriv *derivInfo
}

func parseTerm(expr Expr) (termInfo, error) {
	t := termInfo{base: expr, rat: N(1)}
	switch v := expr.(type) {
	case *Pow:
		t.base = v.base
		if d, ok := v.base.(*Derivative); ok {
			base, di, err := parseDerivative(d)
			if err != nil {
				return termInfo{}, err
			}
			t.base, t.deriv = base, di
		}
		switch e := v.exp.(type) {
		case *Num:
			t.rat = e
		case *Mul:
			c, tail := splitCoeff(e)
			t.rat, t.sym = c, tail
		default:
			t.sym = v.exp
		}
	case *Func:
		if f, ok := isExp(v); ok {
			switch arg := f.args[0].(type) {
			case *Num:
				t.base, t.rat = E, arg
			case *Mul:
				c, tail := splitCoeff(arg)
				t.base, t.rat = ExpOf(tail), c
			}
		}
	case *Derivative:
		base, di, err := parseDerivative(v)
		if err != nil {
			return termInfo{}, err
		}
		t.base, t.deriv = base, di
	}
	return t, nil
}

// parseDerivative unwinds a derivative taken repeatedly with respect to a
// single symbol.
func parseDerivative(d *Derivative) (Expr, *derivInfo, error) {
	sym := d.vars[0]
	for _, v := range d.vars[1:] {
		if !v.Equal(sym) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedDerivative, d.String())
		}
	}
	return d.expr, &derivInfo{sym: sym, order: len(d.vars)}, nil
}

// makeExpression rebuilds the product of decomposed factors.
func makeExpression(terms []termInfo) Expr {
	product := make([]Expr, len(terms))
	for i, t := range terms {
		term := t.base
		if t.deriv != nil {
			vars := make([]*Sym, t.deriv.order)
			for j := range vars {
				vars[j] = t.deriv.sym
			}
			term = DerivativeOf(term, vars...)
		}
		exp := Expr(t.rat)
		if t.sym != nil {
			exp = MulOf(t.rat, t.sym)
		}
		product[i] = PowOf(term, exp)
	}
	return MulOf(product...)
}

// ============================================================
// Pattern matching
// ============================================================

type matchResult struct {
	remaining []termInfo
	elems     []termInfo
	common    *Num
}

// parseExpression matches every factor of pattern against a distinct
// factor of terms, scanning greedily in order. terms is not modified.
// The common exponent ratio is only reported for logging; the collected
// key is always rebuilt from the matched factors' own exponents.
func parseExpression(terms []termInfo, pattern Expr, exact bool) (matchResult, bool, error) {
	pfactors := mulArgs(pattern)
	if len(terms) < len(pfactors) {
		return matchResult{}, false, nil
	}
	res := matchResult{remaining: append([]termInfo(nil), terms...)}
	for _, pf := range pfactors {
		if _, isNum := pf.(*Num); isNum {
			continue
		}
		elem, err := parseTerm(pf)
		if err != nil {
			return matchResult{}, false, err
		}
		found := -1
		for j, t := range res.remaining {
			if !sameShape(elem, t) {
				continue
			}
			if exact {
				if !t.rat.Equal(elem.rat) || derivOrder(t) != derivOrder(elem) {
					continue
				}
			} else {
				ratio := numDiv(t.rat, elem.rat)
				switch {
				case res.common == nil:
					res.common = ratio
				case !res.common.Equal(ratio):
					res.common = N(1)
				}
			}
			found = j
			break
		}
		if found < 0 {
			return matchResult{}, false, nil
		}
		res.elems = append(res.elems, res.remaining[found])
		next := make([]termInfo, 0, len(res.remaining)-1)
		next = append(next, res.remaining[:found]...)
		res.remaining = append(next, res.remaining[found+1:]...)
	}
	return res, true, nil
}

// sameShape compares the parts of two factors that must agree in every
// mode: the base, the symbolic exponent and the differentiation variable.
func sameShape(pattern, term termInfo) bool {
	if !pattern.base.Equal(term.base) || !keyEqual(pattern.sym, term.sym) {
		return false
	}
	if (pattern.deriv == nil) != (term.deriv == nil) {
		return false
	}
	return pattern.deriv == nil || pattern.deriv.sym.Equal(term.deriv.sym)
}

func derivOrder(t termInfo) int {
	if t.deriv == nil {
		return 0
	}
	return t.deriv.order
}
