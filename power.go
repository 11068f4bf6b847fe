package gosimp

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct {
	base, exp Expr
	key       string
	nc        bool
}

func newPow(base, exp Expr) *Pow {
	return &Pow{base: base, exp: exp, key: "p(" + base.Key() + "," + exp.Key() + ")", nc: anyNoncommutative(base, exp)}
}

// PowOf builds base^exp. Exact numeric powers are evaluated and perfect
// powers are pulled out of numeric radicals (8^(1/2) = 2*2^(1/2)); (b^e1)^e2
// folds to b^(e1*e2) when e2 is an integer or b is known nonnegative with
// real exponents; integer powers distribute over commutative products and
// into exp(). Everything else stays an opaque pair.
func PowOf(base, exp Expr) Expr {
	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return N(1)
		}
		if en, ok := exp.(*Num); ok {
			if r, ok := numPow(bn, en); ok {
				return r
			}
			if c, m, t, ok := numRootSplit(bn, en); ok {
				return MulOf(c, PowOf(m, t))
			}
			return newPow(base, exp)
		}
		if bn.IsZero() && IsPositive(exp) {
			return N(0)
		}
		return newPow(base, exp)
	}
	switch b := base.(type) {
	case *Pow:
		if isIntegerNum(exp) || (IsNonnegative(b.base) && IsReal(b.exp) && IsReal(exp)) {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
	case *Mul:
		if isIntegerNum(exp) && !b.nc {
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, exp)
			}
			return MulOf(fs...)
		}
	case *Func:
		if b.name == "exp" {
			if isOne(b.args[0]) {
				return ExpOf(exp)
			}
			if isIntegerNum(exp) {
				return ExpOf(MulOf(b.args[0], exp))
			}
		}
	}
	return newPow(base, exp)
}

// SqrtOf returns arg^(1/2).
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if !b.IsInteger() || b.IsNegative() {
			baseStr = "(" + baseStr + ")"
		}
	}
	switch e := p.exp.(type) {
	case *Sym, *Func:
	case *Num:
		if !e.IsInteger() || e.IsNegative() {
			expStr = "(" + expStr + ")"
		}
	default:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok && n.val.Cmp(F(1, 2).val) == 0 {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	expStr := p.exp.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + expStr + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if r, ok := numPow(b, e); ok {
		return r, true
	}
	bf, _ := b.val.Float64()
	ef, _ := e.val.Float64()
	pf := math.Pow(bf, ef)
	if math.IsNaN(pf) || math.IsInf(pf, 0) {
		return nil, false
	}
	return NFloat(pf), true
}

func (p *Pow) Equal(other Expr) bool { return keyEqual(p, other) }
func (p *Pow) Key() string           { return p.key }
func (p *Pow) exprType() string      { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	args []Expr
	key  string
	nc   bool
}

func newFunc(name string, args []Expr) *Func {
	return &Func{name: name, args: args, key: "f:" + name + "(" + joinKeys(args) + ")", nc: anyNoncommutative(args...)}
}

// FuncOf applies the function name to args. Undefined names are kept as
// opaque applications, so FuncOf("f", x) is f(x).
func FuncOf(name string, args ...Expr) Expr {
	cp := make([]Expr, len(args))
	copy(cp, args)
	if len(cp) == 1 {
		arg := cp[0]
		switch name {
		case "sin", "tan", "sinh", "tanh", "asin", "atan":
			if isNumEqual(arg, 0) {
				return N(0)
			}
		case "cos", "cosh":
			if isNumEqual(arg, 0) {
				return N(1)
			}
		case "ln":
			if isOne(arg) {
				return N(0)
			}
			if inner, ok := arg.(*Func); ok && inner.name == "exp" {
				return inner.args[0]
			}
		case "exp":
			if isNumEqual(arg, 0) {
				return N(1)
			}
			if inner, ok := arg.(*Func); ok && inner.name == "ln" {
				return inner.args[0]
			}
		case "abs":
			if n, ok := arg.(*Num); ok {
				if n.IsNegative() {
					return numNeg(n)
				}
				return n
			}
			if IsNonnegative(arg) {
				return arg
			}
		}
	}
	return newFunc(name, cp)
}

func SinOf(arg Expr) Expr  { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr  { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr  { return FuncOf("tan", arg) }
func ExpOf(arg Expr) Expr  { return FuncOf("exp", arg) }
func LnOf(arg Expr) Expr   { return FuncOf("ln", arg) }
func AbsOf(arg Expr) Expr  { return FuncOf("abs", arg) }
func SinhOf(arg Expr) Expr { return FuncOf("sinh", arg) }
func CoshOf(arg Expr) Expr { return FuncOf("cosh", arg) }

// E is Euler's number, represented as exp(1).
var E = ExpOf(N(1))

// isExp reports whether e is an application of exp.
func isExp(e Expr) (*Func, bool) {
	f, ok := e.(*Func)
	if !ok || f.name != "exp" || len(f.args) != 1 {
		return nil, false
	}
	return f, true
}

func (f *Func) String() string {
	if f.name == "exp" && len(f.args) == 1 && isOne(f.args[0]) {
		return "E"
	}
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) LaTeX() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.LaTeX()
	}
	arg := strings.Join(parts, ", ")
	switch f.name {
	case "exp":
		if len(f.args) == 1 && isOne(f.args[0]) {
			return "e"
		}
		return "e^{" + arg + "}"
	case "sin", "cos", "tan", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + arg + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + arg + "\\right)"
	case "acos":
		return "\\arccos\\left(" + arg + "\\right)"
	case "atan":
		return "\\arctan\\left(" + arg + "\\right)"
	case "abs":
		return "\\left|" + arg + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + arg + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Sub(varName, value)
	}
	return FuncOf(f.name, args...)
}

func (f *Func) Eval() (*Num, bool) {
	if len(f.args) != 1 {
		return nil, false
	}
	n, ok := f.args[0].Eval()
	if !ok {
		return nil, false
	}
	v, _ := n.val.Float64()
	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "exp":
		r = math.Exp(v)
	case "ln":
		r = math.Log(v)
	case "abs":
		return newNum(new(big.Rat).Abs(n.val)), true
	case "asin":
		r = math.Asin(v)
	case "acos":
		r = math.Acos(v)
	case "atan":
		r = math.Atan(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func (f *Func) Equal(other Expr) bool { return keyEqual(f, other) }
func (f *Func) Key() string           { return f.key }
func (f *Func) exprType() string      { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	as := make([]map[string]interface{}, len(f.args))
	for i, a := range f.args {
		as[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "func", "name": f.name, "args": as}
}
func (f *Func) FuncName() string { return f.name }

// Args returns the arguments. The slice must not be modified.
func (f *Func) Args() []Expr { return f.args }

// ============================================================
// Derivative — unevaluated derivative
// ============================================================

type Derivative struct {
	expr Expr
	vars []*Sym
	key  string
	nc   bool
}

// DerivativeOf returns the unevaluated derivative of expr with respect to
// vars in order; repeating a symbol raises the order. Nested derivatives
// are flattened into a single node.
func DerivativeOf(expr Expr, vars ...*Sym) Expr {
	if len(vars) == 0 {
		return expr
	}
	if inner, ok := expr.(*Derivative); ok {
		all := make([]*Sym, 0, len(inner.vars)+len(vars))
		all = append(all, inner.vars...)
		all = append(all, vars...)
		return DerivativeOf(inner.expr, all...)
	}
	vs := make([]*Sym, len(vars))
	copy(vs, vars)
	var sb strings.Builder
	sb.WriteString("d(")
	sb.WriteString(expr.Key())
	sb.WriteByte(';')
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.Key())
	}
	sb.WriteByte(')')
	return &Derivative{expr: expr, vars: vs, key: sb.String(), nc: !IsCommutative(expr)}
}

func (d *Derivative) String() string {
	parts := make([]string, 0, len(d.vars)+1)
	parts = append(parts, d.expr.String())
	for _, v := range d.vars {
		parts = append(parts, v.name)
	}
	return "D(" + strings.Join(parts, ", ") + ")"
}

func (d *Derivative) LaTeX() string {
	var den strings.Builder
	for _, v := range d.vars {
		den.WriteString("\\partial " + v.name)
	}
	n := len(d.vars)
	num := "\\partial"
	if n > 1 {
		num += "^{" + strconv.Itoa(n) + "}"
	}
	return "\\frac{" + num + "}{" + den.String() + "} " + d.expr.LaTeX()
}

// Sub substitutes into the differentiated expression unless varName is a
// differentiation variable, which would require evaluating the derivative.
func (d *Derivative) Sub(varName string, value Expr) Expr {
	for _, v := range d.vars {
		if v.name == varName {
			return d
		}
	}
	return DerivativeOf(d.expr.Sub(varName, value), d.vars...)
}

func (d *Derivative) Eval() (*Num, bool)    { return nil, false }
func (d *Derivative) Equal(other Expr) bool { return keyEqual(d, other) }
func (d *Derivative) Key() string           { return d.key }
func (d *Derivative) exprType() string      { return "derivative" }
func (d *Derivative) toJSON() map[string]interface{} {
	vs := make([]map[string]interface{}, len(d.vars))
	for i, v := range d.vars {
		vs[i] = v.toJSON()
	}
	return map[string]interface{}{"type": "derivative", "expr": d.expr.toJSON(), "vars": vs}
}

// Expr returns the differentiated expression.
func (d *Derivative) Expr() Expr { return d.expr }

// Vars returns the differentiation symbols. The slice must not be modified.
func (d *Derivative) Vars() []*Sym { return d.vars }
