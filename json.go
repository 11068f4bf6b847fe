package gosimp

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToMap returns the JSON object form of e.
func ToMap(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes a JSON document holding one expression object.
func ParseJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return FromJSON(m)
}

// FromJSON builds an expression from its decoded JSON object form. Every
// node is rebuilt through its canonical constructor.
func FromJSON(data map[string]interface{}) (Expr, error) {
	e, err := fromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return e, nil
}

func fromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subExprs := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := fromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		var val string
		switch v := data["value"].(type) {
		case string:
			val = v
		case float64:
			return NFloat(v), nil
		default:
			return nil, fmt.Errorf("num: 'value' must be a string or number")
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return newNum(r), nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		var as []Assumption
		if raw, ok := data["assumptions"].([]interface{}); ok {
			for i, r := range raw {
				s, _ := r.(string)
				a, ok := ParseAssumption(s)
				if !ok {
					return nil, fmt.Errorf("sym: assumptions[%d]: unknown assumption %q", i, s)
				}
				as = append(as, a)
			}
		}
		return S(name, as...), nil

	case "add":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subExprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := fromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := fromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if _, single := data["arg"]; single {
			argM, err := subObj("arg")
			if err != nil {
				return nil, err
			}
			arg, err := fromJSON(argM)
			if err != nil {
				return nil, fmt.Errorf("func: arg: %w", err)
			}
			return FuncOf(name, arg), nil
		}
		args, err := subExprs("args")
		if err != nil {
			return nil, err
		}
		return FuncOf(name, args...), nil

	case "derivative":
		exprM, err := subObj("expr")
		if err != nil {
			return nil, err
		}
		inner, err := fromJSON(exprM)
		if err != nil {
			return nil, fmt.Errorf("derivative: expr: %w", err)
		}
		vars, err := subExprs("vars")
		if err != nil {
			return nil, err
		}
		syms := make([]*Sym, len(vars))
		for i, v := range vars {
			s, ok := v.(*Sym)
			if !ok {
				return nil, fmt.Errorf("derivative: vars[%d] must be a symbol", i)
			}
			syms[i] = s
		}
		return DerivativeOf(inner, syms...), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
