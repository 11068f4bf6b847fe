package tools

import (
	"fmt"

	"github.com/njchilds90/gosimp"
)

// params wraps the decoded "params" object of a tool request.
type params map[string]interface{}

func (p params) expr(key string) (gosimp.Expr, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an expression object", ErrInvalidParam, key)
	}
	e, err := gosimp.FromJSON(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidParam, key, err)
	}
	return e, nil
}

func (p params) str(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidParam, key)
	}
	return s, nil
}

// flag reads an optional boolean, returning def when absent.
func (p params) flag(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrInvalidParam, key)
	}
	return b, nil
}

func (p params) exprList(key string) ([]gosimp.Expr, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array", ErrInvalidParam, key)
	}
	out := make([]gosimp.Expr, len(raw))
	for i, r := range raw {
		m, ok := r.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an expression object", ErrInvalidParam, key, i)
		}
		e, err := gosimp.FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidParam, key, i, err)
		}
		out[i] = e
	}
	return out, nil
}
