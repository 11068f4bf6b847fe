package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/njchilds90/gosimp"
)

// ============================================================
// MCP Tool Interface
// ============================================================

// ToolRequest is one tool invocation. ID is echoed back in the response
// so batch callers can correlate results.
type ToolRequest struct {
	ID     string                 `json:"id,omitempty"`
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error message.
type ToolResponse struct {
	ID     string      `json:"id,omitempty"`
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type runFunc func(ctx context.Context, logger *slog.Logger, p params) (ToolResponse, error)

type tool struct {
	name        string
	description string
	required    []string
	props       map[string]string
	run         runFunc
}

func respond(e gosimp.Expr) ToolResponse {
	return ToolResponse{Result: gosimp.ToMap(e), LaTeX: gosimp.LaTeX(e), String: gosimp.String(e)}
}

// unary builds a tool applying fn to the "expr" parameter.
func unary(fn func(gosimp.Expr) gosimp.Expr) runFunc {
	return func(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
		e, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(fn(e)), nil
	}
}

// withDeep builds a tool applying fn to "expr" with the optional "deep" flag.
func withDeep(fn func(gosimp.Expr, bool) gosimp.Expr) runFunc {
	return func(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
		e, err := p.expr("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		deep, err := p.flag("deep", false)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(fn(e, deep)), nil
	}
}

var exprOnly = map[string]string{"expr": "object"}

var exprDeep = map[string]string{"expr": "object", "deep": "boolean"}

// registry lists every tool in schema order. mcp_spec is served by the
// dispatcher directly.
var registry = []tool{
	{"fraction", "Split into numerator and denominator without cancelling. Optional exact (bool)", []string{"expr"}, map[string]string{"expr": "object", "exact": "boolean"}, runFraction},
	{"numer", "Numerator of an expression", []string{"expr"}, exprOnly, unary(gosimp.Numer)},
	{"denom", "Denominator of an expression", []string{"expr"}, exprOnly, unary(gosimp.Denom)},
	{"fraction_expand", "Expand numerator and denominator separately", []string{"expr"}, exprOnly, unary(gosimp.FractionExpand)},
	{"numer_expand", "Expand only the numerator", []string{"expr"}, exprOnly, unary(gosimp.NumerExpand)},
	{"denom_expand", "Expand only the denominator", []string{"expr"}, exprOnly, unary(gosimp.DenomExpand)},
	{"separate", "Distribute exponents over products. Optional deep (bool)", []string{"expr"}, exprDeep, withDeep(gosimp.Separate)},
	{"powsimp", "Combine powers with a common base or exponent. Optional deep (bool)", []string{"expr"}, exprDeep, withDeep(gosimp.PowSimp)},
	{"together", "Combine rational terms over a common denominator. Optional deep (bool)", []string{"expr"}, exprDeep, withDeep(gosimp.Together)},
	{"collect", "Collect additive terms by patterns. Requires syms (array); optional exact (bool)", []string{"expr", "syms"}, map[string]string{"expr": "object", "syms": "array", "exact": "boolean"}, runCollect},
	{"collect_dict", "Map each collected pattern to its coefficient", []string{"expr", "syms"}, map[string]string{"expr": "object", "syms": "array", "exact": "boolean"}, runCollectDict},
	{"ratsimp", "Put a sum of rational terms over one denominator", []string{"expr"}, exprOnly, unary(gosimp.RatSimp)},
	{"radsimp", "Rationalize a denominator of the form a + b*sqrt(c)", []string{"expr"}, exprOnly, unary(gosimp.RadSimp)},
	{"simplify", "Run powsimp, fraction, cancel, expand and together. Optional cancel (bool, default true)", []string{"expr"}, map[string]string{"expr": "object", "cancel": "boolean"}, runSimplify},
	{"expand", "Algebraically expand expression", []string{"expr"}, exprOnly, unary(gosimp.Expand)},
	{"substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}, runSubstitute},
	{"to_latex", "Convert to LaTeX", []string{"expr"}, exprOnly, runLaTeX},
	{"free_symbols", "Return free symbol names", []string{"expr"}, exprOnly, runFreeSymbols},
}

func lookup(name string) (tool, bool) {
	for _, t := range registry {
		if t.name == name {
			return t, true
		}
	}
	return tool{}, false
}

// Names returns every tool name in schema order, mcp_spec last.
func Names() []string {
	names := make([]string, 0, len(registry)+1)
	for _, t := range registry {
		names = append(names, t.name)
	}
	return append(names, "mcp_spec")
}

func runFraction(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
	e, err := p.expr("expr")
	if err != nil {
		return ToolResponse{}, err
	}
	exact, err := p.flag("exact", false)
	if err != nil {
		return ToolResponse{}, err
	}
	n, d := gosimp.Fraction(e, exact)
	return ToolResponse{
		Result: map[string]interface{}{"numer": gosimp.ToMap(n), "denom": gosimp.ToMap(d)},
		LaTeX:  fmt.Sprintf(`\frac{%s}{%s}`, gosimp.LaTeX(n), gosimp.LaTeX(d)),
		String: fmt.Sprintf("(%s)/(%s)", gosimp.String(n), gosimp.String(d)),
	}, nil
}

func collectParams(ctx context.Context, logger *slog.Logger, p params) (gosimp.Expr, []gosimp.Expr, bool, []gosimp.CollectOption, error) {
	e, err := p.expr("expr")
	if err != nil {
		return nil, nil, false, nil, err
	}
	syms, err := p.exprList("syms")
	if err != nil {
		return nil, nil, false, nil, err
	}
	exact, err := p.flag("exact", false)
	if err != nil {
		return nil, nil, false, nil, err
	}
	opts := []gosimp.CollectOption{gosimp.WithLogger(logger), gosimp.WithContext(ctx)}
	return e, syms, exact, opts, nil
}

func runCollect(ctx context.Context, logger *slog.Logger, p params) (ToolResponse, error) {
	e, syms, exact, opts, err := collectParams(ctx, logger, p)
	if err != nil {
		return ToolResponse{}, err
	}
	out, err := gosimp.Collect(e, syms, exact, opts...)
	if err != nil {
		return ToolResponse{}, err
	}
	return respond(out), nil
}

func runCollectDict(ctx context.Context, logger *slog.Logger, p params) (ToolResponse, error) {
	e, syms, exact, opts, err := collectParams(ctx, logger, p)
	if err != nil {
		return ToolResponse{}, err
	}
	m, err := gosimp.CollectDict(e, syms, exact, opts...)
	if err != nil {
		return ToolResponse{}, err
	}
	entries := make([]map[string]interface{}, 0, m.Len())
	lines := make([]string, 0, m.Len())
	m.Range(func(k, v gosimp.Expr) bool {
		entries = append(entries, map[string]interface{}{"pattern": gosimp.ToMap(k), "coefficient": gosimp.ToMap(v)})
		lines = append(lines, gosimp.String(k)+": "+gosimp.String(v))
		return true
	})
	return ToolResponse{Result: entries, String: strings.Join(lines, "; ")}, nil
}

func runSimplify(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
	e, err := p.expr("expr")
	if err != nil {
		return ToolResponse{}, err
	}
	cancel, err := p.flag("cancel", true)
	if err != nil {
		return ToolResponse{}, err
	}
	var c gosimp.Canceler
	if cancel {
		c = gosimp.CoefficientCanceler{}
	}
	return respond(gosimp.Simplify(e, c)), nil
}

func runSubstitute(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
	e, err := p.expr("expr")
	if err != nil {
		return ToolResponse{}, err
	}
	v, err := p.str("var")
	if err != nil {
		return ToolResponse{}, err
	}
	val, err := p.expr("value")
	if err != nil {
		return ToolResponse{}, err
	}
	return respond(gosimp.Subs(e, map[string]gosimp.Expr{v: val})), nil
}

func runLaTeX(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
	e, err := p.expr("expr")
	if err != nil {
		return ToolResponse{}, err
	}
	l := gosimp.LaTeX(e)
	return ToolResponse{Result: l, LaTeX: l, String: gosimp.String(e)}, nil
}

func runFreeSymbols(_ context.Context, _ *slog.Logger, p params) (ToolResponse, error) {
	e, err := p.expr("expr")
	if err != nil {
		return ToolResponse{}, err
	}
	syms := gosimp.SymbolsOf(e)
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name()
	}
	return ToolResponse{Result: names, String: strings.Join(names, ", ")}, nil
}

// MCPToolSpec returns the JSON tool schema used for agent registration.
func MCPToolSpec() string {
	tools := make([]map[string]interface{}, 0, len(registry)+1)
	for _, t := range registry {
		tools = append(tools, ts(t.name, t.description, t.required, t.props))
	}
	tools = append(tools, ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}))
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
