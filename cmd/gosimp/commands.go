package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gosimp/internal/config"
	"github.com/njchilds90/gosimp/internal/telemetry"
	"github.com/njchilds90/gosimp/internal/tools"
)

// operation describes one tool subcommand and the optional flags it takes.
type operation struct {
	tool   string
	short  string
	deep   bool
	exact  bool
	syms   bool
	cancel bool
}

var operations = []operation{
	{tool: "fraction", short: "Split an expression into numerator and denominator", exact: true},
	{tool: "numer", short: "Print the numerator"},
	{tool: "denom", short: "Print the denominator"},
	{tool: "fraction_expand", short: "Expand numerator and denominator separately"},
	{tool: "numer_expand", short: "Expand only the numerator"},
	{tool: "denom_expand", short: "Expand only the denominator"},
	{tool: "separate", short: "Distribute exponents over products", deep: true},
	{tool: "powsimp", short: "Combine powers with a common base or exponent", deep: true},
	{tool: "together", short: "Combine rational terms over a common denominator", deep: true},
	{tool: "collect", short: "Collect additive terms by patterns", exact: true, syms: true},
	{tool: "collect_dict", short: "Print each collected pattern with its coefficient", exact: true, syms: true},
	{tool: "ratsimp", short: "Put a sum of rational terms over one denominator"},
	{tool: "radsimp", short: "Rationalize a denominator a + b*sqrt(c)"},
	{tool: "simplify", short: "Run the combined rational simplification pipeline", cancel: true},
	{tool: "expand", short: "Algebraically expand an expression"},
	{tool: "free_symbols", short: "List the free symbols"},
	{tool: "to_latex", short: "Render an expression as LaTeX"},
}

type app struct {
	configPath string
	output     string

	cfg        config.Config
	logger     *slog.Logger
	dispatcher *tools.Dispatcher

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "gosimp",
		Short: "Rational expression simplification tools",
		Long: `gosimp normalizes symbolic expressions: it splits fractions,
distributes and merges powers, combines terms over a common denominator
and collects terms by pattern. Expressions are JSON objects as produced
by the MCP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $GOSIMP_CONFIG or ./gosimp.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "string", "output format: string, latex or json")

	for _, op := range operations {
		root.AddCommand(a.operationCmd(op))
	}
	root.AddCommand(a.batchCmd(), a.toolsCmd(), a.configCmd())
	return root
}

func (a *app) setup() error {
	switch a.output {
	case "string", "latex", "json":
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = telemetry.NewLogger(cfg.Log, a.errOut)
	a.dispatcher = tools.NewDispatcher(
		tools.WithLogger(a.logger),
		tools.WithMaxBatch(cfg.Engine.MaxBatch),
		tools.WithWorkers(cfg.Engine.BatchWorkers),
	)
	return nil
}

func (a *app) operationCmd(op operation) *cobra.Command {
	var (
		deep, exact bool
		cancel      = true
		syms        string
	)
	cmd := &cobra.Command{
		Use:   strings.ReplaceAll(op.tool, "_", "-") + " [expr-json]",
		Short: op.short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := a.readObject(args)
			if err != nil {
				return err
			}
			params := map[string]interface{}{"expr": expr}
			if op.deep {
				params["deep"] = deep
			}
			if op.exact {
				params["exact"] = exact
			}
			if op.cancel {
				params["cancel"] = cancel
			}
			if op.syms {
				var list []interface{}
				if err := json.Unmarshal([]byte(syms), &list); err != nil {
					return fmt.Errorf("--syms: %w", err)
				}
				params["syms"] = list
			}
			resp, err := a.dispatcher.Call(cmd.Context(), tools.ToolRequest{Tool: op.tool, Params: params})
			if err != nil {
				return err
			}
			return a.print(resp)
		},
	}
	if op.deep {
		cmd.Flags().BoolVar(&deep, "deep", false, "also rewrite function arguments")
	}
	if op.exact {
		cmd.Flags().BoolVar(&exact, "exact", false, "match exponents literally")
	}
	if op.cancel {
		cmd.Flags().BoolVar(&cancel, "cancel", true, "cancel numeric factors shared by numerator and denominator")
	}
	if op.syms {
		cmd.Flags().StringVar(&syms, "syms", "", "JSON array of pattern expressions")
		_ = cmd.MarkFlagRequired("syms")
	}
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [requests-json]",
		Short: "Run a JSON array of tool requests concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.readInput(args)
			if err != nil {
				return err
			}
			var reqs []tools.ToolRequest
			if err := json.Unmarshal(raw, &reqs); err != nil {
				return fmt.Errorf("decode requests: %w", err)
			}
			out, err := a.dispatcher.Batch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func (a *app) toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the MCP tool schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.out, tools.MCPToolSpec())
			return err
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, s)
			return err
		},
	}
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	raw, err := io.ReadAll(a.in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("no expression given")
	}
	return raw, nil
}

func (a *app) readObject(args []string) (map[string]interface{}, error) {
	raw, err := a.readInput(args)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return m, nil
}

func (a *app) print(resp tools.ToolResponse) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "latex":
		if resp.LaTeX != "" {
			_, err := fmt.Fprintln(a.out, resp.LaTeX)
			return err
		}
	}
	_, err := fmt.Fprintln(a.out, resp.String)
	return err
}
