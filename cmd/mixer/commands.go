package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "mixer").
		WithSynopsis("mixer [opts] command [opts]").
		WithDescription("mixer merges records and evaluates their formulas.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mixerMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			EvalCommand(cfg),
			PropsCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	opts = append(opts,
		&cli.Opt{
			Name:        "ignore",
			Aliases:     []string{"i"},
			Description: "drop a property of an owner type, repeatable",
			Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
				cfg.Ignore = append(cfg.Ignore, a)
				return a, nil
			}), "(Owner.Property)"),
		})

	cmd := cli.NewCommand("merge").
		WithAliases("m").
		WithSynopsis("merge [-left|-right] [-truncate] [-ignore Owner.Property]... [-policy file] [-patch|-diff] [-report] [-log] left right").
		WithDescription("merge two json or yaml records, - reads stdin").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
	cfg.Merge = cmd

	return cmd
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, Vars: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	opts = append(opts,
		&cli.Opt{
			Name:        "var",
			Aliases:     []string{"v"},
			Description: "value of a placeholder missing from the record, repeatable",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(varOptFunc(cfg.Vars)), "(name=val)"),
		})

	cmd := cli.NewCommand("eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-var name=val]... [file]").
		WithDescription("evaluate the formula properties of a record").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
	cfg.Eval = cmd

	return cmd
}

func PropsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PropsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	cmd := cli.NewCommand("props").
		WithAliases("p").
		WithSynopsis("props [-r] [file]").
		WithDescription("list the properties of a record with their kinds").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return props(cfg, cc, args)
		})
	cfg.Props = cmd

	return cmd
}

func varOptFunc(vars map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		if err := parseVar(vars, a); err != nil {
			return nil, err
		}

		return 0, nil
	}
}

// parseVar stores name=val in vars, val decoded as yaml.
func parseVar(vars map[string]any, a string) error {
	name, val, ok := strings.Cut(a, "=")
	if !ok || name == "" {
		return fmt.Errorf("%w: argument %q expected name=val", cli.ErrUsage, a)
	}

	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return fmt.Errorf("%w: %q: %w", cli.ErrUsage, a, err)
	}

	vars[name] = v

	return nil
}
