package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"objects-mixer/formula"
	"objects-mixer/record"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one record", cli.ErrUsage)
	}

	file := "-"
	if len(args) == 1 {
		file = args[0]
	}

	rec, err := loadRecord(cc.In, file)
	if err != nil {
		return err
	}

	return writeFormulas(cc.Out, rec, cfg.Vars)
}

// writeFormulas writes name = value for each formula property of rec.
func writeFormulas(w io.Writer, rec record.Record, vars map[string]any) error {
	for _, p := range record.Properties(rec) {
		if !record.IsFormula(p.Value) {
			continue
		}

		v, err := formula.Evaluate(rec, p.Name, formula.WithVariables(vars))
		if err != nil {
			return fmt.Errorf("error evaluating %s: %w", p.Name, err)
		}

		if _, err := fmt.Fprintf(w, "%s = %v\n", p.Name, v); err != nil {
			return err
		}
	}

	return nil
}
