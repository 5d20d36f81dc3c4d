package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"objects-mixer/internal/policyfile"
	"objects-mixer/mixer"
	"objects-mixer/record"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: expected left and right records", cli.ErrUsage)
	}

	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: only one record can be read from stdin", cli.ErrUsage)
	}

	if cfg.Left && cfg.Right {
		return fmt.Errorf("%w: must specify at most one of -left -right", cli.ErrUsage)
	}

	if cfg.Patch && cfg.Diff {
		return fmt.Errorf("%w: must specify at most one of -patch -diff", cli.ErrUsage)
	}

	policy, err := cfg.policy()
	if err != nil {
		return err
	}

	left, err := loadRecord(cc.In, args[0])
	if err != nil {
		return err
	}

	right, err := loadRecord(cc.In, args[1])
	if err != nil {
		return err
	}

	out, diags, err := policy.MergeReport(left, right)
	if err != nil {
		return fmt.Errorf("error merging %s and %s: %w", args[0], args[1], err)
	}

	if cfg.Report {
		writeReport(os.Stderr, diags, cfg.colored(os.Stderr))
	}

	switch {
	case cfg.Patch:
		return writePatch(cc.Out, left, out)
	case cfg.Diff:
		return writeDiff(cc.Out, left, out, cfg.colored(cc.Out))
	}

	return writeRecord(cc.Out, out, cfg.Y)
}

// policy builds the merge policy: policy file first, then flags.
func (cfg *MergeConfig) policy() (mixer.Policy, error) {
	p := mixer.NewPolicy()

	file := cfg.Policy
	if file == "" {
		file = cfg.Env.Policy
	}

	if file != "" {
		f, err := policyfile.LoadFile(file)
		if err != nil {
			return p, err
		}

		if p, err = f.Apply(p); err != nil {
			return p, err
		}
	}

	switch {
	case cfg.Left:
		p = p.WithLeftPriority()
	case cfg.Right:
		p = p.WithRightPriority()
	}

	if cfg.Truncate {
		p = p.TruncatingLists()
	}

	for _, text := range cfg.Ignore {
		e, err := policyfile.ParseIgnore(text)
		if err != nil {
			return p, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}

		p = p.Ignoring(e.Owner, e.Property)
	}

	if cfg.Log {
		p = p.WithLogger(newLogger(os.Stderr))
	}

	return p, p.Err()
}

// writePatch writes the json merge patch turning left into out.
func writePatch(w io.Writer, left record.Record, out *record.Map) error {
	original, err := materialized(left)
	if err != nil {
		return err
	}

	from, err := json.Marshal(original)
	if err != nil {
		return err
	}

	to, err := json.Marshal(out)
	if err != nil {
		return err
	}

	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return fmt.Errorf("error creating merge patch: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", patch)

	return err
}
