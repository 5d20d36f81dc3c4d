package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"objects-mixer/internal/common"
	"objects-mixer/record"
)

func props(cfg *PropsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Props.Parse(cc, args)
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

	return writeProps(cc.Out, rec, cfg.Recursive)
}

// writeProps writes one line per property: path, kind and text of scalars.
func writeProps(w io.Writer, rec record.Record, recursive bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	listProps(tw, "", rec, recursive)

	return tw.Flush()
}

func listProps(w io.Writer, path string, rec record.Record, recursive bool) {
	for _, p := range record.Properties(rec) {
		listValue(w, common.JoinPath(path, p.Name), p.Value, recursive)
	}
}

func listValue(w io.Writer, path string, v any, recursive bool) {
	kind := record.KindOf(v)
	name := strings.ToLower(strings.TrimPrefix(kind.String(), "Kind"))

	if kind.IsScalar() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", path, name, record.Text(v))
	} else {
		fmt.Fprintf(w, "%s\t%s\t\n", path, name)
	}

	if !recursive || !kind.IsContainer() {
		return
	}

	switch kind {
	case record.KindRecord:
		if nested, err := record.Of(v); err == nil {
			listProps(w, path, nested, recursive)
		}
	case record.KindList:
		items, _ := record.List(v)
		for i, item := range items {
			listValue(w, common.IndexPath(path, i), item, recursive)
		}
	}
}
