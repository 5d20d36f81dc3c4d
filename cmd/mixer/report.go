package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"objects-mixer/diagnostic"
	"objects-mixer/record"
)

// writeReport lists the diagnostics of a merge, one per line.
func writeReport(w io.Writer, diags diagnostic.Diagnostics, colored bool) {
	code := color.New(color.FgYellow, color.Bold)
	path := color.New(color.FgCyan)

	for _, c := range []*color.Color{code, path} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	all := diags.All()
	if len(all) == 0 {
		fmt.Fprintln(w, "no conflicts")
		return
	}

	for _, d := range all {
		code.Fprintf(w, "%s %s", d.Severity, d.Code)
		fmt.Fprint(w, " ")
		path.Fprint(w, d.Path)
		fmt.Fprintf(w, ": %s\n", d.Message)
	}
}

// writeDiff writes a character diff between the json forms of left and out.
// Without colors, deletions are written [-like this-] and insertions {+like this+}.
func writeDiff(w io.Writer, left record.Record, out *record.Map, colored bool) error {
	original, err := materialized(left)
	if err != nil {
		return err
	}

	from, err := indentJSON(original)
	if err != nil {
		return err
	}

	to, err := indentJSON(out)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(string(from), string(to), false))

	if colored {
		_, err = fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
		return err
	}

	var b strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}

	_, err = fmt.Fprintln(w, b.String())

	return err
}
