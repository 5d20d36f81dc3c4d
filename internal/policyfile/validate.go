package policyfile

import (
	"fmt"

	"objects-mixer/diagnostic"
	"objects-mixer/internal/common"
	"objects-mixer/mixer"
)

// Validate checks the values of a policy file.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("POL000", "", "policy file is nil")
		return res
	}

	if f.Version != "1" {
		res.AddError("POL001", "version", fmt.Sprintf("unsupported version %q", f.Version))
	}

	if _, err := mixer.ParsePriority(f.Priority); err != nil {
		res.AddError("POL002", "priority", err.Error(), "merge", "left", "right")
	}

	if f.Lists != listsStrict && f.Lists != listsTruncate {
		res.AddError("POL003", "lists", fmt.Sprintf("unknown list mode %q", f.Lists), listsStrict, listsTruncate)
	}

	seen := map[IgnoreEntry]struct{}{}

	for i, e := range f.Ignore {
		path := common.IndexPath("ignore", i)

		if e.Property == "" {
			res.AddError("POL004", path, "ignore entry without property")
			continue
		}

		if _, dup := seen[e]; dup {
			res.AddWarning("POL005", path, fmt.Sprintf("duplicate ignore entry %s", e))
		}

		seen[e] = struct{}{}
	}

	return res
}
