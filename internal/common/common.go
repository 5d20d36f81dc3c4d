// Package common holds small helpers shared by the mixer packages.
package common

import "strconv"

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// JoinPath appends a property name to a dotted property path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}

// IndexPath appends a list index to a property path: Items[2].
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
