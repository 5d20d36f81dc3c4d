// Package match provides property name normalization, Levenshtein distance
// and ranking of source names for "did you mean" suggestions.
//
// Key functions:
//   - Normalize: folds case and drops separators and camel case boundaries
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity to a wanted name
package match
