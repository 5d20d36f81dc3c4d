// Package diagnostic collects structured errors, warnings and infos produced
// while merging and projecting records.
//
// Codes:
//   - MIX001: shared scalar property with different values, left kept
//   - MIX002: shared property with different shapes, left kept
//   - MAP101: source property not used by the destination
//   - MAP102: destination field missing in the source, zero value or default used
package diagnostic
