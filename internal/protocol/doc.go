// Package protocol owns the ColorLight 5A-75B wire contract.
//
// Ownership boundary:
// - fixed addressing and packet-type constants
// - color order permutation tables
// - frame building primitives (subpackage frame)
// - receiver programming sequence (subpackage sequence)
package protocol
