// Package deepdiff computes the structural difference between two arbitrary
// nested values and can replay or undo that difference against a live
// structure.
//
// A diff is an ordered sequence of typed edit records (Changes): a property
// appeared (N), disappeared (D), changed value (E), or an array slot was
// touched (A, which nests another record describing what happened at that
// slot). Each record carries the path from the comparison root to the
// changed location; a nil path means the root itself changed.
//
// deepdiff operates on the generic go types produced by unmarshaling JSON
// or YAML documents:
//
//	map[string]interface{}
//	[]interface{}
//
// and the usual scalar types, plus time.Time (compared by instant) and
// *regexp.Regexp (compared by source text). Maps with string keys, slices
// and structs of other concrete types are walked through reflection.
//
// Comparison is a pure, synchronous recursive walk. Self-referential inputs
// are safe: an explicit visitation stack truncates cycles. Two documented
// operations mutate their inputs: order-independent comparison sorts both
// arrays in place, and ApplyChange/RevertChange/ApplyDiff edit the target
// in place. Callers that need the originals must copy first.
//
// ApplyChange and RevertChange are structural inverses: applying every
// record of Diff(a, b) to a copy of a yields b, and reverting those same
// records from the result yields a again.
package deepdiff
