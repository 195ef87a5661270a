// Package collection queries and aggregates ordered record sequences whose
// shape is only known through property paths (see package path).
//
// Every function is stateless and synchronous. Results are freshly allocated
// and owned by the caller; inputs are never mutated. The package performs no
// locking: concurrent reads of the same input are safe, but mutating an input
// while a call iterates it is the caller's responsibility.
//
// Functions that resolve paths take a context.Context solely to pick up the
// logger attached with logging.WithLogger. Logging is a side channel; the only
// outcomes reported exclusively through it are GroupOne key collisions and the
// early stop of PropertyValueList/PropertyValueSet.
package collection
