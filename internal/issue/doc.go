// Package issue defines the structured findings produced by graph building,
// resolution, and tier validation. The core never signals a data problem by
// returning an error; it accumulates issues and hands the complete list to
// the caller, which owns the fail-or-continue policy.
package issue
