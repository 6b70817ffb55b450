// Package filter selects Codecov records with expr-lang expressions.
//
// Expressions see the fields of one record (see RepoEnv, CommitEnv and
// OwnerEnv) plus helper functions:
//
//	Active && Coverage < 70
//	Language in ["go", "rust"] && daysSince(Updated) < 30
//	startsWith(Branch, "release/") && !CIPassed
//
// Compiled programs are cached by expression text. Long lists are split
// into chunks evaluated concurrently; the result keeps input order.
package filter
