// Package cond rewrites the predicate strings EXPLAIN reports on plan
// nodes so they can be evaluated against synthesized views instead of the
// query's original relations.
//
// The predicate grammar handled here is deliberately restricted: aliases
// are recognized as the qualifier of an ident.ident occurrence, and a
// predicate counts as an equi-join only when it contains a top-level
// qualified = qualified equality. Ranges, disjunctions and function calls
// all classify as non-join. This is a heuristic over the engine's
// condition syntax, not an SQL expression parser.
//
// All functions are pure; the one piece of state, the alias-to-view
// Registry, is constructed per analysis and threaded through explicitly.
package cond
