// Package analyze drives the block-access reconstruction: a post-order
// walk over the plan tree that synthesizes a view per operator and asks
// the engine for the heap blocks each base relation contributes.
//
// Children are always fully resolved before their parent, because a
// node's predicate rewriting depends on the views its descendants
// registered. Failures are contained at the node that caused them
// wherever partial information is tolerable (sequential scans keep their
// full block set, pass-through wrappers are cosmetic); they surface as an
// UnsupportedQueryError when an index-family node could not be resolved,
// since its restricted block set is then missing from the result. The
// caller still receives the partial map alongside that error.
//
// One Analyzer serves one plan in one session and memoizes its result:
// repeated Blocks calls return the cached map without touching the
// engine again.
package analyze
