// Package plan models the physical execution plan reported by PostgreSQL's
// EXPLAIN (FORMAT JSON).
//
// The tree is built once per analyzed query and is read-only afterwards,
// with one exception: pass-through operators (Hash, Materialize, Sort,
// Gather, Gather Merge, Memoize, Limit) carry no relation alias of their
// own, so the traversal annotates them with the alias relayed from their
// single child via SetAlias.
//
// OPERATOR KINDS:
//
// The engine reports operators as open-ended string tags ("Seq Scan",
// "Hash Join", ...). Those tags are mapped at parse time onto the closed
// Kind sum defined in kind.go; anything outside the supported set becomes
// KindUnsupported. Downstream dispatch is an exhaustive switch over Kind,
// never a string comparison.
//
// NODE IDENTITY:
//
// Every node receives an identifier at construction, before any child is
// attached, and the identifier never changes. It is the operator's kind
// token plus a random suffix (seqscan_3f2a9c1d) and doubles as the name of
// the view synthesized for the node, so it must be collision-resistant
// across sessions and valid as a SQL identifier.
package plan
