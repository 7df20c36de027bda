package plan

// Kind identifies an operator family. It is a closed set: every EXPLAIN
// node type outside the enumerated families parses as KindUnsupported.
type Kind int

const (
	KindUnsupported Kind = iota
	KindSeqScan
	KindParallelSeqScan
	KindIndexScan
	KindIndexOnlyScan
	KindBitmapHeapScan
	KindNestedLoop
	KindHashJoin
	KindMergeJoin
	KindGather
	KindGatherMerge
	KindHash
	KindMaterialize
	KindSort
	KindMemoize
	KindLimit
	KindAggregate
)

// kindNames maps EXPLAIN "Node Type" tags to kinds. Tags absent from this
// table are unsupported for block analysis; their subtrees are still
// visited for their own contributions.
var kindNames = map[string]Kind{
	"Seq Scan":          KindSeqScan,
	"Parallel Seq Scan": KindParallelSeqScan,
	"Index Scan":        KindIndexScan,
	"Index Only Scan":   KindIndexOnlyScan,
	"Bitmap Heap Scan":  KindBitmapHeapScan,
	"Nested Loop":       KindNestedLoop,
	"Hash Join":         KindHashJoin,
	"Merge Join":        KindMergeJoin,
	"Gather":            KindGather,
	"Gather Merge":      KindGatherMerge,
	"Hash":              KindHash,
	"Materialize":       KindMaterialize,
	"Sort":              KindSort,
	"Memoize":           KindMemoize,
	"Limit":             KindLimit,
	"Aggregate":         KindAggregate,
}

// kindTokens are the view-name prefixes, one per kind. Lowercase with no
// spaces so the node ID is usable as a SQL identifier.
var kindTokens = map[Kind]string{
	KindUnsupported:     "unsupported",
	KindSeqScan:         "seqscan",
	KindParallelSeqScan: "parseqscan",
	KindIndexScan:       "idxscan",
	KindIndexOnlyScan:   "idxonlyscan",
	KindBitmapHeapScan:  "bitmapscan",
	KindNestedLoop:      "nestloop",
	KindHashJoin:        "hashjoin",
	KindMergeJoin:       "mergejoin",
	KindGather:          "gather",
	KindGatherMerge:     "gathermerge",
	KindHash:            "hash",
	KindMaterialize:     "materialize",
	KindSort:            "sort",
	KindMemoize:         "memoize",
	KindLimit:           "limit",
	KindAggregate:       "aggregate",
}

// KindOf maps an EXPLAIN node-type tag to its Kind.
func KindOf(nodeType string) Kind {
	if k, ok := kindNames[nodeType]; ok {
		return k
	}
	return KindUnsupported
}

// Token returns the kind's view-name prefix.
func (k Kind) Token() string {
	return kindTokens[k]
}

// String returns the EXPLAIN tag for the kind, or "Unsupported".
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "Unsupported"
}

// IsScan reports whether the kind reads a base relation directly.
func (k Kind) IsScan() bool {
	switch k {
	case KindSeqScan, KindParallelSeqScan, KindIndexScan, KindIndexOnlyScan, KindBitmapHeapScan:
		return true
	}
	return false
}

// IsIndex reports whether the kind is an index-family scan. Index-family
// nodes are load-bearing for block accounting: a failure to rewrite their
// conditions makes the whole analysis best-effort.
func (k Kind) IsIndex() bool {
	switch k {
	case KindIndexScan, KindIndexOnlyScan, KindBitmapHeapScan:
		return true
	}
	return false
}

// IsJoin reports whether the kind combines an Inner and an Outer child.
func (k Kind) IsJoin() bool {
	switch k {
	case KindNestedLoop, KindHashJoin, KindMergeJoin:
		return true
	}
	return false
}

// IsPassThrough reports whether the kind emits its single child's rows
// unchanged (modulo ordering and row caps).
func (k Kind) IsPassThrough() bool {
	switch k {
	case KindGather, KindGatherMerge, KindHash, KindMaterialize, KindSort, KindMemoize, KindLimit:
		return true
	}
	return false
}
