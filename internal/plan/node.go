package plan

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Attrs is the attribute bag the engine reports for a node. Missing
// attributes are zero values, never errors: callers probe for what a kind
// might carry and fall back on empties.
type Attrs struct {
	RelationName       string   `json:"Relation Name"`
	Alias              string   `json:"Alias"`
	Filter             string   `json:"Filter"`
	IndexCond          string   `json:"Index Cond"`
	RecheckCond        string   `json:"Recheck Cond"`
	HashCond           string   `json:"Hash Cond"`
	MergeCond          string   `json:"Merge Cond"`
	JoinType           string   `json:"Join Type"`
	SortKeys           []string `json:"Sort Key"`
	ParentRelationship string   `json:"Parent Relationship"`
	IndexName          string   `json:"Index Name"`
	StartupCost        float64  `json:"Startup Cost"`
	TotalCost          float64  `json:"Total Cost"`
	PlanRows           int64    `json:"Plan Rows"`
	PlanWidth          int      `json:"Plan Width"`
}

// Node is one physical operator. Immutable after construction except for
// the relayed-alias annotation (SetAlias).
type Node struct {
	id       string
	kind     Kind
	attrs    Attrs
	children []*Node
}

// IDGenerator produces node identifiers. The default draws a random
// suffix per node; tests substitute a sequential generator so synthesized
// SQL is stable enough for golden files.
type IDGenerator interface {
	NodeID(kind Kind) string
}

type randomIDGenerator struct{}

func (randomIDGenerator) NodeID(kind Kind) string {
	// First UUID group: eight hex chars, collision-resistant enough for
	// view names that live only for one session.
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return kind.Token() + "_" + suffix
}

// SequentialIDGenerator numbers nodes in construction order. Random
// suffixes make synthesized SQL untestable against golden files, so tests
// parse with this generator instead.
type SequentialIDGenerator struct {
	n int
}

func (g *SequentialIDGenerator) NodeID(kind Kind) string {
	g.n++
	return fmt.Sprintf("%s_%04d", kind.Token(), g.n)
}

// newNode assigns the identifier before any child is attached.
func newNode(kind Kind, attrs Attrs, gen IDGenerator) *Node {
	return &Node{
		id:    gen.NodeID(kind),
		kind:  kind,
		attrs: attrs,
	}
}

// ID returns the node's identifier, which is also the name of the view
// synthesized for it.
func (n *Node) ID() string { return n.id }

// Kind returns the operator family.
func (n *Node) Kind() Kind { return n.kind }

// Attrs returns the engine-reported attribute bag.
func (n *Node) Attrs() Attrs { return n.attrs }

// Children returns the ordered child list.
func (n *Node) Children() []*Node { return n.children }

// Alias returns the node's relation alias, either engine-reported or
// annotated by SetAlias.
func (n *Node) Alias() string { return n.attrs.Alias }

// SetAlias annotates a relayed alias onto the node. Only pass-through
// operators are annotated; everything else keeps what the engine reported.
func (n *Node) SetAlias(alias string) { n.attrs.Alias = alias }

// ChildByRelationship returns the first child whose Parent Relationship
// tag matches rel ("Inner", "Outer"), or nil.
func (n *Node) ChildByRelationship(rel string) *Node {
	for _, c := range n.children {
		if c.attrs.ParentRelationship == rel {
			return c
		}
	}
	return nil
}
