package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hashJoinDoc = `[{
  "Plan": {
    "Node Type": "Hash Join",
    "Join Type": "Inner",
    "Hash Cond": "(o.o_custkey = c.c_custkey)",
    "Startup Cost": 41.82,
    "Total Cost": 77.09,
    "Plan Rows": 1230,
    "Plans": [
      {
        "Node Type": "Seq Scan",
        "Parent Relationship": "Outer",
        "Relation Name": "orders",
        "Alias": "o"
      },
      {
        "Node Type": "Hash",
        "Parent Relationship": "Inner",
        "Plans": [
          {
            "Node Type": "Seq Scan",
            "Parent Relationship": "Outer",
            "Relation Name": "customer",
            "Alias": "c",
            "Filter": "(c_acctbal > '100'::numeric)"
          }
        ]
      }
    ]
  },
  "Planning Time": 0.213
}]`

func TestParse_HashJoinTree(t *testing.T) {
	tree, err := Parse([]byte(hashJoinDoc))
	require.NoError(t, err)

	root := tree.Root
	assert.Equal(t, KindHashJoin, root.Kind())
	assert.Equal(t, "(o.o_custkey = c.c_custkey)", root.Attrs().HashCond)
	assert.Equal(t, "Inner", root.Attrs().JoinType)
	assert.InDelta(t, 0.213, tree.PlanningTime, 1e-9)
	require.Len(t, root.Children(), 2)

	outer := root.Children()[0]
	assert.Equal(t, KindSeqScan, outer.Kind())
	assert.Equal(t, "orders", outer.Attrs().RelationName)
	assert.Equal(t, "o", outer.Alias())

	hash := root.Children()[1]
	assert.Equal(t, KindHash, hash.Kind())
	require.Len(t, hash.Children(), 1)
	assert.Equal(t, "(c_acctbal > '100'::numeric)", hash.Children()[0].Attrs().Filter)
}

func TestParse_MissingNodeType(t *testing.T) {
	doc := `[{"Plan": {"Relation Name": "orders"}}]`

	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Node Type")
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	require.Error(t, err)
}

func TestParse_UnknownOperatorIsUnsupported(t *testing.T) {
	doc := `[{"Plan": {"Node Type": "Custom Scan"}}]`

	tree, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, KindUnsupported, tree.Root.Kind())
}

func TestParse_NodeIDsUniqueAndPrefixed(t *testing.T) {
	tree, err := Parse([]byte(hashJoinDoc))
	require.NoError(t, err)

	seen := map[string]bool{}
	var visit func(n *Node)
	visit = func(n *Node) {
		assert.True(t, strings.HasPrefix(n.ID(), n.Kind().Token()+"_"),
			"id %s should carry the kind token", n.ID())
		assert.False(t, seen[n.ID()], "duplicate node id %s", n.ID())
		seen[n.ID()] = true
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(tree.Root)
	assert.Len(t, seen, 4)
}

func TestParseWith_SequentialIDs(t *testing.T) {
	tree, err := ParseWith([]byte(hashJoinDoc), &SequentialIDGenerator{})
	require.NoError(t, err)

	// IDs are assigned before children are attached, so the root is 1.
	assert.Equal(t, "hashjoin_0001", tree.Root.ID())
	assert.Equal(t, "seqscan_0002", tree.Root.Children()[0].ID())
}

func TestChildByRelationship(t *testing.T) {
	tree, err := Parse([]byte(hashJoinDoc))
	require.NoError(t, err)

	inner := tree.Root.ChildByRelationship("Inner")
	require.NotNil(t, inner)
	assert.Equal(t, KindHash, inner.Kind())

	outer := tree.Root.ChildByRelationship("Outer")
	require.NotNil(t, outer)
	assert.Equal(t, "orders", outer.Attrs().RelationName)

	assert.Nil(t, tree.Root.ChildByRelationship("Sibling"))
}

func TestSetAlias_AnnotatesRelayedAlias(t *testing.T) {
	tree, err := Parse([]byte(hashJoinDoc))
	require.NoError(t, err)

	hash := tree.Root.Children()[1]
	assert.Empty(t, hash.Alias())

	hash.SetAlias("c")
	assert.Equal(t, "c", hash.Alias())
}

func TestRender_MentionsOperatorsAndRelations(t *testing.T) {
	tree, err := Parse([]byte(hashJoinDoc))
	require.NoError(t, err)

	out := tree.Render()
	assert.Contains(t, out, "Hash Join")
	assert.Contains(t, out, "orders o")
	assert.Contains(t, out, "customer c")
	assert.Contains(t, out, "Planning Time: 0.213 ms")
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindSeqScan.IsScan())
	assert.False(t, KindSeqScan.IsIndex())
	assert.True(t, KindIndexOnlyScan.IsIndex())
	assert.True(t, KindBitmapHeapScan.IsIndex())
	assert.True(t, KindMergeJoin.IsJoin())
	assert.True(t, KindMemoize.IsPassThrough())
	assert.True(t, KindLimit.IsPassThrough())
	assert.False(t, KindAggregate.IsPassThrough())
	assert.False(t, KindUnsupported.IsScan())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindGatherMerge, KindOf("Gather Merge"))
	assert.Equal(t, KindUnsupported, KindOf("WindowAgg"))
	assert.Equal(t, "Seq Scan", KindSeqScan.String())
	assert.Equal(t, "Unsupported", KindUnsupported.String())
}
