package plan

import (
	"fmt"
	"strings"
)

// Render returns an indented text rendering of the tree, one operator per
// line with the attributes that matter for that family.
func (t *Tree) Render() string {
	var b strings.Builder
	renderNode(&b, t.Root, 0)
	if t.PlanningTime > 0 {
		fmt.Fprintf(&b, "Planning Time: %.3f ms\n", t.PlanningTime)
	}
	if t.ExecutionTime > 0 {
		fmt.Fprintf(&b, "Execution Time: %.3f ms\n", t.ExecutionTime)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(n.kind.String())

	attrs := n.attrs
	var details []string
	switch {
	case n.kind.IsScan():
		if attrs.RelationName != "" {
			name := attrs.RelationName
			if attrs.Alias != "" && attrs.Alias != attrs.RelationName {
				name += " " + attrs.Alias
			}
			details = append(details, "on "+name)
		}
		if attrs.IndexName != "" {
			details = append(details, "using "+attrs.IndexName)
		}
		if attrs.IndexCond != "" {
			details = append(details, "index cond "+attrs.IndexCond)
		}
		if attrs.Filter != "" {
			details = append(details, "filter "+attrs.Filter)
		}
	case n.kind.IsJoin():
		if attrs.JoinType != "" {
			details = append(details, attrs.JoinType)
		}
		switch n.kind {
		case KindHashJoin:
			if attrs.HashCond != "" {
				details = append(details, "on "+attrs.HashCond)
			}
		case KindMergeJoin:
			if attrs.MergeCond != "" {
				details = append(details, "on "+attrs.MergeCond)
			}
		}
	case n.kind == KindSort:
		if len(attrs.SortKeys) > 0 {
			details = append(details, "by "+strings.Join(attrs.SortKeys, ", "))
		}
	case n.kind == KindLimit:
		details = append(details, fmt.Sprintf("rows %d", attrs.PlanRows))
	}
	if len(details) > 0 {
		b.WriteString(" (" + strings.Join(details, ", ") + ")")
	}
	b.WriteString("\n")

	for _, c := range n.children {
		renderNode(b, c, depth+1)
	}
}
