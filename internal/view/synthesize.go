package view

import (
	"context"
	"fmt"

	"github.com/roach88/blockscope/internal/cond"
	"github.com/roach88/blockscope/internal/engine"
	"github.com/roach88/blockscope/internal/plan"
)

// MissingChildError reports a join node without the required Inner- or
// Outer-tagged child. This is fatal for the analysis: guessing which
// child plays which role would silently produce a wrong join.
type MissingChildError struct {
	Relationship string
	NodeID       string
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("join node %s has no %s child", e.NodeID, e.Relationship)
}

// Synthesizer materializes per-operator views in the engine and keeps
// the alias registry current. Nodes must be synthesized bottom-up.
type Synthesizer struct {
	eng engine.Querier
	reg *cond.Registry
}

// NewSynthesizer returns a synthesizer writing views through eng and
// aliases into reg.
func NewSynthesizer(eng engine.Querier, reg *cond.Registry) *Synthesizer {
	return &Synthesizer{eng: eng, reg: reg}
}

// Scan synthesizes the view for a scan-family node and returns the
// rewritten conditions usable to restrict the node's block query.
//
// Sequential scans keep the engine's filter verbatim (the view mirrors
// the operator's output; the block set ignores the filter anyway).
// Index-family scans get their index, recheck and filter conditions
// alias-substituted, and join-shaped conditions restated as membership
// tests, since the sibling they referenced is only reachable as a view.
func (s *Synthesizer) Scan(ctx context.Context, n *plan.Node) ([]string, error) {
	attrs := n.Attrs()

	var conds []string
	if n.Kind().IsIndex() {
		for _, raw := range []string{attrs.IndexCond, attrs.RecheckCond, attrs.Filter} {
			if raw == "" {
				continue
			}
			rewritten, err := cond.Substitute(raw, s.reg)
			if err != nil {
				return nil, err
			}
			if cond.IsJoin(rewritten) {
				rewritten, err = cond.ToMembership(rewritten)
				if err != nil {
					return nil, err
				}
			}
			conds = append(conds, rewritten)
		}
	} else if attrs.Filter != "" {
		conds = append(conds, attrs.Filter)
	}

	stmt := BuildSelect(attrs.RelationName, conds, nil, 0)
	if err := s.eng.CreateView(ctx, n.ID(), stmt); err != nil {
		return conds, err
	}
	s.reg.Register(n.Alias(), n.ID())
	return conds, nil
}

// Join synthesizes the flattened view for a join node from its Inner and
// Outer children's views.
func (s *Synthesizer) Join(ctx context.Context, n *plan.Node) error {
	inner := n.ChildByRelationship("Inner")
	if inner == nil {
		return &MissingChildError{Relationship: "Inner", NodeID: n.ID()}
	}
	outer := n.ChildByRelationship("Outer")
	if outer == nil {
		return &MissingChildError{Relationship: "Outer", NodeID: n.ID()}
	}

	joinCond, err := s.joinCondition(n, inner)
	if err != nil {
		return err
	}

	outerCols, err := s.eng.Columns(ctx, outer.ID())
	if err != nil {
		return fmt.Errorf("columns of outer view %s: %w", outer.ID(), err)
	}
	innerCols, err := s.eng.Columns(ctx, inner.ID())
	if err != nil {
		return fmt.Errorf("columns of inner view %s: %w", inner.ID(), err)
	}

	stmt, err := BuildJoin(outer.ID(), inner.ID(), joinCond,
		n.Attrs().JoinType, JoinColumns(outerCols, innerCols, inner.ID()))
	if err != nil {
		return err
	}
	if err := s.eng.CreateView(ctx, n.ID(), stmt); err != nil {
		return err
	}
	// Ancestors reference the flattened result by the node's own
	// identifier; the merged relations' aliases keep pointing at the
	// child views for membership rewriting.
	s.reg.Register("", n.ID())
	return nil
}

// joinCondition extracts and rewrites the operator-appropriate join
// predicate: the inner child's index condition for a nested loop, the
// node's hash or merge condition otherwise. Empty means cross join.
func (s *Synthesizer) joinCondition(n, inner *plan.Node) (string, error) {
	var raw string
	switch n.Kind() {
	case plan.KindNestedLoop:
		raw = inner.Attrs().IndexCond
	case plan.KindHashJoin:
		raw = n.Attrs().HashCond
	case plan.KindMergeJoin:
		raw = n.Attrs().MergeCond
	}
	if raw == "" {
		return "", nil
	}
	return cond.Substitute(raw, s.reg)
}

// PassThrough synthesizes the wrapper view for a single-child operator.
// Sort applies its sort keys as ORDER BY, Limit caps the row count, and
// the rest pass rows through unchanged. The child's alias is relayed
// onto the node so ancestors see through the wrapper.
func (s *Synthesizer) PassThrough(ctx context.Context, n *plan.Node) error {
	children := n.Children()
	if len(children) != 1 {
		return fmt.Errorf("pass-through node %s has %d children, want 1", n.ID(), len(children))
	}
	child := children[0]

	var order []string
	var limit int64
	switch n.Kind() {
	case plan.KindSort:
		for _, key := range n.Attrs().SortKeys {
			rewritten, err := cond.Substitute(key, s.reg)
			if err != nil {
				return err
			}
			order = append(order, rewritten)
		}
	case plan.KindLimit:
		limit = n.Attrs().PlanRows
	}

	stmt := BuildSelect(child.ID(), nil, order, limit)
	if err := s.eng.CreateView(ctx, n.ID(), stmt); err != nil {
		return err
	}
	n.SetAlias(child.Alias())
	s.reg.Register(n.Alias(), n.ID())
	return nil
}
