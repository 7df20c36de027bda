package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/blockscope/internal/cond"
	"github.com/roach88/blockscope/internal/engine"
	"github.com/roach88/blockscope/internal/plan"
	"github.com/roach88/blockscope/internal/view"
)

// Analyzer reconstructs the block-access map for one plan tree. It is
// single-threaded and blocking: every view creation and block query is a
// round trip the walk waits for, so the registry and the accumulator
// need no locking.
type Analyzer struct {
	eng   engine.Querier
	tree  *plan.Tree
	reg   *cond.Registry
	synth *view.Synthesizer

	done      bool
	cached    BlockAccessMap
	cachedErr error
}

// New returns an analyzer for tree over eng. Registry and synthesizer
// state is fresh per analyzer; analyzing a new query means a new
// Analyzer.
func New(eng engine.Querier, tree *plan.Tree) *Analyzer {
	reg := cond.NewRegistry()
	return &Analyzer{
		eng:   eng,
		tree:  tree,
		reg:   reg,
		synth: view.NewSynthesizer(eng, reg),
	}
}

// Blocks computes the block-access map for the tree. The result is
// memoized: a second call returns the same map and error without issuing
// any engine queries.
//
// A non-nil *UnsupportedQueryError comes with the partial map; any other
// error means the traversal aborted.
func (a *Analyzer) Blocks(ctx context.Context) (BlockAccessMap, error) {
	if a.done {
		return a.cached, a.cachedErr
	}

	acc := make(BlockAccessMap)
	var unsupported *UnsupportedQueryError
	err := a.walk(ctx, a.tree.Root, acc, &unsupported)

	a.done = true
	a.cached = acc
	switch {
	case err != nil:
		a.cachedErr = err
	case unsupported != nil:
		a.cachedErr = unsupported
	}
	return a.cached, a.cachedErr
}

// walk visits children first, then lets the node contribute. The
// unsupported slot records the first index-family failure; the walk
// keeps going so every reachable relation still reports its blocks.
func (a *Analyzer) walk(ctx context.Context, n *plan.Node, acc BlockAccessMap, unsupported **UnsupportedQueryError) error {
	for _, c := range n.Children() {
		if err := a.walk(ctx, c, acc, unsupported); err != nil {
			return err
		}
	}

	kind := n.Kind()
	switch {
	case kind == plan.KindSeqScan || kind == plan.KindParallelSeqScan:
		return a.visitSeqScan(ctx, n, acc)
	case kind.IsIndex():
		return a.visitIndexScan(ctx, n, acc, unsupported)
	case kind.IsJoin():
		return a.visitJoin(ctx, n)
	case kind.IsPassThrough():
		return a.visitPassThrough(ctx, n)
	}
	// Aggregates and unsupported operators synthesize nothing and
	// contribute no blocks; their children already reported.
	return nil
}

// visitSeqScan reports every block of the relation: a full scan touches
// them all, filter or not. The view is attempted afterwards only so
// ancestors can resolve the alias, and an undefined-object failure there
// costs nothing.
func (a *Analyzer) visitSeqScan(ctx context.Context, n *plan.Node, acc BlockAccessMap) error {
	rel := n.Attrs().RelationName
	ids, err := a.eng.BlockIDs(ctx, rel, "")
	if err != nil {
		return fmt.Errorf("block ids of %s: %w", rel, err)
	}
	acc.Add(rel, ids...)

	if _, err := a.synth.Scan(ctx, n); err != nil {
		if engine.IsTransactionAborted(err) {
			return err
		}
		if engine.IsUndefinedObject(err) || isCondError(err) {
			return nil
		}
		return fmt.Errorf("synthesize view for %s: %w", n.ID(), err)
	}
	return nil
}

// visitIndexScan needs its rewritten conditions before it can query
// blocks, so a rewrite or view failure here loses the node's restricted
// block set and flags the whole analysis best-effort. Index-only scans
// synthesize their view but contribute no blocks: they never touch the
// heap.
func (a *Analyzer) visitIndexScan(ctx context.Context, n *plan.Node, acc BlockAccessMap, unsupported **UnsupportedQueryError) error {
	conds, err := a.synth.Scan(ctx, n)
	if err != nil {
		if engine.IsTransactionAborted(err) {
			return err
		}
		if engine.IsUndefinedObject(err) || isCondError(err) {
			a.flag(unsupported, n, err)
			return nil
		}
		return fmt.Errorf("synthesize view for %s: %w", n.ID(), err)
	}

	if n.Kind() == plan.KindIndexOnlyScan {
		return nil
	}

	rel := n.Attrs().RelationName
	ids, err := a.eng.BlockIDs(ctx, rel, strings.Join(conds, " AND "))
	if err != nil {
		if engine.IsTransactionAborted(err) {
			return err
		}
		a.flag(unsupported, n, err)
		return nil
	}
	acc.Add(rel, ids...)
	return nil
}

// visitJoin contributes no blocks of its own; it only flattens its
// children into a view ancestors can reference. A join without both an
// Inner- and an Outer-tagged child is a malformed plan and aborts the
// analysis; any other failure just leaves the view unregistered, and
// ancestors degrade through ViewNotFound.
func (a *Analyzer) visitJoin(ctx context.Context, n *plan.Node) error {
	err := a.synth.Join(ctx, n)
	if err == nil {
		return nil
	}
	var missing *view.MissingChildError
	if errors.As(err, &missing) {
		return err
	}
	if engine.IsTransactionAborted(err) {
		return err
	}
	return nil
}

// visitPassThrough wraps its child; every failure is cosmetic for block
// accounting and is tolerated silently.
func (a *Analyzer) visitPassThrough(ctx context.Context, n *plan.Node) error {
	if err := a.synth.PassThrough(ctx, n); err != nil {
		if engine.IsTransactionAborted(err) {
			return err
		}
	}
	return nil
}

// flag records the first unsupported node; later ones add nothing the
// caller can act on.
func (a *Analyzer) flag(unsupported **UnsupportedQueryError, n *plan.Node, err error) {
	if *unsupported == nil {
		*unsupported = &UnsupportedQueryError{NodeID: n.ID(), Err: err}
	}
}

func isCondError(err error) bool {
	var notFound *cond.ViewNotFoundError
	var malformed *cond.MalformedConditionError
	return errors.As(err, &notFound) || errors.As(err, &malformed)
}
