package cond

import "fmt"

// ViewNotFoundError reports a predicate that references an alias before
// its producing view was registered. It means an ancestor depends on a
// descendant subtree whose view could not be synthesized; callers should
// treat the dependent part of the plan as unsupported and keep going
// rather than abort the traversal.
type ViewNotFoundError struct {
	Alias string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("no view registered for alias %q", e.Alias)
}

// MalformedConditionError reports a predicate that was expected to have
// the two-sided equi-join shape but does not. Fatal for the node's block
// computation; never fatal for the traversal.
type MalformedConditionError struct {
	Cond string
}

func (e *MalformedConditionError) Error() string {
	return fmt.Sprintf("no join attributes found in condition %q", e.Cond)
}
