package analyze

import "fmt"

// UnsupportedQueryError reports that a node central to block accounting
// could not be resolved, so the returned BlockAccessMap is best-effort:
// complete for every relation it names except the ones behind the failed
// node. Callers should present the partial result as such rather than
// discard it.
type UnsupportedQueryError struct {
	NodeID string
	Err    error
}

func (e *UnsupportedQueryError) Error() string {
	return fmt.Sprintf("block accounting is best-effort: node %s unsupported: %v", e.NodeID, e.Err)
}

func (e *UnsupportedQueryError) Unwrap() error { return e.Err }
