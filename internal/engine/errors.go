package engine

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes this package classifies.
const (
	sqlstateUndefinedTable      = "42P01"
	sqlstateUndefinedColumn     = "42703"
	sqlstateInFailedTransaction = "25P02"
)

// IsUndefinedObject reports whether err is the engine saying a statement
// referenced a relation or column that does not exist. This is routine
// during analysis: a view definition can reference a sibling view that
// was never created because a deeper subtree was unsupported.
func IsUndefinedObject(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == sqlstateUndefinedTable || code == sqlstateUndefinedColumn
	}
	// Fallback for engines without SQLSTATE surfacing (the SQLite-backed
	// tests) and for wrapped driver errors.
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "no such column")
}

// IsTransactionAborted reports whether the connection is in the aborted
// transactional state that only an explicit Reset clears. Surfaced
// verbatim to the caller; never retried here.
func IsTransactionAborted(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlstateInFailedTransaction
	}
	return strings.Contains(err.Error(), "current transaction is aborted")
}
