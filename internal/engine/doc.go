// Package engine is the boundary to the relational engine that executes
// the analyzed queries.
//
// The analysis itself never touches a connection directly: it talks to
// the Querier interface (create view, drop view, block IDs, columns) so
// tests can substitute fakes and count calls. Session is the production
// implementation over database/sql with the PostgreSQL driver; block
// identifiers are a PostgreSQL heap concept, derived from ctid.
//
// A Session owns every view it creates. Views are scoped to the session
// and dropped on Close and on Reset, including on error paths; leaving
// them behind would leak engine-side objects and collide with the next
// session's names. One Session serves one analysis at a time: the
// underlying connection is a single shared resource, and a statement that
// fails inside a transaction leaves the connection aborted until the
// caller resets it. That reset is explicit and user-visible, never an
// automatic retry.
package engine
