package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Config holds the connection parameters for a PostgreSQL engine.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the config as a libpq connection string.
func (c Config) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslmode)
}

// Addr returns a human-readable endpoint for diagnostics.
func (c Config) Addr() string {
	return fmt.Sprintf("%s@%s:%s", c.Database, c.Host, c.Port)
}

// Session is one analysis session against a PostgreSQL engine. It tracks
// every view it creates and drops all of them on Close or Reset.
//
// Not safe for concurrent use: one session, one analysis at a time.
type Session struct {
	db     *sql.DB
	driver string
	dsn    string
	views  []string
}

// Open connects to the engine and verifies the connection.
func Open(cfg Config) (*Session, error) {
	return openSession("postgres", cfg.DSN(), cfg.Addr())
}

func openSession(driver, dsn, addr string) (*Session, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	// The session is a single shared resource; a pool would let two
	// statements interleave and break the aborted-transaction contract.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Session{db: db, driver: driver, dsn: dsn}, nil
}

// Close drops every view created during the session, then closes the
// connection. Drop failures do not stop the cleanup of the remaining
// views.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	s.dropAll(context.Background())
	err := s.db.Close()
	s.db = nil
	return err
}

// Reset discards an aborted connection and reconnects, then drops every
// view recorded so far on the fresh connection. This is the explicit
// recovery step after a statement failed inside a transaction; nothing in
// this package retries automatically.
func (s *Session) Reset(ctx context.Context) error {
	if s.db != nil {
		s.db.Close()
	}
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("reopen connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("reconnect: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	s.db = db
	s.dropAll(ctx)
	return nil
}

func (s *Session) dropAll(ctx context.Context) {
	// Reverse creation order: later views may reference earlier ones, so
	// each view's dependents are gone before it is dropped.
	for i := len(s.views) - 1; i >= 0; i-- {
		s.db.ExecContext(ctx, fmt.Sprintf("DROP VIEW IF EXISTS %s", s.views[i]))
	}
	s.views = nil
}

// Exec runs a statement with no interesting result.
func (s *Session) Exec(ctx context.Context, stmt string) error {
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// Plan returns the raw EXPLAIN (FORMAT JSON) document for query.
func (s *Session) Plan(ctx context.Context, query string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, "EXPLAIN (FORMAT JSON) "+query).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("explain query: %w", err)
	}
	return doc, nil
}

// CreateView materializes selectSQL as name and records it for disposal.
func (s *Session) CreateView(ctx context.Context, name, selectSQL string) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("CREATE VIEW %s AS %s", name, selectSQL)); err != nil {
		return err
	}
	s.views = append(s.views, name)
	return nil
}

// DropView drops one view immediately and forgets it.
func (s *Session) DropView(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP VIEW IF EXISTS %s", name)); err != nil {
		return err
	}
	for i, v := range s.views {
		if v == name {
			s.views = append(s.views[:i], s.views[i+1:]...)
			break
		}
	}
	return nil
}

// BlockIDs returns the distinct heap block numbers of relation's rows,
// optionally restricted by cond. The block number is the first component
// of the row's ctid.
func (s *Session) BlockIDs(ctx context.Context, relation, cond string) ([]int64, error) {
	q := fmt.Sprintf("SELECT DISTINCT (ctid::text::point)[0]::int FROM %s", relation)
	if cond != "" {
		q += " WHERE " + cond
	}
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Columns returns relation's column names in ordinal order. Views created
// during the session are visible here too.
func (s *Session) Columns(ctx context.Context, relation string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_name = $1 ORDER BY ordinal_position`, relation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("relation %q has no columns (does it exist?)", relation)
	}
	return cols, nil
}

// BlockRows returns the header row (ctid first) and the formatted
// contents of one heap block of relation, for the block browser.
func (s *Session) BlockRows(ctx context.Context, relation string, blockID int64) ([]string, [][]string, error) {
	q := fmt.Sprintf(
		"SELECT ctid::text, * FROM %s WHERE (ctid::text::point)[0]::int = $1", relation)
	rows, err := s.db.QueryContext(ctx, q, blockID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// Views returns the names of the views currently owned by the session.
func (s *Session) Views() []string {
	out := make([]string, len(s.views))
	copy(out, s.views)
	return out
}
