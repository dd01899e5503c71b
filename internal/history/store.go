// Package history keeps a paper tape of completed evaluations in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mamaar/deskcalc/pkg/calc"
)

// Entry is one printed line of the paper tape.
type Entry struct {
	ID       int64
	Session  string
	Left     float64
	Operator calc.Operator
	Right    float64
	Result   string
	At       time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s = %s",
		calc.FormatNumber(e.Left), e.Operator, calc.FormatNumber(e.Right), e.Result)
}

// Store provides SQLite-backed persistence for evaluations.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// migrates its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open history: path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open history: ping: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends e and returns its ID. A zero At is stamped with the
// current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if s == nil || s.db == nil {
		return -1, fmt.Errorf("record: store is not open")
	}
	if e.Session == "" {
		return -1, fmt.Errorf("record: session is empty")
	}
	if e.Operator == calc.NoOperator {
		return -1, fmt.Errorf("record: operator is missing")
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (session, left_operand, operator, right_operand, result, at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Session,
		calc.FormatNumber(e.Left),
		e.Operator.String(),
		calc.FormatNumber(e.Right),
		e.Result,
		e.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return -1, fmt.Errorf("record: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("record: last insert id: %w", err)
	}
	return id, nil
}

// List returns up to limit entries, newest first. An empty session lists
// every session.
func (s *Store) List(ctx context.Context, session string, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("list: store is not open")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list: limit must be > 0")
	}

	query := `SELECT id, session, left_operand, operator, right_operand, result, at FROM evaluations`
	args := []any{}
	if session != "" {
		query += ` WHERE session = ?`
		args = append(args, session)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: query: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var left, op, right, at string
		if err := rows.Scan(&e.ID, &e.Session, &left, &op, &right, &e.Result, &at); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		ev, err := calc.ParseKey(op)
		if err != nil || ev.Kind != calc.OperatorEvent {
			return nil, fmt.Errorf("list: entry %d: bad operator %q", e.ID, op)
		}
		e.Operator = ev.Op
		e.Left = calc.ParseNumber(left)
		e.Right = calc.ParseNumber(right)
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("list: entry %d: parse at: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}
	return entries, nil
}

// Sessions returns the distinct session names that have entries, sorted.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sessions: store is not open")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT session FROM evaluations ORDER BY session ASC`)
	if err != nil {
		return nil, fmt.Errorf("sessions: query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sessions: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sessions: rows: %w", err)
	}
	return names, nil
}

// Clear deletes every entry of session and returns how many were removed.
func (s *Store) Clear(ctx context.Context, session string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("clear: store is not open")
	}
	if session == "" {
		return 0, fmt.Errorf("clear: session is empty")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE session = ?`, session)
	if err != nil {
		return 0, fmt.Errorf("clear: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear: rows affected: %w", err)
	}
	return n, nil
}

// Recorder returns a step hook that records every evaluation of a session.
// Step hooks cannot fail, so write errors are logged and dropped.
func (s *Store) Recorder(ctx context.Context, session string, logger *slog.Logger) calc.StepFunc {
	return func(st calc.Step) {
		ev, ok := st.Evaluation()
		if !ok {
			return
		}
		_, err := s.Record(ctx, Entry{
			Session:  session,
			Left:     ev.Left,
			Operator: ev.Operator,
			Right:    ev.Right,
			Result:   ev.Result,
		})
		if err != nil {
			logger.Warn("history write failed", "session", session, "err", err)
		}
	}
}
