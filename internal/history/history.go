// Package history records button transitions in a SQLite database so they
// can be inspected after the session ends.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
	"github.com/llehouerou/pressable/internal/db"
	"github.com/llehouerou/pressable/internal/errmsg"
)

const (
	appName    = "pressable"
	dbFileName = "history.db"
)

// Entry is one recorded transition.
type Entry struct {
	ID      int64
	Session string
	Button  string
	Kind    buttonstate.Kind
	Origin  string
	Error   string
	Trace   string
	At      time.Time
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Button  string
	Session string
	Kind    *buttonstate.Kind
	Since   time.Time
	Limit   int // default 50
}

// Store writes and reads transitions. Each Store has its own session id,
// stamped on every row it records.
type Store struct {
	db      *sql.DB
	session string
	log     *slog.Logger
}

// DefaultPath returns the database location under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens or creates the database at path. An empty path selects
// DefaultPath.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Observers run on the UI loop; one connection keeps writes ordered.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{
		db:      conn,
		session: uuid.NewString(),
		log:     logger.With("component", "history"),
	}, nil
}

// Session returns the id stamped on rows recorded by this store.
func (s *Store) Session() string {
	return s.session
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores ev.
func (s *Store) Record(ctx context.Context, ev button.TransitionEvent) error {
	var errText string
	if err := ev.State.Err(); err != nil {
		errText = err.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transitions (session, button, kind, origin, error, trace, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.session,
		ev.Button,
		ev.State.Kind().String(),
		ev.Origin.String(),
		db.NullString(errText),
		db.NullString(ev.State.Trace()),
		ev.At.UnixMilli(),
	)
	return err
}

// Observer returns a button.Observer that records every event. Failures are
// logged and passed to onErr when it is not nil; they never reach the button.
func (s *Store) Observer(onErr func(error)) button.Observer {
	return func(ev button.TransitionEvent) {
		if err := s.Record(context.Background(), ev); err != nil {
			s.log.Warn(errmsg.FormatWith(errmsg.OpRecordTransition, ev.Button, err))
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

// List returns matching entries, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `SELECT id, session, button, kind, origin, error, trace, at FROM transitions WHERE 1=1`
	var args []any

	if f.Button != "" {
		query += ` AND button = ?`
		args = append(args, f.Button)
	}
	if f.Session != "" {
		query += ` AND session = ?`
		args = append(args, f.Session)
	}
	if f.Kind != nil {
		query += ` AND kind = ?`
		args = append(args, f.Kind.String())
	}
	if !f.Since.IsZero() {
		query += ` AND at >= ?`
		args = append(args, f.Since.UnixMilli())
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` ORDER BY at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			kind       string
			errText    sql.NullString
			trace      sql.NullString
			atUnixMill int64
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Button, &kind, &e.Origin, &errText, &trace, &atUnixMill); err != nil {
			return nil, err
		}
		if e.Kind, err = buttonstate.ParseKind(kind); err != nil {
			return nil, err
		}
		e.Error = db.NullStringValue(errText)
		e.Trace = db.NullStringValue(trace)
		e.At = time.UnixMilli(atUnixMill)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts returns how many transitions into each kind were recorded for
// button (all buttons when empty).
func (s *Store) Counts(ctx context.Context, buttonName string) (map[buttonstate.Kind]int, error) {
	query := `SELECT kind, COUNT(*) FROM transitions`
	var args []any
	if buttonName != "" {
		query += ` WHERE button = ?`
		args = append(args, buttonName)
	}
	query += ` GROUP BY kind`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[buttonstate.Kind]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		kind, err := buttonstate.ParseKind(name)
		if err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// ErrNothingToPrune is returned by Prune when no row is older than the cutoff.
var ErrNothingToPrune = errors.New("nothing to prune")

// Prune deletes entries recorded before cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM transitions WHERE at < ?`, cutoff.UnixMilli())
		if err != nil {
			return err
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return err
		}
		if deleted == 0 {
			return ErrNothingToPrune
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO prune_log (cutoff, deleted, pruned_at) VALUES (?, ?, ?)`,
			cutoff.UnixMilli(), deleted, time.Now().UnixMilli())
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
