// Package store persists trajectory snapshots in SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // register postgres driver
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no snapshot matches
var ErrNotFound = errors.New("snapshot not found")

// Drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store provides snapshot persistence.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open opens the database for a driver and creates the schema.
// For sqlite the DSN is a file path; its directory is created if missing.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pinging postgres: %w", err)
		}
		return New(db, DriverPostgres)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLite(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// one writer at a time; the upsert still makes concurrent saves idempotent
	db.SetMaxOpenConns(1)
	return New(db, DriverSQLite)
}

// New wraps an open database and creates the schema
func New(db *sql.DB, driver string) (*Store, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, driver: driver, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertSnapshot inserts a snapshot or replaces the one stored for the same
// user and day. The row id survives replacement; the stored record is returned.
func (s *Store) UpsertSnapshot(ctx context.Context, rec Record) (Record, error) {
	if rec.UserID == "" {
		return Record{}, fmt.Errorf("snapshot has no user id")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.SnapshotDate = truncateDay(rec.SnapshotDate)
	rec.UpdatedAt = s.now().UTC()

	var years sql.NullString
	if rec.YearsToFire != nil {
		years = sql.NullString{String: rec.YearsToFire.String(), Valid: true}
	}

	var id string
	err := s.db.QueryRowContext(ctx, s.rebind(upsertSQL),
		rec.ID, rec.UserID, rec.SnapshotDate.Format(DateLayout),
		rec.NetWorth.String(), rec.TotalAssets.String(), rec.TotalLiabilities.String(),
		rec.FireNumber.String(), years, string(rec.Payload), rec.UpdatedAt.Format(time.RFC3339Nano),
	).Scan(&id)
	if err != nil {
		return Record{}, fmt.Errorf("upserting snapshot for %s: %w", rec.UserID, err)
	}
	rec.ID = id
	return rec, nil
}

// GetSnapshot returns the snapshot of a user on a day
func (s *Store) GetSnapshot(ctx context.Context, userID string, day time.Time) (Record, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+" WHERE user_id = ? AND snapshot_date = ?"),
		userID, truncateDay(day).Format(DateLayout))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// ListSnapshots returns a user's snapshots between from and to inclusive,
// oldest first. A zero bound is open.
func (s *Store) ListSnapshots(ctx context.Context, userID string, from, to time.Time) ([]Record, error) {
	query := selectColumns + " WHERE user_id = ?"
	args := []any{userID}
	if !from.IsZero() {
		query += " AND snapshot_date >= ?"
		args = append(args, truncateDay(from).Format(DateLayout))
	}
	if !to.IsZero() {
		query += " AND snapshot_date <= ?"
		args = append(args, truncateDay(to).Format(DateLayout))
	}
	query += " ORDER BY snapshot_date"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots for %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec                                 Record
		day, updated, payload               string
		netWorth, assets, liabilities, fire string
		years                               sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.UserID, &day, &netWorth, &assets, &liabilities, &fire, &years, &payload, &updated); err != nil {
		return Record{}, err
	}

	var err error
	if rec.SnapshotDate, err = time.Parse(DateLayout, day); err != nil {
		return Record{}, fmt.Errorf("parsing snapshot_date %q: %w", day, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Record{}, fmt.Errorf("parsing updated_at %q: %w", updated, err)
	}
	for _, f := range []struct {
		src string
		dst *decimal.Decimal
	}{
		{netWorth, &rec.NetWorth}, {assets, &rec.TotalAssets}, {liabilities, &rec.TotalLiabilities}, {fire, &rec.FireNumber},
	} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return Record{}, fmt.Errorf("parsing amount %q: %w", f.src, err)
		}
	}
	if years.Valid {
		v, err := decimal.NewFromString(years.String)
		if err != nil {
			return Record{}, fmt.Errorf("parsing years_to_fire %q: %w", years.String, err)
		}
		rec.YearsToFire = &v
	}
	rec.Payload = []byte(payload)
	return rec, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
