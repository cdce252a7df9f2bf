// Package store persists the last successful cost view to SQLite so the
// widget can show stale data immediately on startup, before the first
// fetch completes. It keeps exactly one snapshot, not a history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is the SQLite-backed snapshot store.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant cache database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "billwatch", "snapshot.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "billwatch", "snapshot.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveView replaces the stored snapshot with the given view.
func (c *Cache) SaveView(v model.CostView) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM snapshot"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM snapshot_services"); err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO snapshot (id, month_to_date, fetched_at, saved_at) VALUES (1, ?, ?, ?)",
		v.MonthToDate,
		v.FetchedAt.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for i, svc := range v.Services {
		var activity any
		if svc.Activity != nil {
			activity = *svc.Activity
		}
		_, err := tx.Exec(
			"INSERT INTO snapshot_services (rank, service, cost, activity) VALUES (?, ?, ?, ?)",
			i, svc.Service, svc.Cost, activity,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadView returns the stored snapshot, or nil when none has been saved.
func (c *Cache) LoadView() (*model.CostView, error) {
	var (
		view      model.CostView
		fetchedAt string
	)
	err := c.db.QueryRow("SELECT month_to_date, fetched_at FROM snapshot WHERE id = 1").
		Scan(&view.MonthToDate, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	view.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}

	rows, err := c.db.Query("SELECT service, cost, activity FROM snapshot_services ORDER BY rank")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			svc      model.ServiceCost
			activity sql.NullInt64
		)
		if err := rows.Scan(&svc.Service, &svc.Cost, &activity); err != nil {
			return nil, err
		}
		if activity.Valid {
			svc.Activity = model.KnownActivity(int(activity.Int64))
		}
		view.Services = append(view.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &view, nil
}
