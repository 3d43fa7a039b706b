// Package history persists a ledger of generation runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses
const (
	StatusCreated  = "created"
	StatusVerified = "verified"
	StatusFailed   = "failed"
)

// Run is one recorded generation run.
type Run struct {
	ID            string
	AppName       string
	Domain        string
	Seed          uint64
	ProjectDir    string
	EntityCount   int
	FieldCount    int
	RelationCount int
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

// Filters narrows List results. Zero values match everything.
type Filters struct {
	Domain string
	Status string
	Limit  int
}

// Store implements the run ledger with SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite run store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record persists a new run. A missing ID or status is filled in.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Status == "" {
		run.Status = StatusCreated
	}

	// Seeds are stored as int64; the high-bit round trip is lossless.
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, app_name, domain, seed, project_dir, entity_count, field_count, relation_count, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.AppName, run.Domain, int64(run.Seed), run.ProjectDir, run.EntityCount, run.FieldCount, run.RelationCount, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// Get retrieves a run by its ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var (
		seed      int64
		createdAt time.Time
		updatedAt time.Time
	)

	run := &Run{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, app_name, domain, seed, project_dir, entity_count, field_count, relation_count, status, created_at, updated_at FROM runs WHERE id = ?",
		id,
	).Scan(&run.ID, &run.AppName, &run.Domain, &seed, &run.ProjectDir, &run.EntityCount, &run.FieldCount, &run.RelationCount, &run.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Seed = uint64(seed)
	run.CreatedAt = createdAt.Format(time.RFC3339)
	run.UpdatedAt = updatedAt.Format(time.RFC3339)

	return run, nil
}

// List retrieves runs matching the given filters, newest first.
func (s *Store) List(ctx context.Context, filters Filters) ([]*Run, error) {
	query := "SELECT id, app_name, domain, seed, project_dir, entity_count, field_count, relation_count, status, created_at, updated_at FROM runs WHERE 1=1"
	args := []any{}

	if filters.Domain != "" {
		query += " AND domain = ?"
		args = append(args, filters.Domain)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			seed      int64
			createdAt time.Time
			updatedAt time.Time
		)

		run := &Run{}
		err := rows.Scan(&run.ID, &run.AppName, &run.Domain, &seed, &run.ProjectDir, &run.EntityCount, &run.FieldCount, &run.RelationCount, &run.Status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Seed = uint64(seed)
		run.CreatedAt = createdAt.Format(time.RFC3339)
		run.UpdatedAt = updatedAt.Format(time.RFC3339)

		runs = append(runs, run)
	}

	return runs, nil
}

// MarkStatus updates the status of a run.
func (s *Store) MarkStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("run %s not found", id)
	}

	return nil
}

// Prune deletes all but the newest keep runs and returns the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep count %d", keep)
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT ?)",
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	deleted, _ := result.RowsAffected()
	return int(deleted), nil
}
