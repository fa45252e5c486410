package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no submission has the given id.
var ErrNotFound = errors.New("submission not found")

// Store persists submitted profiles.
type Store struct {
	db *sql.DB
}

// NewStore creates a new history store at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id                   TEXT PRIMARY KEY,
			business_type        TEXT NOT NULL,
			employee_count       TEXT NOT NULL,
			annual_revenue       TEXT NOT NULL,
			budget_for_ai        TEXT NOT NULL,
			time_consuming_tasks TEXT NOT NULL,
			current_software     TEXT NOT NULL DEFAULT '',
			submitted_at         TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating submissions table: %w", err)
	}
	return nil
}

const selectColumns = `id, business_type, employee_count, annual_revenue, budget_for_ai,
	time_consuming_tasks, current_software, submitted_at`

// Add inserts a submission.
func (s *Store) Add(e Entry) error {
	r := e.Record
	_, err := s.db.Exec(`
		INSERT INTO submissions (id, business_type, employee_count, annual_revenue, budget_for_ai,
			time_consuming_tasks, current_software, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, r.BusinessType, r.EmployeeCount, r.AnnualRevenue, r.BudgetForAI,
		r.TimeConsumingTasks, r.CurrentSoftware,
		e.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

// List returns the most recent submissions first.
func (s *Store) List(limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT `+selectColumns+`
		FROM submissions
		ORDER BY submitted_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Get returns a single submission by id.
func (s *Store) Get(id string) (Entry, error) {
	rows, err := s.db.Query(`SELECT `+selectColumns+` FROM submissions WHERE id = ?`, id)
	if err != nil {
		return Entry{}, fmt.Errorf("getting submission: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entries[0], nil
}

// Search matches the query against business type and task descriptions.
func (s *Store) Search(query string) ([]Entry, error) {
	like := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+selectColumns+`
		FROM submissions
		WHERE business_type LIKE ? OR time_consuming_tasks LIKE ?
		ORDER BY submitted_at DESC
		LIMIT 50`, like, like)
	if err != nil {
		return nil, fmt.Errorf("searching submissions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear removes all submissions.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM submissions")
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		r := &e.Record
		err := rows.Scan(&e.ID, &r.BusinessType, &r.EmployeeCount, &r.AnnualRevenue,
			&r.BudgetForAI, &r.TimeConsumingTasks, &r.CurrentSoftware, &ts)
		if err != nil {
			return nil, fmt.Errorf("scanning submission row: %w", err)
		}
		e.SubmittedAt, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
