package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"huangye/pkg/db"
	"huangye/pkg/model"
)

// MaxListLimit caps how many submissions a single query may return.
const MaxListLimit = 500

// SQLiteStore implements Store.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSubmission inserts one submission row.
func (s *SQLiteStore) SaveSubmission(ctx context.Context, sub *model.Submission) error {
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, email, city, type, details, contact, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.City, sub.Type, sub.Details, sub.Contact,
		createdAt.Format("2006-01-02 15:04:05"))
	return err
}

// ListSubmissions returns submissions newest first, capped at MaxListLimit.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, limit int) ([]*model.Submission, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, city, type, details, contact, created_at
		 FROM submissions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var result []*model.Submission
	for rows.Next() {
		var sub model.Submission
		var createdAt string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.City, &sub.Type,
			&sub.Details, &sub.Contact, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			sub.CreatedAt = t.UTC()
		}
		result = append(result, &sub)
	}

	return result, rows.Err()
}
