package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"financetracker/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// storeErr wraps an unexpected database failure so callers can match it with
// errors.Is(err, models.ErrStore) while keeping the driver's message.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStore, err)
}

// isUniqueViolation reports whether err is a postgres unique constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
