package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/studytrack/progress-service/internal/repositories"
)

const pgUniqueViolation = "23505"

// handleDBError maps driver errors onto the repository sentinels. Lookup
// misses are handled by the callers (Limit(1).Find), so ErrRecordNotFound
// only shows up on write paths.
func handleDBError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, repositories.ErrDuplicate)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}
