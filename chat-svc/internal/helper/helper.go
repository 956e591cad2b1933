package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique constraint violation. When
// constraint is non-empty the postgres constraint name must match as well.
func IsDuplicateKey(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return false
		}
		return constraint == "" || pgErr.ConstraintName == constraint
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite (tests) without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func ContainsFold(values []string, need string) bool {
	need = strings.TrimSpace(need)
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), need) {
			return true
		}
	}
	return false
}

// CleanList trims entries and drops blanks and case-insensitive duplicates.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || ContainsFold(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
