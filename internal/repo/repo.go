package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate key")

type GormRepo struct {
	DB *gorm.DB
}

// isUniqueViolation recognizes storage-level unique constraint failures.
// The constraint is the authoritative guard against concurrent creates of
// the same email or product name; application pre-checks only produce a
// cleaner error first.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
