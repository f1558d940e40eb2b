package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes we care about.
const (
	PGUniqueViolation     = "23505"
	PGForeignKeyViolation = "23503"
)

// PGErrorCode extracts SQLSTATE from pgx or lib/pq errors ("" if neither).
func PGErrorCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return PGErrorCode(err) == PGUniqueViolation
}

// MapPGError maps DB errors to HTTP status + message.
func MapPGError(err error) (int, string) {
	switch PGErrorCode(err) {
	case PGUniqueViolation:
		return fiber.StatusConflict, "duplicate data (unique violation)"
	case PGForeignKeyViolation:
		return fiber.StatusBadRequest, "referenced record not found (FK violation)"
	default:
		return fiber.StatusInternalServerError, "database error"
	}
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}
