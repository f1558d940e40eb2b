// file: internals/helpers/auth/locals.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys (set by the JWT middleware)
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "role"
	LocRawToken = "raw_token"
	LocTokenExp = "token_exp"
)

// GetUserID returns 401 when not logged in, 400 when the id is malformed.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	var s string
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
		}
		return t, nil
	case string:
		s = strings.TrimSpace(t)
	}
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid user id in token")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(r))
}

func GetUserName(c *fiber.Ctx) string {
	n, _ := c.Locals(LocUserName).(string)
	return n
}
