package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/auth/dto"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	"schoolku_backend/internals/features/users/auth/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
	Log       *zap.Logger
	Now       func() time.Time
}

func NewAuthController(db *gorm.DB, secret string, ttl time.Duration, log *zap.Logger) *AuthController {
	return &AuthController{DB: db, JWTSecret: secret, TokenTTL: ttl, Log: log.Named("auth"), Now: time.Now}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	user, err := authRepo.FindUserByEmailOrUsername(c.UserContext(), ac.DB, strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to look up user")
	}
	if err := service.CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account is deactivated")
	}

	token, exp, err := service.IssueAccessToken(user, ac.JWTSecret, ac.TokenTTL, ac.Now())
	if err != nil {
		ac.Log.Error("issue token", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	ac.Log.Info("login", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return helper.JsonOK(c, "login successful", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUser(user),
	})
}

// GET /api/u/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(c.UserContext(), ac.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}
	return helper.JsonOK(c, "ok", dto.FromUser(user))
}

// POST /api/u/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	exp, ok := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if !ok {
		exp = ac.Now().Add(ac.TokenTTL)
	}
	if err := authRepo.BlacklistToken(c.UserContext(), ac.DB, raw, ac.JWTSecret, exp); err != nil {
		ac.Log.Error("blacklist token", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to log out")
	}
	return helper.JsonOK(c, "logged out", nil)
}
