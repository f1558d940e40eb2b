package users

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "schoolku_backend/internals/features/users/auth/repository"
	authService "schoolku_backend/internals/features/users/auth/service"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string, log *zap.Logger) error {
	log.Info("📥 reading seed file", zap.String("path", filePath))
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []UserSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, s := range seeds {
		if _, err := authRepo.FindUserByEmailOrUsername(ctx, db, s.Email); err == nil {
			log.Info("ℹ️ user exists, skipped", zap.String("email", s.Email))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := authService.CreateUser(ctx, db, authService.CreateUserInput{
			UserName: s.UserName,
			FullName: s.FullName,
			Email:    s.Email,
			Password: s.Password,
			Role:     s.Role,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", s.Email, err)
		}
		log.Info("✅ user seeded", zap.String("email", s.Email), zap.String("role", s.Role))
	}
	return nil
}
