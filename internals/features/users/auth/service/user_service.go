package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authModel "schoolku_backend/internals/features/users/auth/model"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
)

type CreateUserInput struct {
	UserName string
	FullName string
	Email    string
	Password string
	Role     string
}

// CreateUser hashes the password and inserts a staff account.
func CreateUser(ctx context.Context, db *gorm.DB, in CreateUserInput) (*authModel.UserModel, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q (want one of %s)", in.Role, strings.Join(constants.AllRoles, ", "))
	}
	if strings.TrimSpace(in.UserName) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("user name and email are required")
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &authModel.UserModel{
		UserName: strings.TrimSpace(in.UserName),
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := authRepo.CreateUser(ctx, db, u); err != nil {
		return nil, err
	}
	return u, nil
}

func ValidRole(r string) bool {
	for _, x := range constants.AllRoles {
		if r == x {
			return true
		}
	}
	return false
}
