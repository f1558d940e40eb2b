package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "schoolku_backend/internals/features/users/auth/model"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)
	assert.True(t, CheckPasswordHash("rahasia123", hash))
	assert.False(t, CheckPasswordHash("rahasia124", hash))
}

func TestIssueAccessToken(t *testing.T) {
	u := &authModel.UserModel{ID: uuid.New(), UserName: "sari", Role: "accountant"}
	now := time.Now().Truncate(time.Second)

	raw, exp, err := IssueAccessToken(u, "secret", time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["sub"])
	assert.Equal(t, "accountant", claims["role"])
	assert.Equal(t, float64(exp.Unix()), claims["exp"])
}

func TestCreateUser_RejectsBeforeTouchingDB(t *testing.T) {
	ctx := context.Background()
	tests := []CreateUserInput{
		{UserName: "a", Email: "a@x.id", Password: "12345678", Role: "principal"},
		{UserName: "", Email: "a@x.id", Password: "12345678", Role: "admin"},
		{UserName: "a", Email: "a@x.id", Password: "short", Role: "admin"},
	}
	for _, in := range tests {
		_, err := CreateUser(ctx, nil, in)
		assert.Error(t, err, "%+v", in)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("teacher"))
	assert.False(t, ValidRole("Admin"))
	assert.False(t, ValidRole("student"))
}
