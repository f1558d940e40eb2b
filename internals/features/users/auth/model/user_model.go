package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel: akun staff (admin / accountant / teacher).
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"column:user_name;type:varchar(50);not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	FullName string    `gorm:"column:full_name;type:varchar(120)" json:"full_name"`
	Email    string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Password string    `gorm:"column:password;type:varchar(250);not null" json:"-"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:'teacher'" json:"role"`
	IsActive bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }
