package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserRoleAdmin = "admin"
	UserRoleStaff = "staff"
)

type User struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserName     string `gorm:"column:user_name;type:varchar(60);not null" json:"user_name"`
	UserEmail    string `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:varchar(120);not null" json:"-"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'staff'" json:"user_role"`

	CreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;type:timestamptz;index" json:"user_deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }
