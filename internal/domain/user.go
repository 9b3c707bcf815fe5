package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser is a back-office account allowed to manage listings.
type AdminUser struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string         `gorm:"column:fullname;not null" json:"fullname"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         string         `gorm:"column:role;not null;default:admin" json:"role"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminUser) TableName() string {
	return "AdminUsers"
}

// BeforeCreate sets user_id if not already set (DBs without default uuid).
func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
