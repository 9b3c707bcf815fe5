package accounts

import (
	"context"
	"errors"

	"estates-backend/internal/auth"
	"estates-backend/internal/constants"
	"estates-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func findUser(ctx context.Context, db *gorm.DB, userID string) (*domain.AdminUser, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidUserID
	}
	var u domain.AdminUser
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// lastAdmin reports whether u is the only remaining admin.
func lastAdmin(ctx context.Context, db *gorm.DB, u *domain.AdminUser) (bool, error) {
	if u.Role != constants.Admin {
		return false, nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(&domain.AdminUser{}).Where("role = ?", constants.Admin).Count(&count).Error; err != nil {
		return false, err
	}
	return count <= 1, nil
}

// ValidateRoleChange returns the target account when actor may give it role.
func ValidateRoleChange(ctx context.Context, db *gorm.DB, actorUserID, targetUserID, role string) (*domain.AdminUser, error) {
	if !constants.IsValidRole(role) {
		return nil, auth.ErrInvalidRole
	}
	target, err := findUser(ctx, db, targetUserID)
	if err != nil {
		return nil, err
	}
	if actorUserID == targetUserID {
		return nil, ErrCannotModifyOwnRole
	}
	if role != constants.Admin {
		last, err := lastAdmin(ctx, db, target)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, ErrMustKeepOneAdmin
		}
	}
	return target, nil
}

// ValidateRemoval returns the target account when actor may delete it.
func ValidateRemoval(ctx context.Context, db *gorm.DB, actorUserID, targetUserID string) (*domain.AdminUser, error) {
	if actorUserID == targetUserID {
		return nil, ErrCannotRemoveYourself
	}
	target, err := findUser(ctx, db, targetUserID)
	if err != nil {
		return nil, err
	}
	last, err := lastAdmin(ctx, db, target)
	if err != nil {
		return nil, err
	}
	if last {
		return nil, ErrMustKeepOneAdmin
	}
	return target, nil
}
