package accounts

import (
	"context"

	"estates-backend/internal/auth"
	"estates-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service manages back office accounts.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// CreateInput is the body of POST /api/v1/admin/users.
type CreateInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// List returns every account, oldest first.
func (s *Service) List(ctx context.Context) ([]domain.AdminUser, error) {
	var users []domain.AdminUser
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.AdminUser, error) {
	u, err := auth.CreateAdmin(ctx, s.DB, auth.CreateAdminInput{
		Fullname: in.Fullname,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.UserID.String()).Str("role", u.Role).Msg("accounts: created")
	return u, nil
}

// UpdateRole changes the target's role and logs them out everywhere.
func (s *Service) UpdateRole(ctx context.Context, actorUserID, targetUserID, role string) (*domain.AdminUser, error) {
	target, err := ValidateRoleChange(ctx, s.DB, actorUserID, targetUserID, role)
	if err != nil {
		return nil, err
	}
	target.Role = role
	if err := s.DB.WithContext(ctx).Save(target).Error; err != nil {
		return nil, err
	}
	DestroyUserSessions(ctx, s.Rdb, targetUserID)
	return target, nil
}

// Remove soft-deletes the target account and logs them out everywhere.
func (s *Service) Remove(ctx context.Context, actorUserID, targetUserID string) error {
	target, err := ValidateRemoval(ctx, s.DB, actorUserID, targetUserID)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(target).Error; err != nil {
		return err
	}
	DestroyUserSessions(ctx, s.Rdb, targetUserID)
	log.Info().Str("user_id", targetUserID).Str("by", actorUserID).Msg("accounts: removed")
	return nil
}
