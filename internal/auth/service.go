package auth

import (
	"context"
	"errors"
	"strings"

	"estates-backend/internal/constants"
	"estates-backend/internal/domain"
	"estates-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserFinder abstracts admin lookup by email+password (GORM in production, doubles in tests).
type UserFinder interface {
	FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.AdminUser, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	return LoginUser(g.DB.WithContext(ctx), LoginInput{Email: email, Password: password})
}

// LoginUser finds the admin by email and verifies the password.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	var u domain.AdminUser
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// CreateAdminInput is used by the create-admin command.
type CreateAdminInput struct {
	Fullname string
	Email    string
	Password string
	Role     string
}

// CreateAdmin stores a new back office account with a bcrypt password hash.
func CreateAdmin(ctx context.Context, db *gorm.DB, in CreateAdminInput) (*domain.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullname := strings.TrimSpace(in.Fullname)
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidFullname(fullname) {
		return nil, ErrInvalidFullname
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = constants.Admin
	}
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	var count int64
	if err := db.WithContext(ctx).Model(&domain.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.AdminUser{Fullname: fullname, Email: email, PasswordHash: string(hash), Role: role}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// ShapeFor is the session/me representation of u.
func ShapeFor(u *domain.AdminUser) SessionUserShape {
	return SessionUserShape{UserID: u.UserID.String(), Fullname: u.Fullname, Email: u.Email, Role: u.Role}
}

// VerifyUser validates the session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
