package auth

import (
	"context"
	"testing"

	"estates-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AdminUser{}))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) *domain.AdminUser {
	t.Helper()
	u, err := CreateAdmin(context.Background(), db, CreateAdminInput{
		Fullname: "Laura Gómez",
		Email:    "Admin@Example.com",
		Password: "secret1!",
	})
	require.NoError(t, err)
	return u
}

func TestCreateAdmin(t *testing.T) {
	db := setupDB(t)
	u := seedAdmin(t, db)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Equal(t, "admin", u.Role)
	assert.NotEqual(t, "secret1!", u.PasswordHash)

	_, err := CreateAdmin(context.Background(), db, CreateAdminInput{Fullname: "Otro", Email: "admin@example.com", Password: "secret1!"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateAdmin_Validation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	_, err := CreateAdmin(ctx, db, CreateAdminInput{Fullname: "Ana", Email: "bad", Password: "secret1!"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = CreateAdmin(ctx, db, CreateAdminInput{Fullname: "Ana 2", Email: "a@b.co", Password: "secret1!"})
	assert.ErrorIs(t, err, ErrInvalidFullname)
	_, err = CreateAdmin(ctx, db, CreateAdminInput{Fullname: "Ana", Email: "a@b.co", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = CreateAdmin(ctx, db, CreateAdminInput{Fullname: "Ana", Email: "a@b.co", Password: "secret1!", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginUser(t *testing.T) {
	db := setupDB(t)
	seeded := seedAdmin(t, db)

	u, err := LoginUser(db, LoginInput{Email: " admin@example.com ", Password: "secret1!"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, u.UserID)

	_, err = LoginUser(db, LoginInput{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, ErrIncorrectPassword, err)

	_, err = LoginUser(db, LoginInput{Email: "nobody@example.com", Password: "secret1!"})
	assert.Equal(t, ErrInvalidEmail, err)

	_, err = LoginUser(db, LoginInput{Email: "", Password: ""})
	assert.Equal(t, ErrEmailPasswordRequired, err)
}

func TestGormUserFinder(t *testing.T) {
	db := setupDB(t)
	seedAdmin(t, db)
	f := &GormUserFinder{DB: db}
	u, err := f.FindByEmailAndPassword(context.Background(), "admin@example.com", "secret1!")
	require.NoError(t, err)
	shape := ShapeFor(u)
	assert.Equal(t, u.UserID.String(), shape.UserID)
	assert.Equal(t, "Laura Gómez", shape.Fullname)
}

func TestVerifyUser_Nil(t *testing.T) {
	u, err := VerifyUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_EmptyMap(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_NoUserID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"fullname": "Test",
		"email":    "a@b.com",
	})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_Valid(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test User",
		"email":    "test@example.com",
		"role":     "admin",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "Test User", u.Fullname)
	assert.Equal(t, "test@example.com", u.Email)
	assert.Equal(t, "admin", u.Role)
}
