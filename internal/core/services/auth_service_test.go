package services

import (
	"context"
	"testing"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/config"
	"luna-empenos/internal/core/domain"
	"luna-empenos/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  30,
			RefreshTokenDays: 7,
		},
	}
	svc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
	return svc, db
}

func createAccount(t *testing.T, svc *AuthService) *models.UserResponse {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "cajero1",
		Password: "secreto123",
		FullName: "Cajero Uno",
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	svc, _ := newAuthService(t)

	user := createAccount(t, svc)
	assert.Equal(t, "cajero1", user.Username)
	assert.Equal(t, domain.RoleEmployee, user.Role, "role defaults to employee")
	assert.True(t, user.IsActive)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "cajero1", Password: "otropass123", FullName: "Impostor",
	})
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "cajero2", Password: "corta", FullName: "Cajero Dos",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	createAccount(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginInput{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "cajero1", resp.User.Username)

	claims, err := jwt.ValidateAccessToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "EMPLOYEE", claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	createAccount(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, &LoginInput{Username: "cajero1", Password: "equivocada"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Unknown username gets the same answer as a wrong password.
	_, err = svc.Login(ctx, &LoginInput{Username: "fantasma", Password: "secreto123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, db := newAuthService(t)
	user := createAccount(t, svc)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_active", false).Error)

	_, err := svc.Login(context.Background(), &LoginInput{Username: "cajero1", Password: "secreto123"})
	require.ErrorIs(t, err, ErrUserInactive)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	createAccount(t, svc)
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The presented token was revoked by the rotation.
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// The fresh one still works.
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_RevokesAllSessions(t *testing.T) {
	svc, _ := newAuthService(t)
	user := createAccount(t, svc)
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginInput{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Username: "cajero1", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestListUsers(t *testing.T) {
	svc, _ := newAuthService(t)
	createAccount(t, svc)
	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "gerente", Password: "secreto123", FullName: "Gerente Luna", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	users, total, err := svc.ListUsers(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)

	names := []string{users[0].Username, users[1].Username}
	assert.ElementsMatch(t, []string{"cajero1", "gerente"}, names)

	page, total, err := svc.ListUsers(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, page, 1)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	user := createAccount(t, svc)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cajero Uno", profile.FullName)

	_, err = svc.GetProfile(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
