package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizpos/internal/dto"
	"bizpos/internal/model"
)

func newTestAuthService(users *stubUserRepo) *AuthService {
	return NewAuthService(users, "test-secret", time.Hour, 24*time.Hour, testLogger())
}

func seedUser(t *testing.T, users *stubUserRepo, username, password string, role model.Role, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		IsActive:     active,
		Profile:      &model.EmployeeProfile{Role: role, IsActiveEmployee: active},
	}
	require.NoError(t, users.CreateWithProfileTx(nil, u, u.Profile))
	u.IsActive = active
	return u
}

func TestLoginIssuesUsableTokenPair(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "maria", "s3cretpass", model.RoleOwner, true)
	svc := newTestAuthService(users)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "owner", resp.User.Role)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, claims.Role)
	assert.False(t, claims.Refresh)

	refreshClaims, err := svc.ParseToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refreshClaims.Refresh)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "maria", "s3cretpass", model.RoleOwner, true)
	svc := newTestAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "gone", "s3cretpass", model.RoleCashier, false)
	svc := newTestAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "gone", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "maria", "s3cretpass", model.RoleOwner, true)
	svc := newTestAuthService(users)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "s3cretpass"})
	require.NoError(t, err)

	// An access token must not mint new pairs.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The refresh token does.
	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestCreateUserBuildsProfileAtomically(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "nico",
		Name:     "Nico",
		Password: "longenough",
		Role:     "stock_manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "stock_manager", resp.Role)

	stored, err := users.FindByUsername(context.Background(), "nico")
	require.NoError(t, err)
	require.NotNil(t, stored.Profile)
	assert.Equal(t, stored.ID, stored.Profile.UserID)
	assert.Equal(t, model.RoleStockManager, stored.Profile.Role)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "x",
		Name:     "X",
		Password: "longenough",
		Role:     "manager",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}
