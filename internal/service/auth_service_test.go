package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"store-rating-service/internal/model"
	"store-rating-service/internal/service"
)

func TestAuthService_Signup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	s := service.NewAuthService(userRepo, tokenRepo, fakePublisher{})

	user, accessToken, refreshToken, err := s.Signup(context.Background(), "Bob Normal", "bob@x.com", "Secret#123", "9 Side St")
	require.NoError(t, err)
	require.Equal(t, model.RoleNormalUser, user.Role)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	// password stored as a bcrypt hash, never plaintext
	require.NotEqual(t, "Secret#123", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret#123")))

	// refresh token hash persisted for later revocation
	require.Len(t, tokenRepo.tokens, 1)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret#123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.add(&model.User{Email: "bob@x.com", PasswordHash: string(hash), Role: model.RoleNormalUser})

	s := service.NewAuthService(userRepo, newFakeTokenRepo(), fakePublisher{})

	_, _, err = s.Login(context.Background(), "bob@x.com", "WrongOne#1")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	s := service.NewAuthService(newFakeUserRepo(), newFakeTokenRepo(), fakePublisher{})

	_, _, err := s.Login(context.Background(), "nobody@x.com", "Secret#123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	s := service.NewAuthService(userRepo, tokenRepo, fakePublisher{})

	user, _, _, err := s.Signup(context.Background(), "Bob Normal", "bob@x.com", "Secret#123", "")
	require.NoError(t, err)

	// wrong current password is rejected
	err = s.UpdatePassword(context.Background(), user.ID, "WrongOne#1", "Changed#456")
	require.ErrorIs(t, err, service.ErrWrongPassword)

	// correct current password rehashes
	err = s.UpdatePassword(context.Background(), user.ID, "Secret#123", "Changed#456")
	require.NoError(t, err)

	stored, err := userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Changed#456")))
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	s := service.NewAuthService(userRepo, tokenRepo, fakePublisher{})

	_, _, refreshToken, err := s.Signup(context.Background(), "Bob Normal", "bob@x.com", "Secret#123", "")
	require.NoError(t, err)

	newAccess, err := s.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)

	require.NoError(t, s.Logout(context.Background(), refreshToken))

	// a revoked refresh token no longer refreshes
	_, err = s.RefreshToken(context.Background(), refreshToken)
	require.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	s := service.NewAuthService(userRepo, tokenRepo, fakePublisher{})

	_, accessToken, _, err := s.Signup(context.Background(), "Bob Normal", "bob@x.com", "Secret#123", "")
	require.NoError(t, err)

	// the token types are not interchangeable
	_, err = s.RefreshToken(context.Background(), accessToken)
	require.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userRepo := newFakeUserRepo()
	s := service.NewAuthService(userRepo, newFakeTokenRepo(), fakePublisher{})

	require.NoError(t, s.EnsureAdmin(context.Background(), "Root", "admin@x.com", "Admin#123"))

	admin, err := userRepo.FindByEmail(context.Background(), "admin@x.com")
	require.NoError(t, err)
	require.Equal(t, model.RoleSystemAdmin, admin.Role)

	// second call is a no-op
	require.NoError(t, s.EnsureAdmin(context.Background(), "Root", "admin@x.com", "Admin#123"))
	require.Len(t, userRepo.created, 1)

	// blank config skips bootstrap entirely
	require.NoError(t, s.EnsureAdmin(context.Background(), "Root", "", ""))
}
