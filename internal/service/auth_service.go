package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"store-rating-service/internal/events"
	"store-rating-service/internal/jwt"
	"store-rating-service/internal/model"
	"store-rating-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password, address string) (*model.User, string, string, error)
	Login(ctx context.Context, email, password string) (accessToken string, refreshToken string, err error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, err error)
	Logout(ctx context.Context, refreshTokenString string) error
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	publisher events.EventPublisher
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, publisher events.EventPublisher) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		publisher: publisher,
	}
}

// Signup creates a NORMAL_USER account and logs it in, so the client lands
// authenticated straight from the signup form.
func (s *authService) Signup(ctx context.Context, name, email, password, address string) (*model.User, string, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, "", "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Address:      address,
		Role:         model.RoleNormalUser,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	user.ID = newID

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	go s.publisher.PublishUserRegistered(user.ID, user.Role)

	return user, accessToken, refreshToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, refreshToken, err := jwt.GenerateTokens(user)
	if err != nil {
		return "", "", err
	}

	hash := sha256.Sum256([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hash[:])

	refreshTokenModel := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(time.Hour * 24 * 30),
	}

	if err := s.tokenRepo.Create(ctx, refreshTokenModel); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(newHash))
}

func (s *authService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) RefreshToken(ctx context.Context, refreshTokenString string) (string, error) {
	claims, err := jwt.ValidateToken(refreshTokenString)

	if err != nil {
		return "", ErrTokenInvalid
	}

	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", ErrTokenInvalid
	}

	hash := sha256.Sum256([]byte(refreshTokenString))
	tokenHash := hex.EncodeToString(hash[:])

	_, err = s.tokenRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return "", ErrTokenInvalid
	}

	userID, _ := uuid.Parse(claims["sub"].(string))
	user, err := s.userRepo.FindByID(ctx, userID)

	if err != nil {
		return "", ErrTokenInvalid
	}

	newAccessToken, _, err := jwt.GenerateTokens(user)

	if err != nil {
		return "", err
	}

	return newAccessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshTokenString string) error {
	hash := sha256.Sum256([]byte(refreshTokenString))
	tokenHash := hex.EncodeToString(hash[:])

	return s.tokenRepo.Delete(ctx, tokenHash)
}

// EnsureAdmin creates the bootstrap SYSTEM_ADMIN account if the configured
// admin email does not exist yet. Called once at startup.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleSystemAdmin,
	}

	id, err := s.userRepo.Create(ctx, admin)
	if err != nil {
		return err
	}

	slog.Info("Bootstrap admin account created", "email", email, "id", id)
	return nil
}
