package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campusdesk/helpdesk/internal/auth"
	"github.com/campusdesk/helpdesk/internal/config"
	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/repository"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates registration, login, profile and password flows.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		logger:     deps.Logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new end-user account and returns a session token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("All fields are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// UpdateProfile changes the caller's display name, and school for
// non-admin accounts. School is ignored for admins.
func (s *AuthService) UpdateProfile(ctx context.Context, caller *domain.User, name string, school *string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Name is required", nil)
	}

	updated := *caller
	updated.Name = name
	if !caller.Role.IsAdmin() {
		updated.School = school
	}
	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &updated, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, caller *domain.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("Current and new password are required", nil)
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("New password must be at least 6 characters", nil)
	}
	if err := auth.ComparePassword(caller.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, caller.ID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RequestPasswordReset stores a single-use reset token for the account.
// There is no mailer; the token is logged and returned to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("Account with this email address", nil)
		}
		return "", apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     generateResetToken(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", apperrors.MapError(err)
	}

	s.logger.Info("password reset requested",
		zap.String("email", user.Email),
		zap.String("token", token.Token),
	)
	return token.Token, nil
}

// ValidateResetToken checks a token and returns the account email when the
// token is unused and unexpired.
func (s *AuthService) ValidateResetToken(ctx context.Context, tokenStr string) (string, error) {
	token, err := s.resets.GetValid(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewValidationError("Invalid or expired reset link", nil)
		}
		return "", apperrors.MapError(err)
	}
	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return user.Email, nil
}

// ResetPassword consumes a valid token and replaces the account password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("Password must be at least 6 characters", nil)
	}
	token, err := s.resets.GetValid(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Invalid or expired reset link", nil)
		}
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// EnsureAdmin seeds the bootstrap administrator account when none exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	exists, err := s.users.AdminExists(ctx)
	if err != nil || exists {
		return err
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        cfg.Email,
		Name:         cfg.Name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded bootstrap admin", zap.String("email", cfg.Email))
	return nil
}

func generateResetToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
