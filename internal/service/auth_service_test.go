package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdesk/helpdesk/internal/config"
	"github.com/campusdesk/helpdesk/internal/domain"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

func newAuthTestEnv() (*fakeUserRepo, *fakePasswordResetRepo, *AuthService) {
	users := newFakeUserRepo()
	resets := newFakePasswordResetRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 60,
			BcryptCost:              4, // keep hashing cheap in tests
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: resets,
		Logger:            zap.NewNop(),
	})
	return users, resets, svc
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newAuthTestEnv()

	user, token, _, err := svc.Register(ctx, "student@campus.edu", "hunter2", "Student")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Duplicate registration is rejected.
	_, _, _, err = svc.Register(ctx, "student@campus.edu", "other", "Someone Else")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	loggedIn, _, _, err := svc.Login(ctx, "student@campus.edu", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, _, err = svc.Login(ctx, "student@campus.edu", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	// Unknown accounts produce the same message as a wrong password.
	_, _, _, err = svc.Login(ctx, "nobody@campus.edu", "whatever")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", apperrors.ToDomainError(err).Message)
}

func TestUpdateProfileSchoolRules(t *testing.T) {
	ctx := context.Background()
	users, _, svc := newAuthTestEnv()

	student, _, _, err := svc.Register(ctx, "student@campus.edu", "hunter2", "Student")
	require.NoError(t, err)

	school := "Engineering"
	updated, err := svc.UpdateProfile(ctx, student, "New Name", &school)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.School)
	assert.Equal(t, "Engineering", *updated.School)

	// School is ignored for admin accounts.
	admin := &domain.User{Email: "admin@campus.edu", Name: "Admin", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	updated, err = svc.UpdateProfile(ctx, admin, "Head Admin", &school)
	require.NoError(t, err)
	assert.Nil(t, updated.School)

	_, err = svc.UpdateProfile(ctx, student, "   ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newAuthTestEnv()
	user, _, _, err := svc.Register(ctx, "student@campus.edu", "hunter2", "Student")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user, "wrong", "newpassword")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	err = svc.ChangePassword(ctx, user, "hunter2", "short")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(ctx, user, "hunter2", "newpassword"))
	_, _, _, err = svc.Login(ctx, "student@campus.edu", "newpassword")
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newAuthTestEnv()
	_, _, _, err := svc.Register(ctx, "student@campus.edu", "hunter2", "Student")
	require.NoError(t, err)

	_, err = svc.RequestPasswordReset(ctx, "nobody@campus.edu")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	token, err := svc.RequestPasswordReset(ctx, "student@campus.edu")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	email, err := svc.ValidateResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "student@campus.edu", email)

	err = svc.ResetPassword(ctx, token, "short")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ResetPassword(ctx, token, "resetpass"))

	// The token is single-use.
	_, err = svc.ValidateResetToken(ctx, token)
	require.Error(t, err)
	err = svc.ResetPassword(ctx, token, "resetpass2")
	require.Error(t, err)

	_, _, _, err = svc.Login(ctx, "student@campus.edu", "resetpass")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "student@campus.edu", "hunter2")
	assert.Error(t, err)
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	ctx := context.Background()
	users, _, svc := newAuthTestEnv()
	adminCfg := config.AdminConfig{Email: "admin@campus.edu", Password: "admin123", Name: "Admin"}

	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))
	admins, err := users.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@campus.edu", admins[0].Email)

	// Second call is a no-op.
	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))
	admins, err = users.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	_, _, _, err = svc.Login(ctx, "admin@campus.edu", "admin123")
	assert.NoError(t, err)
}
