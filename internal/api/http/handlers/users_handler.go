package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusdesk/helpdesk/internal/api/dto"
	"github.com/campusdesk/helpdesk/internal/auth"
	"github.com/campusdesk/helpdesk/internal/service"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

// UsersHandler exposes registration, login, profile and password endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register POST /api/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login POST /api/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Logout POST /api/logout. Tokens are stateless; the client discards its
// copy.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me GET /api/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Please log in to continue")
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(principal.User)})
}

// UpdateProfile PUT /api/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Please log in to continue")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.User, req.Name, req.School)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// ChangePassword PUT /api/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Please log in to continue")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// ForgotPassword POST /api/forgot-password.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, err := h.auth.RequestPasswordReset(c.Context(), req.Email)
	if err != nil {
		return err
	}
	// No mailer is wired; the token comes back in the response body.
	return c.JSON(fiber.Map{"message": "Reset link has been sent", "token": token})
}

// ValidateResetToken GET /api/reset-password/:token.
func (h *UsersHandler) ValidateResetToken(c *fiber.Ctx) error {
	email, err := h.auth.ValidateResetToken(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"valid": true, "email": email})
}

// ResetPassword POST /api/reset-password/:token.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ResetPassword(c.Context(), c.Params("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password has been reset successfully"})
}
