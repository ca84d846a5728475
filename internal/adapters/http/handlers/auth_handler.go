package handlers

import (
	"quantfund-staking/internal/adapters/http/middleware"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/core/services"
	"quantfund-staking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginSignatureRequest represents login-with-signature request body
type LoginSignatureRequest struct {
	Address         string `json:"address"`
	Signature       string `json:"signature"`
	ReferralAddress string `json:"referral_address,omitempty"`
}

// LoginWithSignature handles wallet signature login
// @Summary Login with wallet signature
// @Description Authenticate a wallet by signature over the fixed challenge message; registers the address on first login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginSignatureRequest true "Login data"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /auth/login-signature [post]
func (h *AuthHandler) LoginWithSignature(c *fiber.Ctx) error {
	var req LoginSignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	result, err := h.authService.LoginWithSignature(c.Context(), &services.LoginInput{
		Address:         req.Address,
		Signature:       req.Signature,
		ReferralAddress: req.ReferralAddress,
	})
	if err != nil {
		return err
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the authenticated account
// @Summary Current account
// @Description Returns the account record bound to the presented credential
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, err := h.authService.GetByID(c.Context(), middleware.AccountID(c))
	if err != nil {
		return err
	}

	return response.Success(c, "", fiber.Map{
		"id":            account.ID,
		"address":       account.Address,
		"referral_code": account.ReferralCode,
		"is_admin":      account.IsAdmin,
	})
}

// Refresh is not implemented: sessions are stateless and expire on their own
// @Summary Refresh session
// @Tags Auth
// @Produce json
// @Failure 501 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	return response.NotImplemented(c, "Not implemented")
}

// Logout acknowledges logout; the client discards its token
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.Success(c, "Logout successful", nil)
}
