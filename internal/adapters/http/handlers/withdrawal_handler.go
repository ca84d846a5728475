package handlers

import (
	"strconv"

	"quantfund-staking/internal/adapters/http/middleware"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/core/services"
	"quantfund-staking/internal/pkg/pagination"
	"quantfund-staking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// WithdrawalRequest represents withdrawal request body
type WithdrawalRequest struct {
	ToAddress string `json:"to_address"`
	Amount    string `json:"amount"`
}

// Request creates a pending withdrawal
// @Summary Request withdrawal
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Param body body WithdrawalRequest true "Withdrawal data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *WithdrawalHandler) Request(c *fiber.Ctx) error {
	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if req.ToAddress == "" || req.Amount == "" {
		return domain.NewValidationError("Destination address and amount are required")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return domain.NewValidationError("Withdrawal amount must be a valid number")
	}

	withdrawal, err := h.withdrawalService.Request(c.Context(), middleware.AccountID(c), req.ToAddress, amount)
	if err != nil {
		return err
	}

	return response.Created(c, "Withdrawal requested successfully", withdrawal)
}

// List returns the account's withdrawals
// @Summary List withdrawals
// @Tags Withdrawals
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	withdrawals, total, err := h.withdrawalService.List(c.Context(), middleware.AccountID(c), params.Offset, params.Limit)
	if err != nil {
		return err
	}

	return response.Success(c, "Withdrawals retrieved successfully",
		pagination.NewResponse(withdrawals, params, total))
}

// Cancel cancels a pending withdrawal
// @Summary Cancel withdrawal
// @Tags Withdrawals
// @Produce json
// @Param id path int true "Withdrawal id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /withdrawals/{id} [delete]
func (h *WithdrawalHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return domain.NewValidationError("Invalid withdrawal id")
	}

	if err := h.withdrawalService.Cancel(c.Context(), middleware.AccountID(c), uint(id)); err != nil {
		return err
	}

	return response.Success(c, "Withdrawal cancelled successfully", nil)
}
