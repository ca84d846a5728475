package handlers

import (
	"quantfund-staking/internal/adapters/http/middleware"
	"quantfund-staking/internal/core/domain"
	"quantfund-staking/internal/core/services"
	"quantfund-staking/internal/pkg/pagination"
	"quantfund-staking/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StakingHandler handles staking endpoints
type StakingHandler struct {
	stakingService *services.StakingService
}

// NewStakingHandler creates a new staking handler
func NewStakingHandler(stakingService *services.StakingService) *StakingHandler {
	return &StakingHandler{stakingService: stakingService}
}

// CreateStakingRequest represents create staking request body. Any amount
// field a client sends is ignored; the plan price is authoritative.
type CreateStakingRequest struct {
	PlanID uint `json:"plan_id"`
}

// PositionRequest represents a claim/sell request body
type PositionRequest struct {
	ID uint `json:"id"`
}

// Create opens a new staking position
// @Summary Create staking position
// @Description Stake on a plan; principal and reward rate are snapshotted from the plan
// @Tags Staking
// @Accept json
// @Produce json
// @Param body body CreateStakingRequest true "Plan selection"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /staking [post]
func (h *StakingHandler) Create(c *fiber.Ctx) error {
	var req CreateStakingRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if req.PlanID == 0 {
		return domain.NewValidationError("Plan id is required")
	}

	id, err := h.stakingService.Create(c.Context(), middleware.AccountID(c), req.PlanID)
	if err != nil {
		return err
	}

	return response.Success(c, "Staking created successfully", fiber.Map{"id": id})
}

// List returns the account's staking positions
// @Summary List staking positions
// @Tags Staking
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /staking [get]
func (h *StakingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	positions, total, err := h.stakingService.List(c.Context(), middleware.AccountID(c), params.Offset, params.Limit)
	if err != nil {
		return err
	}

	return response.Success(c, "Staking history retrieved successfully",
		pagination.NewResponse(positions, params, total))
}

// Claim claims the accrued reward on a matured position
// @Summary Claim staking reward
// @Tags Staking
// @Accept json
// @Produce json
// @Param body body PositionRequest true "Position id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /staking/claim [post]
func (h *StakingHandler) Claim(c *fiber.Ctx) error {
	var req PositionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	claimed, err := h.stakingService.Claim(c.Context(), middleware.AccountID(c), req.ID)
	if err != nil {
		return err
	}

	return response.Success(c, "Reward claimed successfully", fiber.Map{"claimed_amount": claimed})
}

// Sell liquidates a position's remaining quantity
// @Summary Sell staking position
// @Tags Staking
// @Accept json
// @Produce json
// @Param body body PositionRequest true "Position id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /staking/sell [post]
func (h *StakingHandler) Sell(c *fiber.Ctx) error {
	var req PositionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	sold, err := h.stakingService.Sell(c.Context(), middleware.AccountID(c), req.ID)
	if err != nil {
		return err
	}

	return response.Success(c, "Staking sold successfully", fiber.Map{"sold_amount": sold})
}

// Plans returns the active plan catalog
// @Summary List staking plans
// @Tags Staking
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staking/plans [get]
func (h *StakingHandler) Plans(c *fiber.Ctx) error {
	plans, err := h.stakingService.ListPlans(c.Context())
	if err != nil {
		return err
	}

	return response.Success(c, "Staking plans retrieved successfully", plans)
}
