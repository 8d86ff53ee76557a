package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/haroonchishty/sca-backend/internal/api/dto"
	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	"github.com/haroonchishty/sca-backend/internal/service"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
	subs  *service.SubscriptionService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, subs *service.SubscriptionService) *UsersHandler {
	return &UsersHandler{users: users, subs: subs}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	err := h.users.Create(c.UserContext(), service.CreateInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		DOB:       req.DOB,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// Update handles PUT /users/:userId with an arbitrary field patch.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}

	var patch persistence.Patch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	updated, err := h.users.Update(c.UserContext(), userID, patch)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "User updated successfully",
		"updatedUser": updated,
	})
}

// Expiry handles GET /users/:userId/expiry.
func (h *UsersHandler) Expiry(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}

	expiry, err := h.users.Expiry(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ExpiryResponse{SubscriptionExpiry: expiry})
}

// CompleteCase handles POST /users/:userId/cases/:caseId/complete.
func (h *UsersHandler) CompleteCase(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}
	caseID := c.Params("caseId")
	if caseID == "" {
		return apperrors.NewValidationError("caseId is required")
	}

	var req dto.CompleteCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.users.CompleteCase(c.UserContext(), userID, caseID, domain.Rating(req.Rating)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Case marked as completed",
	})
}

// CancelSubscription handles DELETE /users/:userId/subscription.
func (h *UsersHandler) CancelSubscription(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}
	if h.subs == nil {
		return apperrors.NewUpstreamFailure("payment processor not configured", nil)
	}

	if err := h.subs.CancelForUser(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
