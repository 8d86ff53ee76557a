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

// CasesHandler exposes exam case endpoints.
type CasesHandler struct {
	cases *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(cases *service.CaseService) *CasesHandler {
	return &CasesHandler{cases: cases}
}

// Create handles POST /cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	_, err := h.cases.Create(c.UserContext(), service.CaseInput{
		Category:       req.Category,
		Tier:           req.Tier,
		Title:          req.Title,
		AnonymousTitle: req.AnonymousTitle,
		Doctor:         req.Doctor,
		Patient:        req.Patient,
		Marking:        req.Marking,
		Management:     req.Management,
		CreatedAt:      req.CreatedAt,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Case created successfully",
	})
}

// GetByID handles GET /cases/:caseId.
func (h *CasesHandler) GetByID(c *fiber.Ctx) error {
	caseID := c.Params("caseId")
	if caseID == "" {
		return apperrors.NewValidationError("caseId is required")
	}

	result, err := h.cases.Get(c.UserContext(), caseID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// List handles GET /cases, filtered by categoryId or tier.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		result []domain.CaseSummary
		err    error
	)
	switch {
	case c.Query("categoryId") != "":
		result, err = h.cases.ListByCategory(ctx, c.Query("categoryId"))
	case c.Query("tier") != "":
		tier := c.QueryInt("tier")
		if tier < 1 {
			return apperrors.NewValidationError("invalid tier value")
		}
		result, err = h.cases.ListByTier(ctx, tier)
	default:
		result, err = h.cases.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	if result == nil {
		result = []domain.CaseSummary{}
	}
	return c.JSON(result)
}

// Update handles PUT /cases/:caseId with an arbitrary field patch.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	caseID := c.Params("caseId")
	if caseID == "" {
		return apperrors.NewValidationError("caseId is required")
	}

	var patch persistence.Patch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	updated, err := h.cases.Update(c.UserContext(), caseID, patch)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Case updated successfully",
		"updatedCase": updated,
	})
}
