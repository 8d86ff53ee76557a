package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/haroonchishty/sca-backend/internal/api/dto"
	"github.com/haroonchishty/sca-backend/internal/service"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// UploadsHandler issues pre-signed upload URLs for case images.
type UploadsHandler struct {
	uploads *service.UploadService
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(uploads *service.UploadService) *UploadsHandler {
	return &UploadsHandler{uploads: uploads}
}

// Create handles POST /uploads.
func (h *UploadsHandler) Create(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	url, key, err := h.uploads.PresignPut(c.UserContext(), req.FileName, req.FileType)
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{URL: url, Key: key})
}
