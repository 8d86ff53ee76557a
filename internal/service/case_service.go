package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	"github.com/haroonchishty/sca-backend/internal/repository"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// CaseService implements exam case operations over the case repository.
type CaseService struct {
	repo   repository.CaseRepository
	logger *zap.Logger
}

// NewCaseService constructs the service.
func NewCaseService(repo repository.CaseRepository, logger *zap.Logger) *CaseService {
	return &CaseService{repo: repo, logger: logger}
}

// CaseInput carries the caller-supplied fields for a new case. Omitted
// nested groups are stored fully shaped with empty strings.
type CaseInput struct {
	Category       string
	Tier           int
	Title          string
	AnonymousTitle string
	Doctor         domain.DoctorNotes
	Patient        domain.PatientNotes
	Marking        domain.Marking
	Management     domain.Management
	CreatedAt      string
}

// Create stores a new case with a generated identifier.
func (s *CaseService) Create(ctx context.Context, in CaseInput) (*domain.Case, error) {
	if in.Category == "" || in.Title == "" {
		return nil, apperrors.NewValidationError("missing required fields")
	}

	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	c := &domain.Case{
		CaseID:         uuid.NewString(),
		CategoryID:     in.Category,
		Tier:           in.Tier,
		Title:          in.Title,
		AnonymousTitle: in.AnonymousTitle,
		Doctor:         in.Doctor,
		Patient:        in.Patient,
		Marking:        in.Marking,
		Management:     in.Management,
		CreatedAt:      createdAt,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperrors.NewUpstreamFailure("failed to create case", err)
	}
	return c, nil
}

// Get fetches one case by id.
func (s *CaseService) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("case with caseId " + caseID + " not found")
		}
		return nil, apperrors.NewUpstreamFailure("failed to fetch case", err)
	}
	return c, nil
}

// Update applies an arbitrary field patch and returns the updated record.
func (s *CaseService) Update(ctx context.Context, caseID string, patch persistence.Patch) (map[string]any, error) {
	if patch.Sanitized("caseId", "updatedAt").IsEmpty() {
		return nil, apperrors.NewValidationError("no fields provided for update")
	}
	updated, err := s.repo.Update(ctx, caseID, patch)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("case with caseId " + caseID + " not found")
		}
		return nil, apperrors.NewUpstreamFailure("failed to update case", err)
	}
	return updated, nil
}

// ListByCategory returns summaries for one category.
func (s *CaseService) ListByCategory(ctx context.Context, categoryID string) ([]domain.CaseSummary, error) {
	out, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("failed to fetch cases", err)
	}
	return out, nil
}

// ListByTier expands a tier filter into one query per tier from the
// requested tier down to 1 and merges the results in that order.
func (s *CaseService) ListByTier(ctx context.Context, tier int) ([]domain.CaseSummary, error) {
	if tier < 1 {
		return nil, apperrors.NewValidationError("invalid tier value")
	}

	var combined []domain.CaseSummary
	for t := tier; t >= 1; t-- {
		batch, err := s.repo.ListByTier(ctx, t)
		if err != nil {
			return nil, apperrors.NewUpstreamFailure("failed to fetch cases", err)
		}
		combined = append(combined, batch...)
	}
	return combined, nil
}

// ListAll returns a bounded scan of case summaries.
func (s *CaseService) ListAll(ctx context.Context) ([]domain.CaseSummary, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("failed to fetch cases", err)
	}
	return out, nil
}
