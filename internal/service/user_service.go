package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	"github.com/haroonchishty/sca-backend/internal/repository"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// UserService implements account operations over the user repository.
type UserService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// CreateInput carries the caller-supplied fields for a new account.
type CreateInput struct {
	Email     string
	FirstName string
	LastName  string
	Gender    string
	DOB       string
	CreatedAt string
}

// Create registers a new account keyed by email. Tier starts at 0 until a
// subscription drives it.
func (s *UserService) Create(ctx context.Context, in CreateInput) error {
	if in.FirstName == "" || in.LastName == "" {
		return apperrors.NewValidationError("missing required fields")
	}

	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	user := &domain.User{
		UserID:         in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Gender:         in.Gender,
		DOB:            in.DOB,
		Tier:           0,
		CreatedAt:      createdAt,
		CompletedCases: map[string]domain.Rating{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return apperrors.NewUpstreamFailure("failed to create user", err)
	}
	return nil
}

// Update applies an arbitrary field patch and returns the updated record.
// userId and updatedAt are stripped from caller control by the repository.
func (s *UserService) Update(ctx context.Context, userID string, patch persistence.Patch) (map[string]any, error) {
	if patch.Sanitized("userId", "updatedAt").IsEmpty() {
		return nil, apperrors.NewValidationError("no fields provided for update")
	}
	updated, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user " + userID + " not found")
		}
		return nil, apperrors.NewUpstreamFailure("failed to update user", err)
	}
	return updated, nil
}

// ApplyPatch is the internal entry point used by the subscription
// reconciler; it skips the public validation but shares the repository's
// reserved-key handling.
func (s *UserService) ApplyPatch(ctx context.Context, userID string, patch persistence.Patch) error {
	_, err := s.repo.Update(ctx, userID, patch)
	return err
}

// Expiry returns the subscriptionExpiry projection for the user.
func (s *UserService) Expiry(ctx context.Context, userID string) (string, error) {
	expiry, err := s.repo.GetExpiry(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return "", apperrors.NewNotFound("user " + userID + " not found")
		}
		return "", apperrors.NewUpstreamFailure("failed to fetch subscription expiry", err)
	}
	return expiry, nil
}

// CompleteCase records one rating for one case, merging into the
// completedCases mapping without disturbing other entries.
func (s *UserService) CompleteCase(ctx context.Context, userID, caseID string, rating domain.Rating) error {
	if !rating.Valid() {
		return apperrors.NewValidationError("rating must be one of red, yellow, green")
	}
	if err := s.repo.CompleteCase(ctx, userID, caseID, rating); err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return apperrors.NewNotFound("user " + userID + " not found")
		}
		return apperrors.NewUpstreamFailure("failed to mark case as complete", err)
	}
	return nil
}
