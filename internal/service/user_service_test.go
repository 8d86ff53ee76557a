package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

type fakeUserRepo struct {
	created   []*domain.User
	expiry    map[string]string
	completed map[string]domain.Rating
	updateErr error
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, userID string, patch persistence.Patch) (map[string]any, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return map[string]any{"userId": userID}, nil
}

func (f *fakeUserRepo) GetExpiry(_ context.Context, userID string) (string, error) {
	if expiry, ok := f.expiry[userID]; ok {
		return expiry, nil
	}
	return "", persistence.ErrRecordNotFound
}

func (f *fakeUserRepo) CompleteCase(_ context.Context, userID, caseID string, rating domain.Rating) error {
	if f.completed == nil {
		f.completed = map[string]domain.Rating{}
	}
	f.completed[userID+"/"+caseID] = rating
	return nil
}

func TestUserCreate_Defaults(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo, zap.NewNop())

	err := s.Create(context.Background(), CreateInput{
		Email:     "a@b.com",
		FirstName: "Asha",
		LastName:  "Khan",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	u := repo.created[0]
	assert.Equal(t, "a@b.com", u.UserID)
	assert.Equal(t, 0, u.Tier)
	assert.NotNil(t, u.CompletedCases)
	assert.Empty(t, u.CompletedCases)
	assert.NotEmpty(t, u.CreatedAt)
}

func TestUserCreate_RequiresName(t *testing.T) {
	s := NewUserService(&fakeUserRepo{}, zap.NewNop())

	for _, in := range []CreateInput{
		{Email: "a@b.com", LastName: "Khan"},
		{Email: "a@b.com", FirstName: "Asha"},
	} {
		err := s.Create(context.Background(), in)
		var derr *apperrors.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "VALIDATION_FAILED", derr.Code)
	}
}

func TestUserUpdate_EmptyPatchRejected(t *testing.T) {
	s := NewUserService(&fakeUserRepo{}, zap.NewNop())

	_, err := s.Update(context.Background(), "a@b.com", persistence.Patch{
		"userId":    "forced",
		"updatedAt": "forced",
	})
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "VALIDATION_FAILED", derr.Code)
}

func TestUserUpdate_NotFound(t *testing.T) {
	repo := &fakeUserRepo{updateErr: persistence.ErrRecordNotFound}
	s := NewUserService(repo, zap.NewNop())

	_, err := s.Update(context.Background(), "a@b.com", persistence.Patch{"gender": "female"})
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}

func TestExpiry(t *testing.T) {
	repo := &fakeUserRepo{expiry: map[string]string{"a@b.com": "2026-04-10T12:00:00Z"}}
	s := NewUserService(repo, zap.NewNop())

	expiry, err := s.Expiry(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-10T12:00:00Z", expiry)

	_, err = s.Expiry(context.Background(), "missing@b.com")
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}

func TestCompleteCase(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo, zap.NewNop())

	require.NoError(t, s.CompleteCase(context.Background(), "a@b.com", "case-1", domain.RatingGreen))
	assert.Equal(t, domain.RatingGreen, repo.completed["a@b.com/case-1"])
}

func TestCompleteCase_InvalidRating(t *testing.T) {
	s := NewUserService(&fakeUserRepo{}, zap.NewNop())

	err := s.CompleteCase(context.Background(), "a@b.com", "case-1", domain.Rating("purple"))
	var derr *apperrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "VALIDATION_FAILED", derr.Code)
}
