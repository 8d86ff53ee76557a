package repository

import (
	"context"
	"time"

	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
)

const (
	categoryIndex = "GSI_Category"
	tierIndex     = "GSI_Tier"
	scanLimit     = 100
)

// summaryProjection is the attribute set returned by list queries.
var summaryProjection = []string{"caseId", "title", "anonymousTitle", "categoryId"}

// CaseRepository defines persistence access for exam cases.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, caseID string) (*domain.Case, error)
	Update(ctx context.Context, caseID string, patch persistence.Patch) (map[string]any, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.CaseSummary, error)
	ListByTier(ctx context.Context, tier int) ([]domain.CaseSummary, error)
	ListAll(ctx context.Context) ([]domain.CaseSummary, error)
}

type caseRepository struct {
	store *persistence.Store
	table string
}

// NewCaseRepository returns a DynamoDB-backed implementation.
func NewCaseRepository(store *persistence.Store, table string) CaseRepository {
	return &caseRepository{store: store, table: table}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	return r.store.Put(ctx, r.table, c)
}

func (r *caseRepository) GetByID(ctx context.Context, caseID string) (*domain.Case, error) {
	var c domain.Case
	if err := r.store.Get(ctx, r.table, "caseId", caseID, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies a caller-supplied field patch, stamping updatedAt. The
// identifier and the timestamp itself are never caller controlled.
func (r *caseRepository) Update(ctx context.Context, caseID string, patch persistence.Patch) (map[string]any, error) {
	patch = patch.Sanitized("caseId", "updatedAt")
	patch["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	var updated map[string]any
	if err := r.store.Update(ctx, r.table, "caseId", caseID, patch, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *caseRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.CaseSummary, error) {
	var out []domain.CaseSummary
	if err := r.store.Query(ctx, r.table, categoryIndex, "categoryId", categoryID, summaryProjection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *caseRepository) ListByTier(ctx context.Context, tier int) ([]domain.CaseSummary, error) {
	var out []domain.CaseSummary
	if err := r.store.Query(ctx, r.table, tierIndex, "tier", tier, summaryProjection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *caseRepository) ListAll(ctx context.Context) ([]domain.CaseSummary, error) {
	var out []domain.CaseSummary
	if err := r.store.Scan(ctx, r.table, summaryProjection, scanLimit, &out); err != nil {
		return nil, err
	}
	return out, nil
}
