package repository

import (
	"context"
	"time"

	"github.com/haroonchishty/sca-backend/internal/domain"
	"github.com/haroonchishty/sca-backend/internal/persistence"
)

// UserRepository defines persistence access for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, patch persistence.Patch) (map[string]any, error)
	GetExpiry(ctx context.Context, userID string) (string, error)
	CompleteCase(ctx context.Context, userID, caseID string, rating domain.Rating) error
}

type userRepository struct {
	store *persistence.Store
	table string
}

// NewUserRepository returns a DynamoDB-backed implementation.
func NewUserRepository(store *persistence.Store, table string) UserRepository {
	return &userRepository{store: store, table: table}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	return r.store.Put(ctx, r.table, u)
}

// Update applies a caller-supplied field patch, stamping updatedAt. The
// identifier and the timestamp itself are never caller controlled.
func (r *userRepository) Update(ctx context.Context, userID string, patch persistence.Patch) (map[string]any, error) {
	patch = patch.Sanitized("userId", "updatedAt")
	patch["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	var updated map[string]any
	if err := r.store.Update(ctx, r.table, "userId", userID, patch, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *userRepository) GetExpiry(ctx context.Context, userID string) (string, error) {
	var proj struct {
		SubscriptionExpiry string `dynamodbav:"subscriptionExpiry"`
	}
	if err := r.store.Get(ctx, r.table, "userId", userID, []string{"subscriptionExpiry"}, &proj); err != nil {
		return "", err
	}
	return proj.SubscriptionExpiry, nil
}

// CompleteCase merges a single rating into the completedCases mapping
// without rewriting the rest of the map. No updatedAt stamp here; the merge
// touches exactly one nested key.
func (r *userRepository) CompleteCase(ctx context.Context, userID, caseID string, rating domain.Rating) error {
	patch := persistence.Patch{"completedCases." + caseID: string(rating)}
	return r.store.Update(ctx, r.table, "userId", userID, patch, nil)
}
