package store

import (
	"context"

	"basegraph.app/accounts/internal/model"
)

// OrganizationStore defines the contract for organization data access.
// Create and Update maintain lower_name and grace_period_end; Update never
// moves grace_period_end backward, even from a stale copy.
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Organization, error)
	GetByGithubID(ctx context.Context, githubID int64) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	// SetIntegration writes one integration flag and nothing else.
	SetIntegration(ctx context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters []Filter) ([]model.Organization, error)
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByGithubID(ctx context.Context, githubID int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters []Filter) ([]model.User, error)
}

// MembershipStore manages the organizations_users junction.
type MembershipStore interface {
	Add(ctx context.Context, organizationID, userID int64) error
	Remove(ctx context.Context, organizationID, userID int64) error
	ListUserIDs(ctx context.Context, organizationID int64) ([]int64, error)
	ListOrganizationIDs(ctx context.Context, userID int64) ([]int64, error)
}
