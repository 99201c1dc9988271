package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/github"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/store"
)

// OrganizationService coordinates organization lifecycle and membership.
// GitHub is always consulted before any write; no transaction spans a
// gateway call.
type OrganizationService interface {
	Create(ctx context.Context, githubID int64, creator *model.User) (*model.Organization, error)
	AddUser(ctx context.Context, org *model.Organization, user *model.User) error
	RemoveUser(ctx context.Context, org *model.Organization, user *model.User) error
	Delete(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error)
	SetIntegration(ctx context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error)
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetByGithubID(ctx context.Context, githubID int64) (*model.Organization, error)
	List(ctx context.Context, filters []store.Filter) ([]model.Organization, error)
}

type organizationService struct {
	orgs        store.OrganizationStore
	memberships store.MembershipStore
	gateway     github.Gateway
	txRunner    TxRunner
	now         func() time.Time
}

func NewOrganizationService(
	orgs store.OrganizationStore,
	memberships store.MembershipStore,
	gateway github.Gateway,
	txRunner TxRunner,
	now func() time.Time,
) OrganizationService {
	if now == nil {
		now = time.Now
	}
	return &organizationService{
		orgs:        orgs,
		memberships: memberships,
		gateway:     gateway,
		txRunner:    txRunner,
		now:         now,
	}
}

// Create resolves githubID and inserts the organization in a single write.
// A user-type id becomes a personal account owned by that same user.
func (s *organizationService) Create(ctx context.Context, githubID int64, creator *model.User) (*model.Organization, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &githubID, UserID: &creator.ID})

	personal := false
	entity, err := s.gateway.GetOrganization(ctx, githubID)
	if err != nil {
		var typeErr *github.EntityTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("resolving github organization: %w", err)
		}

		entity, err = s.gateway.GetUser(ctx, githubID)
		if err != nil {
			return nil, fmt.Errorf("resolving github user for personal account: %w", err)
		}
		if creator.GithubID != githubID {
			return nil, &model.ValidationError{
				Entity: "organization",
				Field:  "creator",
				Reason: "a personal account can only be created by its own user",
			}
		}
		personal = true
	}

	now := s.now().UTC()
	grace := now
	org := &model.Organization{
		GithubID:          githubID,
		Name:              entity.Login,
		IsActive:          true,
		IsPersonalAccount: personal,
		TrialEnd:          now.Add(model.DefaultTrialLength),
		ActivePeriodEnd:   now,
		GracePeriodEnd:    &grace,
		Metadata:          model.DefaultMetadata(),
		CreatorID:         creator.ID,
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created",
		"organization_id", org.ID,
		"name", org.Name,
		"personal_account", org.IsPersonalAccount)
	return org, nil
}

func (s *organizationService) AddUser(ctx context.Context, org *model.Organization, user *model.User) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID, UserID: &user.ID})

	if org.IsPersonalAccount {
		if user.GithubID != org.GithubID {
			return &model.ValidationError{
				Entity: "membership",
				Field:  "user",
				Reason: "only the owning user may belong to a personal account",
			}
		}
	} else {
		token := ""
		if user.AccessToken != nil {
			token = *user.AccessToken
		}
		// The stored name is editable, so the login comes from GitHub.
		entity, err := s.gateway.GetOrganization(ctx, org.GithubID)
		if err != nil {
			return fmt.Errorf("resolving github organization: %w", err)
		}
		if err := s.gateway.CheckMembership(ctx, entity.Login, token); err != nil {
			return fmt.Errorf("verifying github membership: %w", err)
		}
	}

	if err := s.memberships.Add(ctx, org.ID, user.ID); err != nil {
		return fmt.Errorf("adding membership: %w", err)
	}

	slog.InfoContext(ctx, "user added to organization")
	return nil
}

func (s *organizationService) RemoveUser(ctx context.Context, org *model.Organization, user *model.User) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID, UserID: &user.ID})

	if err := s.memberships.Remove(ctx, org.ID, user.ID); err != nil {
		return fmt.Errorf("removing membership: %w", err)
	}

	slog.InfoContext(ctx, "user removed from organization")
	return nil
}

// Delete removes every membership and then the organization in one
// transaction. Any failure leaves all rows in place.
func (s *organizationService) Delete(ctx context.Context, org *model.Organization) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID})

	var removed int
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		userIDs, err := stores.Memberships().ListUserIDs(ctx, org.ID)
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}
		for _, userID := range userIDs {
			if err := stores.Memberships().Remove(ctx, org.ID, userID); err != nil {
				return fmt.Errorf("removing member %d: %w", userID, err)
			}
		}
		removed = len(userIDs)

		if err := stores.Organizations().Delete(ctx, org.ID); err != nil {
			return fmt.Errorf("deleting organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "organization deleted", "memberships_removed", removed)
	return nil
}

// Update applies patch to a row locked for the length of the transaction,
// so concurrent patches are serialized instead of overwriting each other.
func (s *organizationService) Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error) {
	if patch.Empty() {
		return s.orgs.GetByID(ctx, id)
	}

	var updated model.Organization
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		org, err := stores.Organizations().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(*org)
		if err := stores.Organizations().Update(ctx, &updated); err != nil {
			return fmt.Errorf("updating organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetIntegration writes the single flag column, leaving every other column
// as the database currently holds it.
func (s *organizationService) SetIntegration(ctx context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error) {
	if !integration.Valid() {
		return nil, &model.ValidationError{Entity: "organization", Field: "integration", Reason: fmt.Sprintf("unknown integration %q", integration)}
	}

	org, err := s.orgs.SetIntegration(ctx, id, integration, enabled)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization integration toggled",
		"organization_id", id,
		"integration", integration,
		"enabled", enabled)
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	return s.orgs.GetByID(ctx, id)
}

func (s *organizationService) GetByGithubID(ctx context.Context, githubID int64) (*model.Organization, error) {
	return s.orgs.GetByGithubID(ctx, githubID)
}

func (s *organizationService) List(ctx context.Context, filters []store.Filter) ([]model.Organization, error) {
	return s.orgs.List(ctx, filters)
}
