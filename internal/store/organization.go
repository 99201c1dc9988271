package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"basegraph.app/accounts/common/id"
	"basegraph.app/accounts/core/db/sqlc"
	"basegraph.app/accounts/internal/billing"
	"basegraph.app/accounts/internal/model"
	"github.com/jackc/pgx/v5"
)

const organizationColumnList = `id, github_id, name, lower_name, is_active, is_personal_account, trial_end, active_period_end, grace_period_end, has_payment_method, stripe_customer_id, stripe_subscription_id, prbot_enabled, runnabot_enabled, first_dock_created, metadata, creator_id, created_at, updated_at`

type organizationStore struct {
	db      sqlc.DBTX
	queries *sqlc.Queries
}

func newOrganizationStore(db sqlc.DBTX, queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{db: db, queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "organization", Field: "id", Value: id}
		}
		return nil, Translate(err)
	}
	return toOrganizationModel(row)
}

func (s *organizationStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "organization", Field: "id", Value: id}
		}
		return nil, Translate(err)
	}
	return toOrganizationModel(row)
}

func (s *organizationStore) GetByGithubID(ctx context.Context, githubID int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationByGithubID(ctx, githubID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "organization", Field: "githubId", Value: githubID}
		}
		return nil, Translate(err)
	}
	return toOrganizationModel(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	if org.ID == 0 {
		org.ID = id.New()
	}
	metadata, err := prepareOrganization(org)
	if err != nil {
		return err
	}

	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:                   org.ID,
		GithubID:             org.GithubID,
		Name:                 org.Name,
		LowerName:            org.LowerName,
		IsActive:             org.IsActive,
		IsPersonalAccount:    org.IsPersonalAccount,
		TrialEnd:             toTimestamptz(org.TrialEnd),
		ActivePeriodEnd:      toTimestamptz(org.ActivePeriodEnd),
		GracePeriodEnd:       toNullableTimestamptz(org.GracePeriodEnd),
		HasPaymentMethod:     org.HasPaymentMethod,
		StripeCustomerID:     org.StripeCustomerID,
		StripeSubscriptionID: org.StripeSubscriptionID,
		PrbotEnabled:         org.PrBotEnabled,
		RunnabotEnabled:      org.RunnabotEnabled,
		FirstDockCreated:     org.FirstDockCreated,
		Metadata:             metadata,
		CreatorID:            org.CreatorID,
	})
	if err != nil {
		return Translate(err)
	}
	created, err := toOrganizationModel(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	metadata, err := prepareOrganization(org)
	if err != nil {
		return err
	}

	row, err := s.queries.UpdateOrganization(ctx, sqlc.UpdateOrganizationParams{
		ID:                   org.ID,
		Name:                 org.Name,
		LowerName:            org.LowerName,
		IsActive:             org.IsActive,
		TrialEnd:             toTimestamptz(org.TrialEnd),
		ActivePeriodEnd:      toTimestamptz(org.ActivePeriodEnd),
		GracePeriodEnd:       toNullableTimestamptz(org.GracePeriodEnd),
		HasPaymentMethod:     org.HasPaymentMethod,
		StripeCustomerID:     org.StripeCustomerID,
		StripeSubscriptionID: org.StripeSubscriptionID,
		PrbotEnabled:         org.PrBotEnabled,
		RunnabotEnabled:      org.RunnabotEnabled,
		FirstDockCreated:     org.FirstDockCreated,
		Metadata:             metadata,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NoRowsUpdatedError{Entity: "organization", ID: org.ID}
		}
		return Translate(err)
	}
	updated, err := toOrganizationModel(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) SetIntegration(ctx context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error) {
	var (
		row sqlc.Organization
		err error
	)
	switch integration {
	case model.IntegrationPrBot:
		row, err = s.queries.SetOrganizationPrBot(ctx, sqlc.SetOrganizationPrBotParams{ID: id, PrbotEnabled: enabled})
	case model.IntegrationRunnabot:
		row, err = s.queries.SetOrganizationRunnabot(ctx, sqlc.SetOrganizationRunnabotParams{ID: id, RunnabotEnabled: enabled})
	default:
		return nil, &model.ValidationError{Entity: "organization", Field: "integration", Reason: fmt.Sprintf("unknown integration %q", integration)}
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "organization", Field: "id", Value: id}
		}
		return nil, Translate(err)
	}
	return toOrganizationModel(row)
}

// Delete removes the organization row only. Memberships must already be gone;
// otherwise the foreign key rejects the statement.
func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteOrganization(ctx, id)
	if err != nil {
		return Translate(err)
	}
	if n == 0 {
		return &NoRowsDeletedError{Entity: "organization", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (s *organizationStore) List(ctx context.Context, filters []Filter) ([]model.Organization, error) {
	where, args := whereClause(filters)
	query := fmt.Sprintf("SELECT %s FROM organizations%s ORDER BY id LIMIT %d", organizationColumnList, where, maxListRows)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		var row sqlc.Organization
		if err := rows.Scan(
			&row.ID,
			&row.GithubID,
			&row.Name,
			&row.LowerName,
			&row.IsActive,
			&row.IsPersonalAccount,
			&row.TrialEnd,
			&row.ActivePeriodEnd,
			&row.GracePeriodEnd,
			&row.HasPaymentMethod,
			&row.StripeCustomerID,
			&row.StripeSubscriptionID,
			&row.PrbotEnabled,
			&row.RunnabotEnabled,
			&row.FirstDockCreated,
			&row.Metadata,
			&row.CreatorID,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, Translate(err)
		}
		org, err := toOrganizationModel(row)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(err)
	}
	return orgs, nil
}

// prepareOrganization recomputes the derived columns, validates, and encodes
// metadata for writing.
func prepareOrganization(org *model.Organization) ([]byte, error) {
	org.LowerName = model.LowerNameOf(org.Name)
	if !org.TrialEnd.IsZero() && !org.ActivePeriodEnd.IsZero() {
		grace := billing.NextGracePeriodEnd(org.TrialEnd, org.ActivePeriodEnd, org.GracePeriodEnd)
		org.GracePeriodEnd = &grace
	}

	if err := org.Validate(); err != nil {
		return nil, err
	}

	if org.Metadata == nil {
		org.Metadata = map[string]any{}
	}
	metadata, err := json.Marshal(org.Metadata)
	if err != nil {
		return nil, &model.ValidationError{Entity: "organization", Field: "metadata", Reason: err.Error()}
	}
	return metadata, nil
}

func toOrganizationModel(row sqlc.Organization) (*model.Organization, error) {
	metadata := map[string]any{}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("decoding organization %d metadata: %w", row.ID, err)
		}
	}

	return &model.Organization{
		ID:                   row.ID,
		GithubID:             row.GithubID,
		Name:                 row.Name,
		LowerName:            row.LowerName,
		IsActive:             row.IsActive,
		IsPersonalAccount:    row.IsPersonalAccount,
		TrialEnd:             row.TrialEnd.Time,
		ActivePeriodEnd:      row.ActivePeriodEnd.Time,
		GracePeriodEnd:       fromNullableTimestamptz(row.GracePeriodEnd),
		HasPaymentMethod:     row.HasPaymentMethod,
		StripeCustomerID:     row.StripeCustomerID,
		StripeSubscriptionID: row.StripeSubscriptionID,
		PrBotEnabled:         row.PrbotEnabled,
		RunnabotEnabled:      row.RunnabotEnabled,
		FirstDockCreated:     row.FirstDockCreated,
		Metadata:             metadata,
		CreatorID:            row.CreatorID,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}, nil
}
