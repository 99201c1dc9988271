package store

import (
	"context"
	"fmt"

	"basegraph.app/accounts/core/db/sqlc"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

// Add inserts the membership row. A repeated pair fails with *UniqueError.
func (s *membershipStore) Add(ctx context.Context, organizationID, userID int64) error {
	err := s.queries.AddMembership(ctx, sqlc.AddMembershipParams{
		OrganizationID: organizationID,
		UserID:         userID,
	})
	return Translate(err)
}

func (s *membershipStore) Remove(ctx context.Context, organizationID, userID int64) error {
	n, err := s.queries.RemoveMembership(ctx, sqlc.RemoveMembershipParams{
		OrganizationID: organizationID,
		UserID:         userID,
	})
	if err != nil {
		return Translate(err)
	}
	if n == 0 {
		return &NoRowsDeletedError{Entity: "membership", Key: fmt.Sprintf("(%d, %d)", organizationID, userID)}
	}
	return nil
}

func (s *membershipStore) ListUserIDs(ctx context.Context, organizationID int64) ([]int64, error) {
	ids, err := s.queries.ListMembershipUserIDs(ctx, organizationID)
	if err != nil {
		return nil, Translate(err)
	}
	return ids, nil
}

func (s *membershipStore) ListOrganizationIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.queries.ListMembershipOrganizationIDs(ctx, userID)
	if err != nil {
		return nil, Translate(err)
	}
	return ids, nil
}
