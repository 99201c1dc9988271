package store

import (
	"basegraph.app/accounts/core/db/sqlc"
)

// Stores hands out stores bound to one executor, the pool or a transaction.
type Stores struct {
	db      sqlc.DBTX
	queries *sqlc.Queries
}

func NewStores(db sqlc.DBTX) *Stores {
	return &Stores{db: db, queries: sqlc.New(db)}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.db, s.queries)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.db, s.queries)
}

func (s *Stores) Memberships() MembershipStore {
	return newMembershipStore(s.queries)
}
