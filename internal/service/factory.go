package service

import (
	"time"

	"basegraph.app/accounts/internal/github"
	"basegraph.app/accounts/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	gateway  github.Gateway
	now      func() time.Time
}

func NewServices(stores *store.Stores, txRunner TxRunner, gateway github.Gateway) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		gateway:  gateway,
		now:      time.Now,
	}
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.stores.Memberships(), s.gateway, s.txRunner, s.now)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.txRunner)
}
