package handler_test

import (
	"context"

	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/store"
)

type mockOrganizationService struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Organization, error)
	updateFn  func(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error)
	listFn    func(ctx context.Context, filters []store.Filter) ([]model.Organization, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, githubID int64, creator *model.User) (*model.Organization, error) {
	return nil, nil
}

func (m *mockOrganizationService) AddUser(ctx context.Context, org *model.Organization, user *model.User) error {
	return nil
}

func (m *mockOrganizationService) RemoveUser(ctx context.Context, org *model.Organization, user *model.User) error {
	return nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, org *model.Organization) error {
	return nil
}

func (m *mockOrganizationService) Update(ctx context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockOrganizationService) SetIntegration(ctx context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error) {
	return nil, nil
}

func (m *mockOrganizationService) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, &store.NotFoundError{Entity: "organization", Field: "id", Value: id}
}

func (m *mockOrganizationService) GetByGithubID(ctx context.Context, githubID int64) (*model.Organization, error) {
	return nil, &store.NotFoundError{Entity: "organization", Field: "githubId", Value: githubID}
}

func (m *mockOrganizationService) List(ctx context.Context, filters []store.Filter) ([]model.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}

type mockUserService struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
	updateFn  func(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	listFn    func(ctx context.Context, filters []store.Filter) ([]model.User, error)
}

func (m *mockUserService) Create(ctx context.Context, githubID int64, accessToken *string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserService) Authorize(ctx context.Context, githubID int64, accessToken *string) (*model.User, bool, error) {
	return nil, false, nil
}

func (m *mockUserService) Delete(ctx context.Context, user *model.User) error {
	return nil
}

func (m *mockUserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, &store.NotFoundError{Entity: "user", Field: "id", Value: id}
}

func (m *mockUserService) GetByGithubID(ctx context.Context, githubID int64) (*model.User, error) {
	return nil, &store.NotFoundError{Entity: "user", Field: "githubId", Value: githubID}
}

func (m *mockUserService) List(ctx context.Context, filters []store.Filter) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}
