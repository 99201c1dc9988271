package service

import (
	"context"
	"fmt"
	"log/slog"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/store"
)

type UserService interface {
	Create(ctx context.Context, githubID int64, accessToken *string) (*model.User, error)
	// Authorize creates the user on first sign-in and refreshes the access
	// token afterwards. created reports whether a row was inserted.
	Authorize(ctx context.Context, githubID int64, accessToken *string) (user *model.User, created bool, err error)
	Delete(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByGithubID(ctx context.Context, githubID int64) (*model.User, error)
	List(ctx context.Context, filters []store.Filter) ([]model.User, error)
}

type userService struct {
	users    store.UserStore
	txRunner TxRunner
}

func NewUserService(users store.UserStore, txRunner TxRunner) UserService {
	return &userService{users: users, txRunner: txRunner}
}

func (s *userService) Create(ctx context.Context, githubID int64, accessToken *string) (*model.User, error) {
	user := &model.User{GithubID: githubID, AccessToken: accessToken}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "github_id", githubID)
	return user, nil
}

func (s *userService) Authorize(ctx context.Context, githubID int64, accessToken *string) (*model.User, bool, error) {
	user, err := s.users.GetByGithubID(ctx, githubID)
	switch {
	case store.IsNotFound(err):
		created, createErr := s.Create(ctx, githubID, accessToken)
		if createErr == nil {
			return created, true, nil
		}
		if !store.IsUnique(createErr) {
			return nil, false, createErr
		}
		// Lost a race with a concurrent authorization; refresh instead.
		user, err = s.users.GetByGithubID(ctx, githubID)
		if err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	}

	if accessToken == nil || (user.AccessToken != nil && *user.AccessToken == *accessToken) {
		return user, false, nil
	}

	user.AccessToken = accessToken
	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, fmt.Errorf("refreshing access token: %w", err)
	}

	slog.InfoContext(logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID}), "user access token refreshed")
	return user, false, nil
}

// Delete removes the user's memberships and then the user in one transaction.
func (s *userService) Delete(ctx context.Context, user *model.User) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})

	var removed int
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		orgIDs, err := stores.Memberships().ListOrganizationIDs(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing memberships: %w", err)
		}
		for _, orgID := range orgIDs {
			if err := stores.Memberships().Remove(ctx, orgID, user.ID); err != nil {
				return fmt.Errorf("removing membership in %d: %w", orgID, err)
			}
		}
		removed = len(orgIDs)

		if err := stores.Users().Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", "memberships_removed", removed)
	return nil
}

func (s *userService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.AccessToken == nil {
		return user, nil
	}

	user.AccessToken = patch.AccessToken
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByGithubID(ctx context.Context, githubID int64) (*model.User, error) {
	return s.users.GetByGithubID(ctx, githubID)
}

func (s *userService) List(ctx context.Context, filters []store.Filter) ([]model.User, error) {
	return s.users.List(ctx, filters)
}
