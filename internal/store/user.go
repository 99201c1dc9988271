package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"basegraph.app/accounts/common/id"
	"basegraph.app/accounts/core/db/sqlc"
	"basegraph.app/accounts/internal/model"
	"github.com/jackc/pgx/v5"
)

type userStore struct {
	db      sqlc.DBTX
	queries *sqlc.Queries
}

func newUserStore(db sqlc.DBTX, queries *sqlc.Queries) UserStore {
	return &userStore{db: db, queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", Field: "id", Value: id}
		}
		return nil, Translate(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByGithubID(ctx context.Context, githubID int64) (*model.User, error) {
	row, err := s.queries.GetUserByGithubID(ctx, githubID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", Field: "githubId", Value: githubID}
		}
		return nil, Translate(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == 0 {
		user.ID = id.New()
	}

	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:          user.ID,
		GithubID:    user.GithubID,
		AccessToken: user.AccessToken,
	})
	if err != nil {
		return Translate(err)
	}
	*user = *toUserModel(row)
	return nil
}

// Update writes the access token, the only mutable user column.
func (s *userStore) Update(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	row, err := s.queries.UpdateUserAccessToken(ctx, sqlc.UpdateUserAccessTokenParams{
		ID:          user.ID,
		AccessToken: user.AccessToken,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NoRowsUpdatedError{Entity: "user", ID: user.ID}
		}
		return Translate(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteUser(ctx, id)
	if err != nil {
		return Translate(err)
	}
	if n == 0 {
		return &NoRowsDeletedError{Entity: "user", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (s *userStore) List(ctx context.Context, filters []Filter) ([]model.User, error) {
	where, args := whereClause(filters)
	query := fmt.Sprintf("SELECT id, github_id, access_token, created_at, updated_at FROM users%s ORDER BY id LIMIT %d", where, maxListRows)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var row sqlc.User
		if err := rows.Scan(&row.ID, &row.GithubID, &row.AccessToken, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, Translate(err)
		}
		users = append(users, *toUserModel(row))
	}
	if err := rows.Err(); err != nil {
		return nil, Translate(err)
	}
	return users, nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:          row.ID,
		GithubID:    row.GithubID,
		AccessToken: row.AccessToken,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
