package dto

import (
	"time"

	"basegraph.app/accounts/internal/model"
)

type UpdateUserRequest struct {
	AccessToken *string `json:"accessToken" binding:"omitempty,min=1"`
}

// UserResponse never carries the access token.
type UserResponse struct {
	ID             int64     `json:"id"`
	GithubID       int64     `json:"githubId"`
	HasAccessToken bool      `json:"hasAccessToken"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		GithubID:       u.GithubID,
		HasAccessToken: u.HasAccessToken(),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}
