package model

import "time"

type User struct {
	ID          int64     `json:"id"`
	GithubID    int64     `json:"githubId"`
	AccessToken *string   `json:"-"` // never expose tokens in API
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) Validate() error {
	if u.GithubID <= 0 {
		return &ValidationError{Entity: "user", Field: "githubId", Reason: "must be a positive GitHub id"}
	}
	if u.AccessToken != nil && *u.AccessToken == "" {
		return &ValidationError{Entity: "user", Field: "accessToken", Reason: "must be null or non-empty"}
	}
	return nil
}

// HasAccessToken reports whether the user can act against the GitHub API.
func (u *User) HasAccessToken() bool {
	return u.AccessToken != nil && *u.AccessToken != ""
}

// UserPatch lists the mutable user fields.
type UserPatch struct {
	AccessToken *string
}
