package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const membershipStateActive = "active"

// Client talks to the GitHub REST API. The app token is used for identity
// lookups; membership checks run as the acting user.
type Client struct {
	api     *gh.Client
	baseURL *url.URL
}

// NewClient builds a Client. baseURL is optional and points at a GitHub
// Enterprise API root.
func NewClient(ctx context.Context, token, baseURL string) (*Client, error) {
	c := &Client{}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing github base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.baseURL = u
	}
	c.api = c.clientFor(ctx, token)
	return c, nil
}

func (c *Client) clientFor(ctx context.Context, token string) *gh.Client {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client := gh.NewClient(httpClient)
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client
}

// Resolve looks the account up by numeric id. GitHub reports organizations
// and users on the same endpoint and distinguishes them by type.
func (c *Client) Resolve(ctx context.Context, githubID int64) (Entity, error) {
	account, _, err := c.api.Users.GetByID(ctx, githubID)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return Entity{}, &EntityNotFoundError{GithubID: githubID}
		}
		return Entity{}, fmt.Errorf("resolving github id %d: %w", githubID, err)
	}

	kind := KindUser
	if account.GetType() == string(KindOrganization) {
		kind = KindOrganization
	}
	return Entity{Kind: kind, ID: account.GetID(), Login: account.GetLogin()}, nil
}

// CheckMembership succeeds when the token's owner is an active member of
// orgLogin.
func (c *Client) CheckMembership(ctx context.Context, orgLogin, accessToken string) error {
	if accessToken == "" {
		return &EntityNoPermissionError{Organization: orgLogin}
	}

	// An empty user asks for the authenticated user's own membership.
	membership, _, err := c.clientFor(ctx, accessToken).Organizations.GetOrgMembership(ctx, "", orgLogin)
	if err != nil {
		if isStatus(err, http.StatusNotFound) || isStatus(err, http.StatusForbidden) || isStatus(err, http.StatusUnauthorized) {
			return &EntityNoPermissionError{Organization: orgLogin}
		}
		return fmt.Errorf("checking membership in %s: %w", orgLogin, err)
	}
	if membership.GetState() != membershipStateActive {
		return &EntityNoPermissionError{Organization: orgLogin}
	}
	return nil
}

func isStatus(err error, status int) bool {
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode == status
	}
	return false
}
