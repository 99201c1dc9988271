// Package github verifies GitHub identities and organization membership for
// the account services.
package github

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Kind tells a GitHub organization apart from a GitHub user.
type Kind string

const (
	KindOrganization Kind = "Organization"
	KindUser         Kind = "User"
)

// Entity is a resolved GitHub account.
type Entity struct {
	Kind  Kind
	ID    int64
	Login string
}

// Source performs the raw GitHub calls.
type Source interface {
	Resolve(ctx context.Context, githubID int64) (Entity, error)
	CheckMembership(ctx context.Context, orgLogin, accessToken string) error
}

// Gateway is what the account services need from GitHub. Implementations
// never retry; retries happen through job redelivery.
type Gateway interface {
	Resolve(ctx context.Context, githubID int64) (Entity, error)
	// GetOrganization fails with *EntityTypeError when githubID is a user.
	GetOrganization(ctx context.Context, githubID int64) (Entity, error)
	// GetUser fails with *EntityTypeError when githubID is an organization.
	GetUser(ctx context.Context, githubID int64) (Entity, error)
	CheckMembership(ctx context.Context, orgLogin, accessToken string) error
}

type EntityNotFoundError struct {
	GithubID int64
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("github entity %d not found", e.GithubID)
}

type EntityTypeError struct {
	GithubID int64
	Expected Kind
	Actual   Kind
}

func (e *EntityTypeError) Error() string {
	return fmt.Sprintf("github entity %d is a %s, expected %s", e.GithubID, e.Actual, e.Expected)
}

type EntityNoPermissionError struct {
	Organization string
}

func (e *EntityNoPermissionError) Error() string {
	return fmt.Sprintf("user is not an active member of github organization %q", e.Organization)
}

// CacheOptions bounds the Resolve cache. A zero Size disables caching.
type CacheOptions struct {
	Size int
	TTL  time.Duration
}

type gateway struct {
	source Source
	cache  *lru.LRU[int64, Entity]
}

// NewGateway wraps source with a read-through cache for successful
// resolutions. Membership checks always reach GitHub.
func NewGateway(source Source, opts CacheOptions) Gateway {
	g := &gateway{source: source}
	if opts.Size > 0 {
		g.cache = lru.NewLRU[int64, Entity](opts.Size, nil, opts.TTL)
	}
	return g
}

func (g *gateway) Resolve(ctx context.Context, githubID int64) (Entity, error) {
	if g.cache != nil {
		if entity, ok := g.cache.Get(githubID); ok {
			return entity, nil
		}
	}

	entity, err := g.source.Resolve(ctx, githubID)
	if err != nil {
		return Entity{}, err
	}

	if g.cache != nil {
		g.cache.Add(githubID, entity)
	}
	return entity, nil
}

func (g *gateway) GetOrganization(ctx context.Context, githubID int64) (Entity, error) {
	return g.resolveKind(ctx, githubID, KindOrganization)
}

func (g *gateway) GetUser(ctx context.Context, githubID int64) (Entity, error) {
	return g.resolveKind(ctx, githubID, KindUser)
}

func (g *gateway) CheckMembership(ctx context.Context, orgLogin, accessToken string) error {
	return g.source.CheckMembership(ctx, orgLogin, accessToken)
}

func (g *gateway) resolveKind(ctx context.Context, githubID int64, want Kind) (Entity, error) {
	entity, err := g.Resolve(ctx, githubID)
	if err != nil {
		return Entity{}, err
	}
	if entity.Kind != want {
		return Entity{}, &EntityTypeError{GithubID: githubID, Expected: want, Actual: entity.Kind}
	}
	return entity, nil
}
