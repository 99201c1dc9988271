package schema

import (
	"time"

	"github.com/invopop/jsonschema"
)

// Inbound jobs.

type Creator struct {
	GithubID       int64      `json:"githubId" jsonschema:"minimum=1"`
	GithubUsername string     `json:"githubUsername" jsonschema:"minLength=1"`
	Email          string     `json:"email,omitempty" jsonschema:"format=email"`
	Created        *time.Time `json:"created,omitempty"`
}

// OrganizationCreateJob is the body of organization.create and
// organization.authorized.
type OrganizationCreateJob struct {
	GithubID int64   `json:"githubId" jsonschema:"minimum=1"`
	Creator  Creator `json:"creator"`
}

// MembershipJob is the body of organization.user.add and
// organization.user.remove.
type MembershipJob struct {
	OrganizationGithubID int64  `json:"organizationGithubId" jsonschema:"minimum=1"`
	UserGithubID         int64  `json:"userGithubId" jsonschema:"minimum=1"`
	Tid                  string `json:"tid,omitempty" jsonschema:"format=uuid"`
}

// UserCreateJob is the body of user.create and user.authorized.
type UserCreateJob struct {
	GithubID    int64   `json:"githubId" jsonschema:"minimum=1"`
	AccessToken *string `json:"accessToken,omitempty" jsonschema:"minLength=1"`
}

// DeleteJob is the body of organization.delete and user.delete.
type DeleteJob struct {
	GithubID int64  `json:"githubId" jsonschema:"minimum=1"`
	Tid      string `json:"tid,omitempty" jsonschema:"format=uuid"`
}

type IDRef struct {
	ID int64 `json:"id" jsonschema:"minimum=1"`
}

// IntegrationJob toggles an integration flag. Producers send either
// {"organizationId": n} or {"organization": {"id": n}}.
type IntegrationJob struct {
	OrganizationID *int64 `json:"organizationId,omitempty" jsonschema:"minimum=1"`
	Organization   *IDRef `json:"organization,omitempty"`
}

func (IntegrationJob) JSONSchemaExtend(s *jsonschema.Schema) {
	s.AnyOf = []*jsonschema.Schema{
		{Required: []string{"organizationId"}},
		{Required: []string{"organization"}},
	}
}

// TargetID returns the organization id in whichever shape it was sent.
func (j IntegrationJob) TargetID() int64 {
	if j.OrganizationID != nil {
		return *j.OrganizationID
	}
	if j.Organization != nil {
		return j.Organization.ID
	}
	return 0
}

// Outbound jobs and events.

type OrganizationRef struct {
	ID       int64 `json:"id" jsonschema:"minimum=1"`
	GithubID int64 `json:"githubId" jsonschema:"minimum=1"`
}

type NamedOrganizationRef struct {
	ID       int64  `json:"id" jsonschema:"minimum=1"`
	GithubID int64  `json:"githubId" jsonschema:"minimum=1"`
	Name     string `json:"name" jsonschema:"minLength=1"`
}

type UserRef struct {
	ID       int64 `json:"id" jsonschema:"minimum=1"`
	GithubID int64 `json:"githubId" jsonschema:"minimum=1"`
}

type OrganizationCreatedEvent struct {
	Organization NamedOrganizationRef `json:"organization"`
	Creator      UserRef              `json:"creator"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// MembershipEvent is the body of organization.user.added and
// organization.user.removed.
type MembershipEvent struct {
	Organization OrganizationRef `json:"organization"`
	User         UserRef         `json:"user"`
}

type OrganizationEvent struct {
	Organization OrganizationRef `json:"organization"`
}

type UserEvent struct {
	User UserRef `json:"user"`
}

// ProvisionJob asks the provisioning system to set up a new organization.
type ProvisionJob struct {
	Organization OrganizationRef `json:"organization"`
}
