package model

import (
	"strings"
	"time"
)

const (
	// DefaultTrialLength is the trial window granted to a new organization.
	DefaultTrialLength = 30 * 24 * time.Hour
)

// Integration names an organization-level bot integration that can be toggled.
type Integration string

const (
	IntegrationPrBot    Integration = "prbot"
	IntegrationRunnabot Integration = "runnabot"
)

func (i Integration) Valid() bool {
	return i == IntegrationPrBot || i == IntegrationRunnabot
}

type Organization struct {
	ID                   int64          `json:"id"`
	GithubID             int64          `json:"githubId"`
	Name                 string         `json:"name"`
	LowerName            string         `json:"lowerName"`
	IsActive             bool           `json:"isActive"`
	IsPersonalAccount    bool           `json:"isPersonalAccount"`
	TrialEnd             time.Time      `json:"trialEnd"`
	ActivePeriodEnd      time.Time      `json:"activePeriodEnd"`
	GracePeriodEnd       *time.Time     `json:"gracePeriodEnd"`
	HasPaymentMethod     bool           `json:"hasPaymentMethod"`
	StripeCustomerID     *string        `json:"stripeCustomerId"`
	StripeSubscriptionID *string        `json:"stripeSubscriptionId"`
	PrBotEnabled         bool           `json:"prBotEnabled"`
	RunnabotEnabled      bool           `json:"runnabotEnabled"`
	FirstDockCreated     bool           `json:"firstDockCreated"`
	Metadata             map[string]any `json:"metadata"`
	CreatorID            int64          `json:"creator"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// DefaultMetadata is attached to every organization at creation time.
func DefaultMetadata() map[string]any {
	return map[string]any{
		"hasAha":            true,
		"hasConfirmedSetup": false,
	}
}

// LowerNameOf is the derived lower_name column value for name.
func LowerNameOf(name string) string {
	return strings.ToLower(name)
}

// Validate checks the organization before it is written.
func (o *Organization) Validate() error {
	if o.GithubID <= 0 {
		return &ValidationError{Entity: "organization", Field: "githubId", Reason: "must be a positive GitHub id"}
	}
	if strings.TrimSpace(o.Name) == "" {
		return &ValidationError{Entity: "organization", Field: "name", Reason: "must not be empty"}
	}
	if o.CreatorID == 0 {
		return &ValidationError{Entity: "organization", Field: "creator", Reason: "must reference a user"}
	}
	if o.TrialEnd.IsZero() || o.ActivePeriodEnd.IsZero() {
		return &ValidationError{Entity: "organization", Field: "trialEnd", Reason: "billing period bounds are required"}
	}
	if o.StripeCustomerID != nil && *o.StripeCustomerID == "" {
		return &ValidationError{Entity: "organization", Field: "stripeCustomerId", Reason: "must be null or non-empty"}
	}
	if o.StripeSubscriptionID != nil && *o.StripeSubscriptionID == "" {
		return &ValidationError{Entity: "organization", Field: "stripeSubscriptionId", Reason: "must be null or non-empty"}
	}
	return nil
}

// OrganizationPatch lists the mutable organization fields. Nil fields are left untouched.
type OrganizationPatch struct {
	Name                 *string
	IsActive             *bool
	TrialEnd             *time.Time
	ActivePeriodEnd      *time.Time
	HasPaymentMethod     *bool
	StripeCustomerID     *string
	StripeSubscriptionID *string
	PrBotEnabled         *bool
	RunnabotEnabled      *bool
	FirstDockCreated     *bool
	Metadata             map[string]any
}

// Empty reports whether the patch changes nothing.
func (p OrganizationPatch) Empty() bool {
	return p.Name == nil && p.IsActive == nil && p.TrialEnd == nil && p.ActivePeriodEnd == nil &&
		p.HasPaymentMethod == nil && p.StripeCustomerID == nil && p.StripeSubscriptionID == nil &&
		p.PrBotEnabled == nil && p.RunnabotEnabled == nil && p.FirstDockCreated == nil && p.Metadata == nil
}

// Apply returns a copy of org with the patch applied. Metadata keys are merged.
func (p OrganizationPatch) Apply(org Organization) Organization {
	if p.Name != nil {
		org.Name = *p.Name
	}
	if p.IsActive != nil {
		org.IsActive = *p.IsActive
	}
	if p.TrialEnd != nil {
		org.TrialEnd = *p.TrialEnd
	}
	if p.ActivePeriodEnd != nil {
		org.ActivePeriodEnd = *p.ActivePeriodEnd
	}
	if p.HasPaymentMethod != nil {
		org.HasPaymentMethod = *p.HasPaymentMethod
	}
	if p.StripeCustomerID != nil {
		org.StripeCustomerID = p.StripeCustomerID
	}
	if p.StripeSubscriptionID != nil {
		org.StripeSubscriptionID = p.StripeSubscriptionID
	}
	if p.PrBotEnabled != nil {
		org.PrBotEnabled = *p.PrBotEnabled
	}
	if p.RunnabotEnabled != nil {
		org.RunnabotEnabled = *p.RunnabotEnabled
	}
	if p.FirstDockCreated != nil {
		org.FirstDockCreated = *p.FirstDockCreated
	}
	if p.Metadata != nil {
		merged := make(map[string]any, len(org.Metadata)+len(p.Metadata))
		for k, v := range org.Metadata {
			merged[k] = v
		}
		for k, v := range p.Metadata {
			merged[k] = v
		}
		org.Metadata = merged
	}
	return org
}
