package dto

import (
	"time"

	"basegraph.app/accounts/internal/billing"
	"basegraph.app/accounts/internal/model"
)

type UpdateOrganizationRequest struct {
	Name                 *string        `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	IsActive             *bool          `json:"isActive,omitempty"`
	TrialEnd             *time.Time     `json:"trialEnd,omitempty"`
	ActivePeriodEnd      *time.Time     `json:"activePeriodEnd,omitempty"`
	HasPaymentMethod     *bool          `json:"hasPaymentMethod,omitempty"`
	StripeCustomerID     *string        `json:"stripeCustomerId,omitempty" binding:"omitempty,min=1"`
	StripeSubscriptionID *string        `json:"stripeSubscriptionId,omitempty" binding:"omitempty,min=1"`
	PrBotEnabled         *bool          `json:"prBotEnabled,omitempty"`
	RunnabotEnabled      *bool          `json:"runnabotEnabled,omitempty"`
	FirstDockCreated     *bool          `json:"firstDockCreated,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}

func (r UpdateOrganizationRequest) Patch() model.OrganizationPatch {
	return model.OrganizationPatch{
		Name:                 r.Name,
		IsActive:             r.IsActive,
		TrialEnd:             r.TrialEnd,
		ActivePeriodEnd:      r.ActivePeriodEnd,
		HasPaymentMethod:     r.HasPaymentMethod,
		StripeCustomerID:     r.StripeCustomerID,
		StripeSubscriptionID: r.StripeSubscriptionID,
		PrBotEnabled:         r.PrBotEnabled,
		RunnabotEnabled:      r.RunnabotEnabled,
		FirstDockCreated:     r.FirstDockCreated,
		Metadata:             r.Metadata,
	}
}

// OrganizationResponse is the stored organization plus its derived billing
// status, computed at response time.
type OrganizationResponse struct {
	model.Organization
	billing.Status
}

func ToOrganizationResponse(org *model.Organization, now time.Time) *OrganizationResponse {
	return &OrganizationResponse{
		Organization: *org,
		Status:       billing.ForOrganization(org, now),
	}
}

func ToOrganizationResponses(orgs []model.Organization, now time.Time) []*OrganizationResponse {
	out := make([]*OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, ToOrganizationResponse(&orgs[i], now))
	}
	return out
}
