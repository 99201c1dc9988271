// Package billing derives an organization's access status from its stored
// billing-period timestamps. Everything here is pure: callers pass the clock.
package billing

import (
	"time"

	"basegraph.app/accounts/internal/model"
)

// GracePeriod is how long access survives after both the trial and the
// active period have lapsed.
const GracePeriod = 72 * time.Hour

// Input is the subset of organization state the status depends on.
type Input struct {
	TrialEnd        time.Time
	ActivePeriodEnd time.Time
	GracePeriodEnd  *time.Time
	IsActive        bool
}

// Status is the derived view of an organization's billing state.
type Status struct {
	IsInTrial        bool `json:"isInTrial"`
	IsInActivePeriod bool `json:"isInActivePeriod"`
	IsInGracePeriod  bool `json:"isInGracePeriod"`
	Allowed          bool `json:"allowed"`
}

// InputOf extracts the billing input from an organization.
func InputOf(org *model.Organization) Input {
	return Input{
		TrialEnd:        org.TrialEnd,
		ActivePeriodEnd: org.ActivePeriodEnd,
		GracePeriodEnd:  org.GracePeriodEnd,
		IsActive:        org.IsActive,
	}
}

// Derive computes the status at now. It is the only place that decides
// whether an organization may use the platform.
func Derive(in Input, now time.Time) Status {
	s := Status{
		IsInTrial:        now.Before(in.TrialEnd),
		IsInActivePeriod: now.Before(in.ActivePeriodEnd),
	}
	if !s.IsInTrial && !s.IsInActivePeriod && in.GracePeriodEnd != nil {
		s.IsInGracePeriod = now.Before(*in.GracePeriodEnd)
	}
	s.Allowed = in.IsActive && (s.IsInTrial || s.IsInActivePeriod || s.IsInGracePeriod)
	return s
}

// ForOrganization is Derive applied to org.
func ForOrganization(org *model.Organization, now time.Time) Status {
	return Derive(InputOf(org), now)
}

// NextGracePeriodEnd returns max(trialEnd, activePeriodEnd) + GracePeriod, or
// current when current is already further out. The grace period never moves
// backward.
func NextGracePeriodEnd(trialEnd, activePeriodEnd time.Time, current *time.Time) time.Time {
	periodEnd := trialEnd
	if activePeriodEnd.After(periodEnd) {
		periodEnd = activePeriodEnd
	}
	next := periodEnd.Add(GracePeriod)
	if current != nil && current.After(next) {
		return *current
	}
	return next
}
