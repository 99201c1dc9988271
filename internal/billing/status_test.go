package billing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/accounts/internal/billing"
	"basegraph.app/accounts/internal/model"
)

var _ = Describe("Derive", func() {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	grace := func(t time.Time) *time.Time { return &t }

	DescribeTable("status flags",
		func(in billing.Input, want billing.Status) {
			Expect(billing.Derive(in, now)).To(Equal(want))
		},
		Entry("in trial",
			billing.Input{TrialEnd: now.Add(day), ActivePeriodEnd: now.Add(-day), GracePeriodEnd: grace(now.Add(4 * day)), IsActive: true},
			billing.Status{IsInTrial: true, Allowed: true}),
		Entry("in active period",
			billing.Input{TrialEnd: now.Add(-10 * day), ActivePeriodEnd: now.Add(day), GracePeriodEnd: grace(now.Add(4 * day)), IsActive: true},
			billing.Status{IsInActivePeriod: true, Allowed: true}),
		Entry("in trial and active period",
			billing.Input{TrialEnd: now.Add(day), ActivePeriodEnd: now.Add(2 * day), GracePeriodEnd: grace(now.Add(5 * day)), IsActive: true},
			billing.Status{IsInTrial: true, IsInActivePeriod: true, Allowed: true}),
		Entry("in grace period",
			billing.Input{TrialEnd: now.Add(-2 * day), ActivePeriodEnd: now.Add(-day), GracePeriodEnd: grace(now.Add(2 * day)), IsActive: true},
			billing.Status{IsInGracePeriod: true, Allowed: true}),
		Entry("grace period over",
			billing.Input{TrialEnd: now.Add(-10 * day), ActivePeriodEnd: now.Add(-5 * day), GracePeriodEnd: grace(now.Add(-2 * day)), IsActive: true},
			billing.Status{}),
		Entry("no grace period recorded",
			billing.Input{TrialEnd: now.Add(-10 * day), ActivePeriodEnd: now.Add(-5 * day), IsActive: true},
			billing.Status{}),
		Entry("inactive organization in trial",
			billing.Input{TrialEnd: now.Add(day), ActivePeriodEnd: now, GracePeriodEnd: grace(now.Add(4 * day)), IsActive: false},
			billing.Status{IsInTrial: true}),
		Entry("trial ends exactly now",
			billing.Input{TrialEnd: now, ActivePeriodEnd: now.Add(-day), GracePeriodEnd: grace(now.Add(3 * day)), IsActive: true},
			billing.Status{IsInGracePeriod: true, Allowed: true}),
	)

	It("never reports grace period while trial or active period is running", func() {
		offsets := []time.Duration{-100 * day, -3 * day, -time.Hour, 0, time.Hour, 3 * day, 100 * day}
		for _, trial := range offsets {
			for _, active := range offsets {
				for _, g := range offsets {
					in := billing.Input{
						TrialEnd:        now.Add(trial),
						ActivePeriodEnd: now.Add(active),
						GracePeriodEnd:  grace(now.Add(g)),
						IsActive:        true,
					}
					s := billing.Derive(in, now)
					if s.IsInGracePeriod {
						Expect(s.IsInTrial).To(BeFalse())
						Expect(s.IsInActivePeriod).To(BeFalse())
						Expect(now.Before(*in.GracePeriodEnd)).To(BeTrue())
					}
				}
			}
		}
	})

	It("is repeatable", func() {
		in := billing.Input{TrialEnd: now.Add(day), ActivePeriodEnd: now, GracePeriodEnd: grace(now.Add(4 * day)), IsActive: true}
		first := billing.Derive(in, now)
		Expect(billing.Derive(in, now)).To(Equal(first))
		Expect(in.GracePeriodEnd.Equal(now.Add(4 * day))).To(BeTrue())
	})

	It("derives from an organization", func() {
		org := &model.Organization{TrialEnd: now.Add(day), ActivePeriodEnd: now, IsActive: true}
		Expect(billing.ForOrganization(org, now).Allowed).To(BeTrue())
	})
})

var _ = Describe("NextGracePeriodEnd", func() {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	It("extends the later of trial end and active period end", func() {
		Expect(billing.NextGracePeriodEnd(now.Add(30*day), now, nil)).To(Equal(now.Add(30*day + billing.GracePeriod)))
		Expect(billing.NextGracePeriodEnd(now, now.Add(60*day), nil)).To(Equal(now.Add(60*day + billing.GracePeriod)))
	})

	It("moves forward when a period moves forward", func() {
		current := now.Add(33 * day)
		Expect(billing.NextGracePeriodEnd(now.Add(30*day), now.Add(45*day), &current)).To(Equal(now.Add(45*day + billing.GracePeriod)))
	})

	It("never moves backward", func() {
		current := now.Add(90 * day)
		Expect(billing.NextGracePeriodEnd(now.Add(day), now, &current)).To(Equal(current))
	})

	It("replaces a creation-time placeholder", func() {
		current := now
		Expect(billing.NextGracePeriodEnd(now.Add(30*day), now, &current)).To(Equal(now.Add(33 * day)))
	})
})
