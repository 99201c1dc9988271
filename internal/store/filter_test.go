package store

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/accounts/internal/model"
)

var _ = Describe("Filters", func() {
	It("parses equality on a typed column", func() {
		f, err := OrganizationColumns.ParseFilter("organization", "githubId", "2828361")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(Filter{Column: "github_id", Op: OpEq, Value: int64(2828361)}))
	})

	It("parses range modifiers on timestamps", func() {
		f, err := OrganizationColumns.ParseFilter("organization", "trialEnd.lessThan", "2026-01-02T03:04:05Z")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Column).To(Equal("trial_end"))
		Expect(f.Op).To(Equal(OpLessThan))
		Expect(f.Value).To(Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	})

	It("parses isNull", func() {
		f, err := OrganizationColumns.ParseFilter("organization", "stripeCustomerId.isNull", "true")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(Filter{Column: "stripe_customer_id", Op: OpIsNull, Value: true}))
	})

	DescribeTable("rejects bad input",
		func(key, raw string) {
			_, err := OrganizationColumns.ParseFilter("organization", key, raw)
			var ve *model.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
		},
		Entry("unknown field", "password", "x"),
		Entry("unknown modifier", "githubId.between", "1"),
		Entry("bad integer", "githubId", "abc"),
		Entry("bad timestamp", "trialEnd.moreThan", "yesterday"),
		Entry("range on a boolean", "isActive.lessThan", "true"),
		Entry("bad isNull value", "gracePeriodEnd.isNull", "maybe"),
	)

	It("does not expose access tokens as a user filter", func() {
		_, err := UserColumns.ParseFilter("user", "accessToken", "t")
		Expect(err).To(HaveOccurred())
	})

	It("renders a parameterised WHERE clause", func() {
		where, args := whereClause([]Filter{
			{Column: "is_active", Op: OpEq, Value: true},
			{Column: "grace_period_end", Op: OpIsNull, Value: false},
			{Column: "trial_end", Op: OpMoreThan, Value: "t1"},
			{Column: "active_period_end", Op: OpLessThan, Value: "t2"},
		})
		Expect(where).To(Equal(" WHERE is_active = $1 AND grace_period_end IS NOT NULL AND trial_end > $2 AND active_period_end < $3"))
		Expect(args).To(Equal([]any{true, "t1", "t2"}))
	})

	It("renders nothing without filters", func() {
		where, args := whereClause(nil)
		Expect(where).To(BeEmpty())
		Expect(args).To(BeNil())
	})
})
