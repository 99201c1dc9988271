package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/accounts/internal/github"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/service"
	"basegraph.app/accounts/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		ctx         context.Context
		orgs        *mockOrganizationStore
		memberships *memMemberships
		gateway     *mockGateway
		txRunner    *rollbackTxRunner
		svc         service.OrganizationService
		now         time.Time
		creator     *model.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
		orgs = &mockOrganizationStore{}
		memberships = newMemMemberships()
		gateway = &mockGateway{entities: map[int64]github.Entity{
			2828361: {Kind: github.KindOrganization, ID: 2828361, Login: "Runnable"},
			1981198: {Kind: github.KindUser, ID: 1981198, Login: "bkendall"},
			6379413: {Kind: github.KindUser, ID: 6379413, Login: "someone-else"},
		}}
		txRunner = &rollbackTxRunner{memberships: memberships}
		txRunner.provider = &mockStoreProvider{orgs: orgs, users: &mockUserStore{}, memberships: memberships}
		svc = service.NewOrganizationService(orgs, memberships, gateway, txRunner, func() time.Time { return now })
		creator = &model.User{ID: 501, GithubID: 1981198, AccessToken: strPtr("gho_creator")}
	})

	Describe("Create", func() {
		It("creates a GitHub organization under its login", func() {
			var written *model.Organization
			orgs.createFn = func(_ context.Context, org *model.Organization) error {
				written = org
				org.ID = 900
				return nil
			}

			org, err := svc.Create(ctx, 2828361, creator)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs.createCalls).To(Equal(1))
			Expect(org.ID).To(Equal(int64(900)))
			Expect(written.Name).To(Equal("Runnable"))
			Expect(written.IsPersonalAccount).To(BeFalse())
			Expect(written.GithubID).To(Equal(int64(2828361)))
			Expect(written.CreatorID).To(Equal(int64(501)))
			Expect(written.IsActive).To(BeTrue())
			Expect(written.TrialEnd).To(Equal(now.Add(30 * 24 * time.Hour)))
			Expect(written.ActivePeriodEnd).To(Equal(now))
			Expect(*written.GracePeriodEnd).To(Equal(now))
			Expect(written.Metadata).To(Equal(map[string]any{"hasAha": true, "hasConfirmedSetup": false}))
		})

		It("creates a personal account for a user-type id", func() {
			var written *model.Organization
			orgs.createFn = func(_ context.Context, org *model.Organization) error {
				written = org
				return nil
			}

			_, err := svc.Create(ctx, 1981198, creator)
			Expect(err).NotTo(HaveOccurred())
			Expect(written.IsPersonalAccount).To(BeTrue())
			Expect(written.Name).To(Equal("bkendall"))
			Expect(written.GithubID).To(Equal(int64(1981198)))
		})

		It("refuses a personal account for somebody else", func() {
			_, err := svc.Create(ctx, 6379413, creator)
			var ve *model.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(orgs.createCalls).To(BeZero())
		})

		It("propagates unknown GitHub ids without writing", func() {
			_, err := svc.Create(ctx, 404, creator)
			var nf *github.EntityNotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(orgs.createCalls).To(BeZero())
		})

		It("surfaces a duplicate as UniqueError", func() {
			orgs.createFn = func(context.Context, *model.Organization) error {
				return &store.UniqueError{Constraint: "organizations_github_id_key"}
			}
			_, err := svc.Create(ctx, 2828361, creator)
			Expect(store.IsUnique(err)).To(BeTrue())
		})
	})

	Describe("AddUser", func() {
		var org *model.Organization

		BeforeEach(func() {
			org = &model.Organization{ID: 900, GithubID: 2828361, Name: "Runnable"}
		})

		It("checks GitHub membership with the user's own token", func() {
			gateway.checkMembershipFn = func(_ context.Context, login, token string) error {
				Expect(login).To(Equal("Runnable"))
				Expect(token).To(Equal("gho_creator"))
				return nil
			}

			Expect(svc.AddUser(ctx, org, creator)).To(Succeed())
			Expect(memberships.rows).To(HaveKey(pair{900, 501}))
		})

		It("checks membership under the GitHub login after a rename", func() {
			org.Name = "Renamed"
			var checked string
			gateway.checkMembershipFn = func(_ context.Context, login, _ string) error {
				checked = login
				return nil
			}

			Expect(svc.AddUser(ctx, org, creator)).To(Succeed())
			Expect(checked).To(Equal("Runnable"))
		})

		It("creates no row when the GitHub organization is gone", func() {
			org.GithubID = 404404

			err := svc.AddUser(ctx, org, creator)
			var nf *github.EntityNotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(gateway.membershipChecks).To(BeZero())
			Expect(memberships.rows).To(BeEmpty())
		})

		It("creates no row when GitHub denies membership", func() {
			gateway.checkMembershipFn = func(context.Context, string, string) error {
				return &github.EntityNoPermissionError{Organization: "Runnable"}
			}

			err := svc.AddUser(ctx, org, creator)
			var np *github.EntityNoPermissionError
			Expect(errors.As(err, &np)).To(BeTrue())
			Expect(memberships.rows).To(BeEmpty())
		})

		It("keeps exactly one row for a duplicate add", func() {
			Expect(svc.AddUser(ctx, org, creator)).To(Succeed())
			err := svc.AddUser(ctx, org, creator)
			Expect(store.IsUnique(err)).To(BeTrue())
			Expect(memberships.rows).To(HaveLen(1))
		})

		Context("on a personal account", func() {
			BeforeEach(func() {
				org = &model.Organization{ID: 901, GithubID: 1981198, Name: "bkendall", IsPersonalAccount: true}
			})

			It("admits the owning user without asking GitHub", func() {
				Expect(svc.AddUser(ctx, org, creator)).To(Succeed())
				Expect(gateway.membershipChecks).To(BeZero())
				Expect(memberships.rows).To(HaveLen(1))
			})

			It("rejects anyone else and creates no row", func() {
				other := &model.User{ID: 502, GithubID: 6379413}
				err := svc.AddUser(ctx, org, other)
				var ve *model.ValidationError
				Expect(errors.As(err, &ve)).To(BeTrue())
				Expect(memberships.rows).To(BeEmpty())
				Expect(memberships.addCalls).To(BeZero())
			})
		})
	})

	Describe("RemoveUser", func() {
		It("propagates a missing membership", func() {
			org := &model.Organization{ID: 900}
			err := svc.RemoveUser(ctx, org, creator)
			var nd *store.NoRowsDeletedError
			Expect(errors.As(err, &nd)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		var org *model.Organization

		BeforeEach(func() {
			org = &model.Organization{ID: 900, GithubID: 2828361, Name: "Runnable"}
			for _, userID := range []int64{501, 502, 503} {
				memberships.rows[pair{900, userID}] = true
			}
			memberships.rows[pair{777, 501}] = true
		})

		It("removes every membership and the organization", func() {
			var deleted int64
			orgs.deleteFn = func(_ context.Context, id int64) error {
				deleted = id
				return nil
			}

			Expect(svc.Delete(ctx, org)).To(Succeed())
			Expect(deleted).To(Equal(int64(900)))
			Expect(memberships.rows).To(Equal(map[pair]bool{{777, 501}: true}))
			Expect(txRunner.commits).To(Equal(1))
		})

		It("leaves every row intact when one removal fails", func() {
			memberships.failOn = &pair{900, 502}
			deleteCalled := false
			orgs.deleteFn = func(context.Context, int64) error {
				deleteCalled = true
				return nil
			}

			Expect(svc.Delete(ctx, org)).NotTo(Succeed())
			Expect(deleteCalled).To(BeFalse())
			Expect(memberships.rows).To(HaveLen(4))
			Expect(txRunner.rollbacks).To(Equal(1))
		})

		It("rolls back memberships when the organization delete fails", func() {
			orgs.deleteFn = func(context.Context, int64) error {
				return &store.NoRowsDeletedError{Entity: "organization", Key: "900"}
			}

			err := svc.Delete(ctx, org)
			var nd *store.NoRowsDeletedError
			Expect(errors.As(err, &nd)).To(BeTrue())
			Expect(memberships.rows).To(HaveLen(4))
		})
	})

	Describe("SetIntegration", func() {
		It("writes only the selected flag", func() {
			var got model.Integration
			orgs.integrationFn = func(_ context.Context, id int64, integration model.Integration, enabled bool) (*model.Organization, error) {
				got = integration
				return &model.Organization{ID: id, PrBotEnabled: enabled, RunnabotEnabled: true}, nil
			}

			org, err := svc.SetIntegration(ctx, 900, model.IntegrationPrBot, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(model.IntegrationPrBot))
			Expect(org.PrBotEnabled).To(BeTrue())
			Expect(org.RunnabotEnabled).To(BeTrue())
			Expect(orgs.updateCalls).To(BeZero())
		})

		It("keeps both flags when two toggles interleave", func() {
			mem := &memOrganizations{row: model.Organization{ID: 900, Name: "Runnable"}}
			svc = service.NewOrganizationService(mem, memberships, gateway, txRunner, func() time.Time { return now })

			// The runnabot toggle lands after the prbot request has started
			// but before its write reaches the row.
			mem.onWrite = func() {
				_, err := svc.SetIntegration(ctx, 900, model.IntegrationRunnabot, true)
				Expect(err).NotTo(HaveOccurred())
			}

			org, err := svc.SetIntegration(ctx, 900, model.IntegrationPrBot, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.PrBotEnabled).To(BeTrue())
			Expect(org.RunnabotEnabled).To(BeTrue())
			Expect(mem.row.PrBotEnabled).To(BeTrue())
			Expect(mem.row.RunnabotEnabled).To(BeTrue())
		})

		It("rejects unknown integrations", func() {
			called := false
			orgs.integrationFn = func(context.Context, int64, model.Integration, bool) (*model.Organization, error) {
				called = true
				return nil, nil
			}

			_, err := svc.SetIntegration(ctx, 900, model.Integration("slackbot"), true)
			var ve *model.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(called).To(BeFalse())
		})

		It("reports a missing organization as NotFound", func() {
			_, err := svc.SetIntegration(ctx, 900, model.IntegrationRunnabot, false)
			Expect(store.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("merges metadata instead of replacing it", func() {
			orgs.forUpdateFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Metadata: model.DefaultMetadata()}, nil
			}

			org, err := svc.Update(ctx, 900, model.OrganizationPatch{Metadata: map[string]any{"hasConfirmedSetup": true}})
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Metadata).To(Equal(map[string]any{"hasAha": true, "hasConfirmedSetup": true}))
			Expect(orgs.updateCalls).To(Equal(1))
			Expect(txRunner.commits).To(Equal(1))
		})

		It("applies the patch to the locked row, not an earlier read", func() {
			orgs.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Name: "Runnable"}, nil
			}
			orgs.forUpdateFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Name: "Runnable", PrBotEnabled: true}, nil
			}
			var written *model.Organization
			orgs.updateFn = func(_ context.Context, org *model.Organization) error {
				written = org
				return nil
			}

			active := false
			_, err := svc.Update(ctx, 900, model.OrganizationPatch{IsActive: &active})
			Expect(err).NotTo(HaveOccurred())
			Expect(written.PrBotEnabled).To(BeTrue())
			Expect(written.IsActive).To(BeFalse())
		})

		It("rolls back when the locked read fails", func() {
			active := false
			_, err := svc.Update(ctx, 900, model.OrganizationPatch{IsActive: &active})
			Expect(store.IsNotFound(err)).To(BeTrue())
			Expect(orgs.updateCalls).To(BeZero())
			Expect(txRunner.rollbacks).To(Equal(1))
		})

		It("skips the write for an empty patch", func() {
			orgs.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id}, nil
			}
			_, err := svc.Update(ctx, 900, model.OrganizationPatch{})
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs.updateCalls).To(BeZero())
			Expect(txRunner.commits).To(BeZero())
		})
	})
})
