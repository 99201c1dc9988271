package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/accounts/internal/http/handler"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/store"
)

var _ = Describe("OrganizationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockOrganizationService
		now    time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		router = gin.New()
		svc = &mockOrganizationService{}
		h := handler.NewOrganizationHandler(svc, func() time.Time { return now })
		router.GET("/organization", h.List)
		router.GET("/organization/:id", h.GetByID)
		router.PATCH("/organization/:id", h.Update)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the organization with its derived billing status", func() {
		svc.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
			return &model.Organization{
				ID:              id,
				GithubID:        2828361,
				Name:            "Runnable",
				IsActive:        true,
				TrialEnd:        now.Add(24 * time.Hour),
				ActivePeriodEnd: now.Add(-time.Hour),
			}, nil
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/organization/7", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["name"]).To(Equal("Runnable"))
		Expect(resp["isInTrial"]).To(BeTrue())
		Expect(resp["isInActivePeriod"]).To(BeFalse())
		Expect(resp["allowed"]).To(BeTrue())
	})

	It("returns 404 for an unknown id", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/organization/7", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 400 for a malformed id", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/organization/abc", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("turns query parameters into filters", func() {
		var got []store.Filter
		svc.listFn = func(_ context.Context, filters []store.Filter) ([]model.Organization, error) {
			got = filters
			return []model.Organization{}, nil
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/organization?isActive=true&gracePeriodEnd.isNull=false", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got).To(ConsistOf(
			store.Filter{Column: "is_active", Op: store.OpEq, Value: true},
			store.Filter{Column: "grace_period_end", Op: store.OpIsNull, Value: false},
		))
		Expect(w.Body.String()).To(Equal("[]"))
	})

	It("rejects an unknown filter field", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/organization?owner=1", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("applies a patch", func() {
		var got model.OrganizationPatch
		svc.updateFn = func(_ context.Context, id int64, patch model.OrganizationPatch) (*model.Organization, error) {
			got = patch
			return &model.Organization{ID: id, Name: "Runnable", PrBotEnabled: true}, nil
		}

		body := bytes.NewBufferString(`{"prBotEnabled":true}`)
		req := httptest.NewRequest(http.MethodPatch, "/organization/7", body)
		req.Header.Set("Content-Type", "application/json")
		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got.PrBotEnabled).To(HaveValue(BeTrue()))
		Expect(got.Name).To(BeNil())
	})

	It("returns 409 when a patch hits a unique constraint", func() {
		svc.updateFn = func(_ context.Context, _ int64, _ model.OrganizationPatch) (*model.Organization, error) {
			return nil, &store.UniqueError{Constraint: "organizations_stripe_customer_id_key"}
		}

		req := httptest.NewRequest(http.MethodPatch, "/organization/7", bytes.NewBufferString(`{"stripeCustomerId":"cus_1"}`))
		req.Header.Set("Content-Type", "application/json")

		Expect(serve(req).Code).To(Equal(http.StatusConflict))
	})

	It("hides internal errors", func() {
		svc.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
			return nil, errors.New("pool exhausted")
		}

		w := serve(httptest.NewRequest(http.MethodGet, "/organization/7", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("pool exhausted"))
	})
})
