package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/accounts/internal/http/dto"
	"basegraph.app/accounts/internal/service"
	"basegraph.app/accounts/internal/store"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
	now        func() time.Time
}

func NewOrganizationHandler(orgService service.OrganizationService, now func() time.Time) *OrganizationHandler {
	if now == nil {
		now = time.Now
	}
	return &OrganizationHandler{orgService: orgService, now: now}
}

func (h *OrganizationHandler) List(c *gin.Context) {
	filters, err := parseFilters(c, store.OrganizationColumns, "organization")
	if err != nil {
		respondError(c, err)
		return
	}

	orgs, err := h.orgService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs, h.now()))
}

func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org, h.now()))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.orgService.Update(ctx, id, req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org, h.now()))
}
