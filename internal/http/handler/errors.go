package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"basegraph.app/accounts/internal/github"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/store"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		validationErr *model.ValidationError
		uniqueErr     *store.UniqueError
		foreignKeyErr *store.ForeignKeyError
		notNullErr    *store.NotNullError
		notFoundErr   *store.NotFoundError
		noRowsErr     *store.NoRowsUpdatedError
		permissionErr *github.EntityNoPermissionError
		ghNotFoundErr *github.EntityNotFoundError
	)
	switch {
	case errors.As(err, &uniqueErr):
		return http.StatusConflict
	case errors.As(err, &validationErr), errors.As(err, &foreignKeyErr), errors.As(err, &notNullErr):
		return http.StatusBadRequest
	case errors.As(err, &permissionErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr), errors.As(err, &noRowsErr), errors.As(err, &ghNotFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// parseFilters reads every query parameter as a column filter, e.g.
// ?isActive=true&trialEnd.lessThan=2024-01-01T00:00:00Z.
func parseFilters(c *gin.Context, columns store.Columns, entity string) ([]store.Filter, error) {
	var filters []store.Filter
	for key, values := range c.Request.URL.Query() {
		for _, raw := range values {
			f, err := columns.ParseFilter(entity, key, raw)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
	}
	return filters, nil
}
