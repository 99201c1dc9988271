package worker

import (
	"context"
	"errors"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
	"basegraph.app/accounts/internal/store"
)

func (h *handlers) integration(integration model.Integration, enabled bool) Handler {
	return func(ctx context.Context, msg queue.Message) error {
		job, err := decode[schema.IntegrationJob](msg)
		if err != nil {
			return err
		}
		id := job.TargetID()
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &id})

		if _, err := h.orgs.SetIntegration(ctx, id, integration, enabled); err != nil {
			var noRows *store.NoRowsUpdatedError
			switch {
			case store.IsNotFound(err):
				return stop("organization not found", err)
			case errors.As(err, &noRows):
				return retry("toggling integration", err)
			default:
				return classify("toggling integration", err)
			}
		}
		return nil
	}
}
