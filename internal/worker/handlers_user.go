package worker

import (
	"context"
	"log/slog"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
	"basegraph.app/accounts/internal/store"
)

func (h *handlers) userCreate(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.UserCreateJob](msg)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &job.GithubID})

	user, err := h.users.Create(ctx, job.GithubID, job.AccessToken)
	if store.IsUnique(err) {
		user, err = h.users.GetByGithubID(ctx, job.GithubID)
		if err != nil {
			return retry("loading existing user", err)
		}
		slog.InfoContext(ctx, "user already exists, republishing user.created")
	} else if err != nil {
		return classify("creating user", err)
	}

	h.publishUserCreated(ctx, user)
	return nil
}

func (h *handlers) userAuthorized(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.UserCreateJob](msg)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &job.GithubID})

	user, created, err := h.users.Authorize(ctx, job.GithubID, job.AccessToken)
	if err != nil {
		return classify("authorizing user", err)
	}
	if created {
		h.publishUserCreated(ctx, user)
	}
	return nil
}

func (h *handlers) userDelete(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.DeleteJob](msg)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &job.GithubID})

	user, err := h.users.GetByGithubID(ctx, job.GithubID)
	if err != nil {
		return notFoundStops("loading user", err)
	}

	if err := h.users.Delete(ctx, user); err != nil {
		return retry("deleting user", err)
	}

	h.publishEvent(ctx, queue.EventUserDeleted, schema.UserEvent{
		User: schema.UserRef{ID: user.ID, GithubID: user.GithubID},
	})
	return nil
}

func (h *handlers) publishUserCreated(ctx context.Context, user *model.User) {
	h.publishEvent(ctx, queue.EventUserCreated, schema.UserEvent{
		User: schema.UserRef{ID: user.ID, GithubID: user.GithubID},
	})
}
