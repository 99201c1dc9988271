package worker

import (
	"context"
	"errors"
	"log/slog"

	"basegraph.app/accounts/common/logger"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
	"basegraph.app/accounts/internal/store"
)

func (h *handlers) organizationCreate(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.OrganizationCreateJob](msg)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &job.GithubID})

	creator, err := h.users.GetByGithubID(ctx, job.Creator.GithubID)
	if err != nil {
		// The creator's user.create may still be in flight.
		return retry("loading creator", err)
	}

	org, err := h.orgs.Create(ctx, job.GithubID, creator)
	if store.IsUnique(err) {
		// A redelivery after the insert committed; the follow-up jobs may
		// never have been published, so load the row and publish again.
		org, err = h.orgs.GetByGithubID(ctx, job.GithubID)
		if err != nil {
			return retry("loading existing organization", err)
		}
		slog.InfoContext(ctx, "organization already exists, republishing follow-ups")
	} else if err != nil {
		return classify("creating organization", err)
	}

	ref := schema.OrganizationRef{ID: org.ID, GithubID: org.GithubID}
	h.publishTask(ctx, queue.TaskOrganizationUserAdd, schema.MembershipJob{
		OrganizationGithubID: org.GithubID,
		UserGithubID:         creator.GithubID,
		Tid:                  msg.Tid,
	})
	h.publishTask(ctx, queue.TaskOrganizationProvision, schema.ProvisionJob{Organization: ref})
	h.publishEvent(ctx, queue.EventOrganizationCreated, schema.OrganizationCreatedEvent{
		Organization: schema.NamedOrganizationRef{ID: org.ID, GithubID: org.GithubID, Name: org.Name},
		Creator:      schema.UserRef{ID: creator.ID, GithubID: creator.GithubID},
		CreatedAt:    org.CreatedAt,
	})
	return nil
}

func (h *handlers) organizationUserAdd(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.MembershipJob](msg)
	if err != nil {
		return err
	}

	org, err := h.orgs.GetByGithubID(ctx, job.OrganizationGithubID)
	if err != nil {
		return retry("loading organization", err)
	}
	user, err := h.users.GetByGithubID(ctx, job.UserGithubID)
	if err != nil {
		return retry("loading user", err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID, UserID: &user.ID})

	err = h.orgs.AddUser(ctx, org, user)
	if store.IsUnique(err) {
		slog.InfoContext(ctx, "user already a member")
		return nil
	}
	if err != nil {
		return classify("adding user to organization", err)
	}

	h.publishEvent(ctx, queue.EventOrganizationUserAdded, schema.MembershipEvent{
		Organization: schema.OrganizationRef{ID: org.ID, GithubID: org.GithubID},
		User:         schema.UserRef{ID: user.ID, GithubID: user.GithubID},
	})
	return nil
}

func (h *handlers) organizationUserRemove(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.MembershipJob](msg)
	if err != nil {
		return err
	}

	org, err := h.orgs.GetByGithubID(ctx, job.OrganizationGithubID)
	if err != nil {
		return notFoundStops("loading organization", err)
	}
	user, err := h.users.GetByGithubID(ctx, job.UserGithubID)
	if err != nil {
		return notFoundStops("loading user", err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID, UserID: &user.ID})

	if err := h.orgs.RemoveUser(ctx, org, user); err != nil {
		var noRows *store.NoRowsDeletedError
		if errors.As(err, &noRows) {
			return stop("user is not a member", err)
		}
		return retry("removing user from organization", err)
	}

	h.publishEvent(ctx, queue.EventOrganizationUserRemoved, schema.MembershipEvent{
		Organization: schema.OrganizationRef{ID: org.ID, GithubID: org.GithubID},
		User:         schema.UserRef{ID: user.ID, GithubID: user.GithubID},
	})
	return nil
}

func (h *handlers) organizationDelete(ctx context.Context, msg queue.Message) error {
	job, err := decode[schema.DeleteJob](msg)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{GithubID: &job.GithubID})

	org, err := h.orgs.GetByGithubID(ctx, job.GithubID)
	if err != nil {
		return notFoundStops("loading organization", err)
	}

	if err := h.orgs.Delete(ctx, org); err != nil {
		return retry("deleting organization", err)
	}

	h.publishEvent(ctx, queue.EventOrganizationDeleted, schema.OrganizationEvent{
		Organization: schema.OrganizationRef{ID: org.ID, GithubID: org.GithubID},
	})
	return nil
}

// notFoundStops is for tasks that act on rows which must already exist.
func notFoundStops(reason string, err error) error {
	if store.IsNotFound(err) {
		return stop(reason, err)
	}
	return retry(reason, err)
}
