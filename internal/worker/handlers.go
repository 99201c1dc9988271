package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"basegraph.app/accounts/internal/github"
	"basegraph.app/accounts/internal/model"
	"basegraph.app/accounts/internal/publisher"
	"basegraph.app/accounts/internal/queue"
	"basegraph.app/accounts/internal/schema"
	"basegraph.app/accounts/internal/service"
)

type Deps struct {
	Organizations service.OrganizationService
	Users         service.UserService
	Publisher     publisher.Publisher
}

type handlers struct {
	orgs      service.OrganizationService
	users     service.UserService
	publisher publisher.Publisher
}

// NewHandlers returns the handler for every inbound task.
func NewHandlers(deps Deps) map[queue.TaskType]Handler {
	h := &handlers{
		orgs:      deps.Organizations,
		users:     deps.Users,
		publisher: deps.Publisher,
	}

	return map[queue.TaskType]Handler{
		queue.TaskOrganizationCreate:     h.organizationCreate,
		queue.TaskOrganizationAuthorized: h.organizationCreate,
		queue.TaskOrganizationUserAdd:    h.organizationUserAdd,
		queue.TaskOrganizationUserRemove: h.organizationUserRemove,
		queue.TaskOrganizationDelete:     h.organizationDelete,
		queue.TaskUserCreate:             h.userCreate,
		queue.TaskUserAuthorized:         h.userAuthorized,
		queue.TaskUserDelete:             h.userDelete,
		queue.TaskPrBotEnabled:           h.integration(model.IntegrationPrBot, true),
		queue.TaskPrBotDisabled:          h.integration(model.IntegrationPrBot, false),
		queue.TaskRunnabotEnabled:        h.integration(model.IntegrationRunnabot, true),
		queue.TaskRunnabotDisabled:       h.integration(model.IntegrationRunnabot, false),
	}
}

// CheckHandlers fails when a handled task has no payload schema. Run it at
// startup; otherwise every such message would be dead-lettered.
func CheckHandlers(registry *schema.Registry, handlers map[queue.TaskType]Handler) error {
	var missing []string
	for name := range handlers {
		if !registry.Has(name) {
			missing = append(missing, string(name))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("no payload schema for tasks %v", missing)
	}
	return nil
}

func decode[T any](msg queue.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, stop("decoding payload", err)
	}
	return v, nil
}

// classify turns domain errors into fatal failures. Everything else stays
// retryable.
func classify(reason string, err error) error {
	var (
		validationErr *model.ValidationError
		notFoundErr   *github.EntityNotFoundError
		typeErr       *github.EntityTypeError
		permissionErr *github.EntityNoPermissionError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &typeErr),
		errors.As(err, &permissionErr):
		return stop(reason, err)
	default:
		return retry(reason, err)
	}
}

func (h *handlers) publishTask(ctx context.Context, name queue.TaskType, payload any) {
	if err := h.publisher.PublishTask(ctx, name, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish job", "name", name, "error", err)
	}
}

func (h *handlers) publishEvent(ctx context.Context, name queue.TaskType, payload any) {
	if err := h.publisher.PublishEvent(ctx, name, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "name", name, "error", err)
	}
}
