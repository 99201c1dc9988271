package queue

// TaskType names a job or event carried in the task_type field.
type TaskType string

// Inbound jobs consumed by the worker.
const (
	TaskOrganizationCreate     TaskType = "organization.create"
	TaskOrganizationAuthorized TaskType = "organization.authorized"
	TaskOrganizationUserAdd    TaskType = "organization.user.add"
	TaskOrganizationUserRemove TaskType = "organization.user.remove"
	TaskOrganizationDelete     TaskType = "organization.delete"
	TaskUserCreate             TaskType = "user.create"
	TaskUserAuthorized         TaskType = "user.authorized"
	TaskUserDelete             TaskType = "user.delete"

	TaskPrBotEnabled     TaskType = "organization.integration.prbot.enabled"
	TaskPrBotDisabled    TaskType = "organization.integration.prbot.disabled"
	TaskRunnabotEnabled  TaskType = "organization.integration.runnabot.enabled"
	TaskRunnabotDisabled TaskType = "organization.integration.runnabot.disabled"
)

// Outbound jobs for downstream systems.
const (
	TaskOrganizationProvision TaskType = "organization.provision"
)

// Outbound lifecycle events.
const (
	EventOrganizationCreated     TaskType = "organization.created"
	EventOrganizationUserAdded   TaskType = "organization.user.added"
	EventOrganizationUserRemoved TaskType = "organization.user.removed"
	EventOrganizationDeleted     TaskType = "organization.deleted"
	EventUserCreated             TaskType = "user.created"
	EventUserDeleted             TaskType = "user.deleted"
)
