package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// The worker sets the message fields once per delivery and handlers add the entity ids
// they resolve, so every log line of a job carries the same correlation data.
type LogFields struct {
	MessageID      *string // Redis stream message ID
	Task           *string // Task or event name, e.g. "organization.user.add"
	Tid            *string // Correlation id carried in the job payload
	Attempt        *int    // Delivery attempt, starting at 1
	OrganizationID *int64  // Internal organization ID
	UserID         *int64  // Internal user ID
	GithubID       *int64  // GitHub id the job refers to
	Component      string  // Component name (OTel semantic convention style, e.g. "accounts.worker")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Task != nil {
		result.Task = next.Task
	}
	if next.Tid != nil {
		result.Tid = next.Tid
	}
	if next.Attempt != nil {
		result.Attempt = next.Attempt
	}
	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.GithubID != nil {
		result.GithubID = next.GithubID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
