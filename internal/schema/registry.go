// Package schema holds the JSON Schemas of every message the worker reads or
// writes. Schemas are generated from the payload structs and compiled once.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v6"

	"basegraph.app/accounts/internal/queue"
)

// ValidationError reports a payload that does not match its schema.
type ValidationError struct {
	Name   queue.TaskType
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payload for %s failed schema validation: %s", e.Name, e.Reason)
}

type definition struct {
	value    any
	outbound bool
}

var definitions = map[queue.TaskType]definition{
	queue.TaskOrganizationCreate:     {value: OrganizationCreateJob{}},
	queue.TaskOrganizationAuthorized: {value: OrganizationCreateJob{}},
	queue.TaskOrganizationUserAdd:    {value: MembershipJob{}},
	queue.TaskOrganizationUserRemove: {value: MembershipJob{}},
	queue.TaskOrganizationDelete:     {value: DeleteJob{}},
	queue.TaskUserCreate:             {value: UserCreateJob{}},
	queue.TaskUserAuthorized:         {value: UserCreateJob{}},
	queue.TaskUserDelete:             {value: DeleteJob{}},
	queue.TaskPrBotEnabled:           {value: IntegrationJob{}},
	queue.TaskPrBotDisabled:          {value: IntegrationJob{}},
	queue.TaskRunnabotEnabled:        {value: IntegrationJob{}},
	queue.TaskRunnabotDisabled:       {value: IntegrationJob{}},

	queue.TaskOrganizationProvision:    {value: ProvisionJob{}, outbound: true},
	queue.EventOrganizationCreated:     {value: OrganizationCreatedEvent{}, outbound: true},
	queue.EventOrganizationUserAdded:   {value: MembershipEvent{}, outbound: true},
	queue.EventOrganizationUserRemoved: {value: MembershipEvent{}, outbound: true},
	queue.EventOrganizationDeleted:     {value: OrganizationEvent{}, outbound: true},
	queue.EventUserCreated:             {value: UserEvent{}, outbound: true},
	queue.EventUserDeleted:             {value: UserEvent{}, outbound: true},
}

// Registry validates payloads by message name.
type Registry struct {
	schemas map[queue.TaskType]*validator.Schema
}

// NewRegistry generates and compiles every schema. Inbound schemas tolerate
// unknown fields because producers evolve independently; outbound schemas are
// closed.
func NewRegistry() (*Registry, error) {
	inbound := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	outbound := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}

	compiler := validator.NewCompiler()
	compiler.AssertFormat()

	reg := &Registry{schemas: make(map[queue.TaskType]*validator.Schema, len(definitions))}
	for name, def := range definitions {
		reflector := inbound
		if def.outbound {
			reflector = outbound
		}

		raw, err := json.Marshal(reflector.Reflect(def.value))
		if err != nil {
			return nil, fmt.Errorf("generating schema for %s: %w", name, err)
		}
		doc, err := validator.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decoding schema for %s: %w", name, err)
		}

		url := "mem://accounts/" + string(name) + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("adding schema for %s: %w", name, err)
		}
		compiled, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
		}
		reg.schemas[name] = compiled
	}
	return reg, nil
}

// Has reports whether a schema is registered under name.
func (r *Registry) Has(name queue.TaskType) bool {
	_, ok := r.schemas[name]
	return ok
}

// Validate checks a raw JSON payload.
func (r *Registry) Validate(name queue.TaskType, raw []byte) error {
	sch, ok := r.schemas[name]
	if !ok {
		return &ValidationError{Name: name, Reason: "no schema registered"}
	}

	inst, err := validator.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Name: name, Reason: "invalid json: " + err.Error()}
	}
	if err := sch.Validate(inst); err != nil {
		return &ValidationError{Name: name, Reason: err.Error()}
	}
	return nil
}

// Encode marshals v and validates the result, returning the bytes that are
// safe to publish.
func (r *Registry) Encode(name queue.TaskType, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &ValidationError{Name: name, Reason: err.Error()}
	}
	if err := r.Validate(name, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
