package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"basegraph.app/accounts/internal/model"
)

// Op is a comparison applied by a Filter.
type Op string

const (
	OpEq       Op = "eq"
	OpLessThan Op = "lessThan"
	OpMoreThan Op = "moreThan"
	OpIsNull   Op = "isNull"
)

// Filter is one predicate on a whitelisted column. For OpIsNull, Value is a
// bool selecting IS NULL or IS NOT NULL.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

type columnKind int

const (
	kindInt columnKind = iota
	kindBool
	kindTime
	kindString
)

type column struct {
	name     string
	kind     columnKind
	nullable bool
}

// Columns maps API field names to filterable columns of one table.
type Columns map[string]column

var OrganizationColumns = Columns{
	"id":                   {name: "id", kind: kindInt},
	"githubId":             {name: "github_id", kind: kindInt},
	"name":                 {name: "name", kind: kindString},
	"lowerName":            {name: "lower_name", kind: kindString},
	"isActive":             {name: "is_active", kind: kindBool},
	"isPersonalAccount":    {name: "is_personal_account", kind: kindBool},
	"trialEnd":             {name: "trial_end", kind: kindTime},
	"activePeriodEnd":      {name: "active_period_end", kind: kindTime},
	"gracePeriodEnd":       {name: "grace_period_end", kind: kindTime, nullable: true},
	"hasPaymentMethod":     {name: "has_payment_method", kind: kindBool},
	"stripeCustomerId":     {name: "stripe_customer_id", kind: kindString, nullable: true},
	"stripeSubscriptionId": {name: "stripe_subscription_id", kind: kindString, nullable: true},
	"prBotEnabled":         {name: "prbot_enabled", kind: kindBool},
	"runnabotEnabled":      {name: "runnabot_enabled", kind: kindBool},
	"firstDockCreated":     {name: "first_dock_created", kind: kindBool},
	"creator":              {name: "creator_id", kind: kindInt},
	"createdAt":            {name: "created_at", kind: kindTime},
	"updatedAt":            {name: "updated_at", kind: kindTime},
}

var UserColumns = Columns{
	"id":        {name: "id", kind: kindInt},
	"githubId":  {name: "github_id", kind: kindInt},
	"createdAt": {name: "created_at", kind: kindTime},
	"updatedAt": {name: "updated_at", kind: kindTime},
}

// ParseFilter turns a query parameter such as "trialEnd.lessThan" with its raw
// value into a Filter. Unknown fields and unparsable values are rejected.
func (c Columns) ParseFilter(entity, key, raw string) (Filter, error) {
	field, op := key, OpEq
	if base, suffix, ok := strings.Cut(key, "."); ok {
		field, op = base, Op(suffix)
		switch op {
		case OpLessThan, OpMoreThan, OpIsNull:
		default:
			return Filter{}, &model.ValidationError{Entity: entity, Field: key, Reason: "unknown modifier " + suffix}
		}
	}

	col, ok := c[field]
	if !ok {
		return Filter{}, &model.ValidationError{Entity: entity, Field: field, Reason: "not a filterable field"}
	}

	if op == OpIsNull {
		isNull, err := strconv.ParseBool(raw)
		if err != nil {
			return Filter{}, &model.ValidationError{Entity: entity, Field: key, Reason: "expects true or false"}
		}
		return Filter{Column: col.name, Op: op, Value: isNull}, nil
	}

	if (op == OpLessThan || op == OpMoreThan) && (col.kind == kindBool) {
		return Filter{}, &model.ValidationError{Entity: entity, Field: key, Reason: "range modifiers need an ordered field"}
	}

	value, err := col.parse(raw)
	if err != nil {
		return Filter{}, &model.ValidationError{Entity: entity, Field: field, Reason: err.Error()}
	}
	return Filter{Column: col.name, Op: op, Value: value}, nil
}

func (c column) parse(raw string) (any, error) {
	switch c.kind {
	case kindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expects an integer")
		}
		return v, nil
	case kindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expects true or false")
		}
		return v, nil
	case kindTime:
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("expects an RFC 3339 timestamp")
		}
		return v, nil
	default:
		return raw, nil
	}
}

// whereClause renders filters as a SQL WHERE clause with positional
// parameters. Column names come from a whitelist, never from input.
func whereClause(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	var (
		parts []string
		args  []any
	)
	for _, f := range filters {
		switch f.Op {
		case OpIsNull:
			if isNull, _ := f.Value.(bool); isNull {
				parts = append(parts, f.Column+" IS NULL")
			} else {
				parts = append(parts, f.Column+" IS NOT NULL")
			}
			continue
		case OpLessThan:
			args = append(args, f.Value)
			parts = append(parts, fmt.Sprintf("%s < $%d", f.Column, len(args)))
		case OpMoreThan:
			args = append(args, f.Value)
			parts = append(parts, fmt.Sprintf("%s > $%d", f.Column, len(args)))
		default:
			args = append(args, f.Value)
			parts = append(parts, fmt.Sprintf("%s = $%d", f.Column, len(args)))
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// maxListRows caps List results.
const maxListRows = 500
