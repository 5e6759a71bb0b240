package domain

import "time"

// PropertyAction labels a mutation recorded in the audit trail.
type PropertyAction string

const (
	ActionCreated     PropertyAction = "created"
	ActionPublished   PropertyAction = "published"
	ActionUnpublished PropertyAction = "unpublished"
	ActionDeleted     PropertyAction = "deleted"
)

// PropertyEvent records a single mutation applied to a property.
type PropertyEvent struct {
	PropertyID string
	AgentID    string
	Action     PropertyAction
	At         time.Time
}
