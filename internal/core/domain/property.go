package domain

import (
	"errors"
	"time"
)

var ErrPropertyNotFound = errors.New("property not found")
var ErrForbidden = errors.New("access forbidden")
var ErrMutationInFlight = errors.New("mutation already in flight for this property")
var ErrInvalidPrice = errors.New("price must be a non-negative number")

// Property is the core aggregate: a real-estate listing owned by exactly one
// agent. AgentID is set at creation and never reassigned. IsPublished is the
// sole visibility gate for the public catalogue.
type Property struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	City        string    `json:"city" bson:"city"`
	AgentID     string    `json:"agent_id" bson:"agent_id"`
	IsPublished bool      `json:"is_published" bson:"is_published"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
