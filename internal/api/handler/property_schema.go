package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createPropertyRequest carries the listing form. Price arrives as free text
// and is coerced to a number by the handler, mirroring a text input field.
type createPropertyRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price"       validate:"required"`
	City        string `json:"city"        validate:"required"`
	IsPublished bool   `json:"is_published"`
}

type setPublishedRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type propertyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	City        string    `json:"city"`
	AgentID     string    `json:"agent_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

type catalogueResponse struct {
	Data   []propertyResponse `json:"data"`
	Total  int                `json:"total"`
	Cities []string           `json:"cities"`
}

type ownedListingsResponse struct {
	Data      []propertyResponse `json:"data"`
	Published int                `json:"published"`
	Drafts    int                `json:"drafts"`
}

type activityEventResponse struct {
	PropertyID string    `json:"property_id"`
	AgentID    string    `json:"agent_id"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
}
