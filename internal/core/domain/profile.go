package domain

import (
	"errors"
	"time"
)

const (
	RoleAgent       = "agent"
	RoleClient      = "client"
	RoleUtilisateur = "utilisateur"
)

var ErrProfileNotFound = errors.New("profile not found")

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	return role == RoleAgent || role == RoleClient || role == RoleUtilisateur
}

// Profile is the stored profile row of an authenticated principal.
// It is created once at account provisioning and never mutated afterwards.
type Profile struct {
	ID        string    `json:"id" bson:"_id"`
	Role      string    `json:"role" bson:"role"`
	Firstname string    `json:"firstname" bson:"firstname"`
	Lastname  string    `json:"lastname" bson:"lastname"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
