// Package authz holds the capability checks applied per endpoint. The checks
// are pure: they only inspect the Actor and the target already loaded by the
// handler, never the store.
package authz

import (
	"strings"

	"github.com/ensia-dev/incubator/internal/models"
)

// Actor is the authenticated identity attached to a request. Role is the
// role's name, or empty when the actor has none. The zero value is an
// anonymous actor.
type Actor struct {
	ID            uint
	Email         string
	Role          string
	IsActive      bool
	Authenticated bool
}

func IsAdmin(a Actor) bool {
	return a.Authenticated && a.Role != "" && strings.EqualFold(a.Role, models.RoleAdmin)
}

func IsStudent(a Actor) bool {
	return a.Authenticated && a.Role != "" && strings.EqualFold(a.Role, models.RoleStudent)
}

// IsOwner reports whether the actor owns the target, identified by the
// target's owning user id.
func IsOwner(a Actor, ownerID uint) bool {
	return a.Authenticated && a.ID == ownerID
}
