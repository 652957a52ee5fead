// Package access is the single place where role and ownership rules are
// decided. Services call these functions instead of re-implementing role
// checks per entity, and repositories compose the Scope into their
// queries so unauthorized rows are never loaded.
package access

import "github.com/trackhub/project-manager/internal/core/domain"

// CanRead reports whether actor may read a resource owned by ownerID.
// The role check runs first: admins short-circuit to permitted.
func CanRead(actor *domain.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.ID == ownerID
}

// CanMutate applies the same rule as CanRead for project/task writes.
func CanMutate(actor *domain.User, ownerID string) bool {
	return CanRead(actor, ownerID)
}

// CanDeleteUser reports whether actor may soft-delete the user with
// targetID. Self-deletion is forbidden for every role.
func CanDeleteUser(actor *domain.User, targetID string) bool {
	if actor == nil || actor.ID == targetID {
		return false
	}
	return actor.Role == domain.RoleAdmin
}

// Scope restricts repository queries to what the actor may see. Only an
// admin scope is unrestricted; the zero Scope is restricted to an empty
// owner and therefore matches no stored row (owner ids are never
// empty). Queries always exclude soft-deleted rows regardless of scope.
type Scope struct {
	OwnerID      string
	unrestricted bool
}

// ScopeFor derives the query scope for the acting user. An anonymous
// actor gets the zero scope: restricted, owning nothing.
func ScopeFor(actor *domain.User) Scope {
	if actor == nil {
		return Scope{}
	}
	if actor.Role == domain.RoleAdmin {
		return Scope{unrestricted: true}
	}
	return Scope{OwnerID: actor.ID}
}

// Restricted reports whether the scope carries an owner constraint.
func (s Scope) Restricted() bool {
	return !s.unrestricted
}
