// Package access defines roles, the identity established at login, and the
// visibility scope every session ledger read is parameterized by.
package access

import (
	"fmt"

	"github.com/dmitrijs2005/worklog/internal/common"
)

// Role is the access tier of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleRegular:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", common.ErrValidation, s)
}

// Identity is who is acting. It is built once from verified credentials or
// token claims and passed by value; nothing mutates it afterwards.
type Identity struct {
	Username string
	Role     Role
}

// IsAdmin reports whether the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Scope returns the visibility scope for this identity.
func (i Identity) Scope() Scope {
	return VisibilityScope(i.Role, i.Username)
}

// Scope restricts which sessions a read may see: all of them, or only those
// owned by one user.
type Scope struct {
	unrestricted bool
	owner        string
}

// Unrestricted sees every session.
func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

// OwnedBy sees only sessions owned by username.
func OwnedBy(username string) Scope {
	return Scope{owner: username}
}

// VisibilityScope maps a role to its scope: admins see everything, everyone
// else sees their own sessions.
func VisibilityScope(role Role, username string) Scope {
	if role == RoleAdmin {
		return Unrestricted()
	}
	return OwnedBy(username)
}

// IsUnrestricted reports whether the scope sees all rows.
func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

// Owner is the owner a restricted scope is bound to; empty when unrestricted.
func (s Scope) Owner() string {
	return s.owner
}

// Allows reports whether a session owned by owner is visible.
func (s Scope) Allows(owner string) bool {
	return s.unrestricted || s.owner == owner
}

func (s Scope) String() string {
	if s.unrestricted {
		return "unrestricted"
	}
	return "owned-by:" + s.owner
}
