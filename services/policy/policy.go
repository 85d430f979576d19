// Package policy is the single place the three-tier management
// hierarchy is decided. Every mutating operation on an administrator
// passes the acting admin and its target (or the proposed role level)
// through one of these functions before touching the store.
package policy

import (
	"fmt"

	"github.com/hweilin/admin-console/model"
)

// Kind classifies why a request was denied.
type Kind int

const (
	// Forbidden means the actor lacks authority over the target (403).
	Forbidden Kind = iota
	// Invalid means the request itself is malformed or nonsensical,
	// such as disabling your own account (400).
	Invalid
	// Conflict means a referential rule blocks the operation, such as
	// deleting an admin who still has subordinates (409).
	Conflict
)

// Denial explains a DENY decision. A nil *Denial is ALLOW.
type Denial struct {
	Kind   Kind
	Reason string
}

func (d *Denial) Error() string {
	return d.Reason
}

func forbidden(reason string) *Denial { return &Denial{Kind: Forbidden, Reason: reason} }
func invalid(reason string) *Denial   { return &Denial{Kind: Invalid, Reason: reason} }

// ListScope describes which rows an actor may enumerate.
type ListScope int

const (
	// ScopeAll lets the actor list every administrator.
	ScopeAll ListScope = iota
	// ScopeCreated restricts listing to rows the actor created.
	ScopeCreated
	// ScopeSelf restricts the actor to its own row.
	ScopeSelf
)

// CanCreate decides whether actor may create an account at the
// proposed role level. Creation is only ever downward: super admins
// add supervisors or staff, supervisors add staff, staff add nobody.
func CanCreate(actor *model.Admin, proposedLevel int) *Denial {
	if actor.RoleLevel >= proposedLevel {
		return forbidden("cannot create an administrator at the same or a higher level")
	}
	// Only supervisor and staff accounts are ever created through the
	// API; the single super admin comes from the seeder
	if proposedLevel != model.RoleSupervisor && proposedLevel != model.RoleStaff {
		return invalid("role level must be supervisor (2) or staff (3)")
	}
	return nil
}

// ListingScope returns how far the actor may see when listing accounts.
func ListingScope(actor *model.Admin) ListScope {
	switch actor.RoleLevel {
	case model.RoleSuperAdmin:
		return ScopeAll
	case model.RoleSupervisor:
		return ScopeCreated
	default:
		return ScopeSelf
	}
}

// CanViewDetail decides whether actor may read target's full record.
// Supervisors see their own creations and themselves; staff see only
// themselves.
func CanViewDetail(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID || actor.RoleLevel == model.RoleSuperAdmin {
		return nil
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() == actor.ID {
		return nil
	}
	return forbidden("no permission to view this administrator")
}

// CanUpdate decides whether actor may edit target's profile fields.
// You may always edit yourself, never a peer or superior; supervisors
// are additionally restricted to accounts they created.
func CanUpdate(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID {
		return nil
	}
	if actor.RoleLevel >= target.RoleLevel {
		return forbidden("no permission to modify this administrator")
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() != actor.ID {
		return forbidden("no permission to modify this administrator")
	}
	return nil
}

// CanResetPassword follows the same two-part rule as CanUpdate.
func CanResetPassword(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID {
		return nil
	}
	if actor.RoleLevel >= target.RoleLevel {
		return forbidden("no permission to reset this administrator's password")
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() != actor.ID {
		return forbidden("no permission to reset this administrator's password")
	}
	return nil
}

// CanChangeStatus decides whether actor may enable or disable target.
// Self status changes are denied regardless of level.
func CanChangeStatus(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID {
		return invalid("cannot change your own status")
	}
	if actor.RoleLevel >= target.RoleLevel {
		return forbidden("no permission to change this administrator's status")
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() != actor.ID {
		return forbidden("no permission to change this administrator's status")
	}
	return nil
}

// CanDelete decides whether actor may soft-delete target. Self
// deletion is denied regardless of level. Subordinate blocking is a
// separate check, see DenySubordinates.
func CanDelete(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID {
		return invalid("cannot delete your own account")
	}
	if actor.RoleLevel >= target.RoleLevel {
		return forbidden("no permission to delete this administrator")
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() != actor.ID {
		return forbidden("no permission to delete this administrator")
	}
	return nil
}

// DenySubordinates blocks deletion while the target still manages
// anyone. Returns nil when count is zero.
func DenySubordinates(count int64) *Denial {
	if count == 0 {
		return nil
	}
	return &Denial{
		Kind:   Conflict,
		Reason: fmt.Sprintf("administrator still has %d subordinate(s); reassign or remove them first", count),
	}
}

// CanModifyAvatar decides whether actor may change target's avatar:
// your own, anyone's as super admin, or your own creations as
// supervisor.
func CanModifyAvatar(actor, target *model.Admin) *Denial {
	if actor.ID == target.ID || actor.RoleLevel == model.RoleSuperAdmin {
		return nil
	}
	if actor.RoleLevel == model.RoleSupervisor && target.CreatedByID() == actor.ID {
		return nil
	}
	return forbidden("no permission to modify this administrator's avatar")
}
