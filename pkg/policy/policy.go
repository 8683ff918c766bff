package policy

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Action is an operation an actor attempts on a resource.
type Action string

const (
	ActionRead         Action = "read"
	ActionUpdateStatus Action = "update_status"
	ActionCancel       Action = "cancel"
	ActionManage       Action = "manage"
)

// ResourceKind names the protected resource type.
type ResourceKind string

const (
	ResourceOrder      ResourceKind = "order"
	ResourceStorefront ResourceKind = "storefront"
	ResourceBranch     ResourceKind = "branch"
)

// Actor is the authenticated principal attempting an action.
type Actor struct {
	ID       uuid.UUID
	TenantID *uuid.UUID
	Role     enums.ActorRole
}

// Resource identifies the target of an action.
type Resource struct {
	Kind     ResourceKind
	TenantID uuid.UUID
	OwnerID  *uuid.UUID
}

// Can reports whether actor may perform action on resource. Rules are keyed on
// the resource kind; anything not explicitly allowed is denied.
func Can(actor Actor, action Action, resource Resource) bool {
	if actor.ID == uuid.Nil || !actor.Role.IsValid() {
		return false
	}
	switch resource.Kind {
	case ResourceOrder:
		return canOnOrder(actor, action, resource)
	case ResourceStorefront, ResourceBranch:
		return canOnTenantAsset(actor, action, resource)
	default:
		return false
	}
}

func canOnOrder(actor Actor, action Action, resource Resource) bool {
	if actor.Role == enums.ActorRoleCustomer {
		return action == ActionRead && isOwner(actor, resource)
	}
	if !sameTenant(actor, resource) {
		return false
	}
	switch action {
	case ActionRead, ActionUpdateStatus:
		return true
	case ActionCancel:
		return actor.Role == enums.ActorRoleManager || actor.Role == enums.ActorRoleOwner
	default:
		return false
	}
}

func canOnTenantAsset(actor Actor, action Action, resource Resource) bool {
	if !sameTenant(actor, resource) {
		return action == ActionRead
	}
	switch action {
	case ActionRead:
		return true
	case ActionManage:
		return actor.Role == enums.ActorRoleManager || actor.Role == enums.ActorRoleOwner
	default:
		return false
	}
}

func sameTenant(actor Actor, resource Resource) bool {
	return actor.TenantID != nil && *actor.TenantID == resource.TenantID
}

func isOwner(actor Actor, resource Resource) bool {
	return resource.OwnerID != nil && *resource.OwnerID == actor.ID
}
