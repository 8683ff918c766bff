package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func TestCanOnOrder(t *testing.T) {
	tenant := uuid.New()
	otherTenant := uuid.New()
	customer := uuid.New()

	order := Resource{Kind: ResourceOrder, TenantID: tenant, OwnerID: &customer}

	cases := []struct {
		name   string
		actor  Actor
		action Action
		want   bool
	}{
		{"owner customer reads", Actor{ID: customer, Role: enums.ActorRoleCustomer}, ActionRead, true},
		{"other customer reads", Actor{ID: uuid.New(), Role: enums.ActorRoleCustomer}, ActionRead, false},
		{"customer updates status", Actor{ID: customer, Role: enums.ActorRoleCustomer}, ActionUpdateStatus, false},
		{"staff updates status", Actor{ID: uuid.New(), TenantID: &tenant, Role: enums.ActorRoleStaff}, ActionUpdateStatus, true},
		{"staff cancels", Actor{ID: uuid.New(), TenantID: &tenant, Role: enums.ActorRoleStaff}, ActionCancel, false},
		{"manager cancels", Actor{ID: uuid.New(), TenantID: &tenant, Role: enums.ActorRoleManager}, ActionCancel, true},
		{"owner of other tenant", Actor{ID: uuid.New(), TenantID: &otherTenant, Role: enums.ActorRoleOwner}, ActionUpdateStatus, false},
		{"staff without tenant", Actor{ID: uuid.New(), Role: enums.ActorRoleStaff}, ActionRead, false},
		{"anonymous", Actor{Role: enums.ActorRoleOwner, TenantID: &tenant}, ActionRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.actor, tc.action, order); got != tc.want {
				t.Fatalf("Can() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanOnStorefront(t *testing.T) {
	tenant := uuid.New()
	resource := Resource{Kind: ResourceStorefront, TenantID: tenant}

	visitor := Actor{ID: uuid.New(), Role: enums.ActorRoleCustomer}
	if !Can(visitor, ActionRead, resource) {
		t.Fatalf("anyone may read a storefront")
	}
	if Can(visitor, ActionManage, resource) {
		t.Fatalf("customers may not manage a storefront")
	}
	owner := Actor{ID: uuid.New(), TenantID: &tenant, Role: enums.ActorRoleOwner}
	if !Can(owner, ActionManage, resource) {
		t.Fatalf("owner should manage own storefront")
	}
	if Can(owner, ActionManage, Resource{Kind: "theme", TenantID: tenant}) {
		t.Fatalf("unknown resource kinds are denied")
	}
}
