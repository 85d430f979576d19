package policy

import (
	"testing"

	"github.com/hweilin/admin-console/model"
)

func admin(id uint, level int, createdBy uint) *model.Admin {
	a := &model.Admin{ID: id, RoleLevel: level, Status: model.StatusActive}
	if createdBy != 0 {
		a.CreatedBy = &createdBy
	}
	return a
}

func TestCanCreateMatrix(t *testing.T) {
	tests := []struct {
		name       string
		actorLevel int
		proposed   int
		allow      bool
		kind       Kind
	}{
		{"super admin creates supervisor", 1, 2, true, 0},
		{"super admin creates staff", 1, 3, true, 0},
		{"super admin creates super admin", 1, 1, false, Forbidden},
		{"super admin creates level 4", 1, 4, false, Invalid},
		{"super admin creates level 0", 1, 0, false, Forbidden},
		{"super admin creates level 99", 1, 99, false, Invalid},
		{"supervisor creates staff", 2, 3, true, 0},
		{"supervisor creates level 4", 2, 4, false, Invalid},
		{"supervisor creates supervisor", 2, 2, false, Forbidden},
		{"supervisor creates super admin", 2, 1, false, Forbidden},
		{"staff creates staff", 3, 3, false, Forbidden},
		{"staff creates anything lower", 3, 4, false, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanCreate(admin(1, tt.actorLevel, 0), tt.proposed)
			if tt.allow && d != nil {
				t.Fatalf("expected allow, got denial: %v", d)
			}
			if !tt.allow {
				if d == nil {
					t.Fatal("expected denial, got allow")
				}
				if d.Kind != tt.kind {
					t.Fatalf("expected kind %v, got %v (%s)", tt.kind, d.Kind, d.Reason)
				}
			}
		})
	}
}

func TestListingScope(t *testing.T) {
	if got := ListingScope(admin(1, 1, 0)); got != ScopeAll {
		t.Errorf("super admin scope = %v, want ScopeAll", got)
	}
	if got := ListingScope(admin(2, 2, 1)); got != ScopeCreated {
		t.Errorf("supervisor scope = %v, want ScopeCreated", got)
	}
	if got := ListingScope(admin(3, 3, 2)); got != ScopeSelf {
		t.Errorf("staff scope = %v, want ScopeSelf", got)
	}
}

func TestSupervisorOwnershipRules(t *testing.T) {
	supervisorA := admin(10, 2, 1)
	supervisorB := admin(11, 2, 1)
	root := admin(1, 1, 0)
	staffOfA := admin(20, 3, 10)

	// A created staffOfA, so A may act on it
	for name, check := range map[string]func(actor, target *model.Admin) *Denial{
		"view":   CanViewDetail,
		"update": CanUpdate,
		"reset":  CanResetPassword,
		"status": CanChangeStatus,
		"delete": CanDelete,
	} {
		if d := check(supervisorA, staffOfA); d != nil {
			t.Errorf("%s: supervisor A over own staff denied: %v", name, d)
		}
		if d := check(supervisorB, staffOfA); d == nil {
			t.Errorf("%s: supervisor B over A's staff allowed, want denial", name)
		} else if d.Kind != Forbidden {
			t.Errorf("%s: supervisor B denial kind = %v, want Forbidden", name, d.Kind)
		}
		if d := check(root, staffOfA); d != nil {
			t.Errorf("%s: super admin over staff denied: %v", name, d)
		}
	}
}

func TestSelfOperations(t *testing.T) {
	self := admin(10, 2, 1)

	if d := CanUpdate(self, self); d != nil {
		t.Errorf("self update denied: %v", d)
	}
	if d := CanResetPassword(self, self); d != nil {
		t.Errorf("self password reset denied: %v", d)
	}
	if d := CanViewDetail(self, self); d != nil {
		t.Errorf("self view denied: %v", d)
	}

	// Self delete and self disable are always denied, even for level 1
	for _, level := range []int{1, 2, 3} {
		actor := admin(uint(level), level, 0)
		if d := CanDelete(actor, actor); d == nil || d.Kind != Invalid {
			t.Errorf("level %d self delete: got %v, want Invalid denial", level, d)
		}
		if d := CanChangeStatus(actor, actor); d == nil || d.Kind != Invalid {
			t.Errorf("level %d self status change: got %v, want Invalid denial", level, d)
		}
	}
}

func TestPeerAndUpwardDenied(t *testing.T) {
	root := admin(1, 1, 0)
	otherRoot := admin(2, 1, 0)
	supervisor := admin(10, 2, 1)

	if d := CanUpdate(root, otherRoot); d == nil {
		t.Error("peer super admin update allowed, want denial")
	}
	if d := CanUpdate(supervisor, root); d == nil {
		t.Error("upward update allowed, want denial")
	}
	if d := CanResetPassword(supervisor, admin(11, 2, 1)); d == nil {
		t.Error("peer supervisor password reset allowed, want denial")
	}
}

func TestStaffDetailRestrictedToSelf(t *testing.T) {
	staff := admin(20, 3, 10)
	otherStaff := admin(21, 3, 10)

	if d := CanViewDetail(staff, otherStaff); d == nil {
		t.Error("staff viewing another staff allowed, want denial")
	}
	if d := CanViewDetail(staff, staff); d != nil {
		t.Errorf("staff viewing self denied: %v", d)
	}
}

func TestDenySubordinates(t *testing.T) {
	if d := DenySubordinates(0); d != nil {
		t.Errorf("zero subordinates denied: %v", d)
	}
	d := DenySubordinates(3)
	if d == nil {
		t.Fatal("expected denial with subordinates present")
	}
	if d.Kind != Conflict {
		t.Errorf("kind = %v, want Conflict", d.Kind)
	}
}

func TestCanModifyAvatar(t *testing.T) {
	root := admin(1, 1, 0)
	supervisorA := admin(10, 2, 1)
	supervisorB := admin(11, 2, 1)
	staffOfA := admin(20, 3, 10)

	if d := CanModifyAvatar(staffOfA, staffOfA); d != nil {
		t.Errorf("self avatar denied: %v", d)
	}
	if d := CanModifyAvatar(root, staffOfA); d != nil {
		t.Errorf("super admin avatar change denied: %v", d)
	}
	if d := CanModifyAvatar(supervisorA, staffOfA); d != nil {
		t.Errorf("creating supervisor avatar change denied: %v", d)
	}
	if d := CanModifyAvatar(supervisorB, staffOfA); d == nil {
		t.Error("non-creating supervisor avatar change allowed, want denial")
	}
	if d := CanModifyAvatar(staffOfA, supervisorA); d == nil {
		t.Error("staff changing supervisor avatar allowed, want denial")
	}
}
