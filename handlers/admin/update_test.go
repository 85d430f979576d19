package admin

import (
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }

func TestFieldUpdatesOnlyPresentFields(t *testing.T) {
	req := UpdateAdminRequest{
		RealName: strptr("Li Wei"),
		Notes:    strptr(""),
	}

	got := req.fieldUpdates()
	want := map[string]interface{}{
		"real_name": "Li Wei",
		"notes":     "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fieldUpdates = %v, want %v", got, want)
	}

	// Omitted fields must not appear at all, or they would wipe the
	// stored values
	for _, col := range []string{"phone", "email", "employee_id", "department"} {
		if _, present := got[col]; present {
			t.Errorf("omitted field %q present in updates", col)
		}
	}
}

func TestFieldUpdatesEmptyRequest(t *testing.T) {
	if got := (UpdateAdminRequest{}).fieldUpdates(); len(got) != 0 {
		t.Errorf("empty request produced updates: %v", got)
	}
}
