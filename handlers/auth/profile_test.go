package auth

import (
	"testing"
)

func strptr(s string) *string { return &s }

func TestProfileFieldUpdatesOnlyPresentFields(t *testing.T) {
	req := UpdateProfileRequest{
		Phone: strptr("13800138000"),
	}

	got := req.fieldUpdates()
	if len(got) != 1 {
		t.Fatalf("fieldUpdates = %v, want only phone", got)
	}
	if got["phone"] != "13800138000" {
		t.Errorf("phone = %v, want 13800138000", got["phone"])
	}

	// A provided empty string is an explicit clear, not an omission
	req = UpdateProfileRequest{Email: strptr("")}
	got = req.fieldUpdates()
	if v, present := got["email"]; !present || v != "" {
		t.Errorf("explicit empty email not carried: %v", got)
	}
	if _, present := got["real_name"]; present {
		t.Error("omitted real_name present in updates")
	}
}
