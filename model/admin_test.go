package model

import (
	"reflect"
	"strings"
	"testing"
)

// Concurrent create requests race their handler-level pre-checks, so
// the identifying columns must carry unique indexes in the schema.
func TestAdminIdentifierColumnsAreUnique(t *testing.T) {
	typ := reflect.TypeOf(Admin{})

	tests := []struct {
		field   string
		partial bool
	}{
		{"Username", false},
		{"EmployeeID", true}, // empty means unassigned, so the index is partial
		{"Phone", true},
	}

	for _, tt := range tests {
		f, ok := typ.FieldByName(tt.field)
		if !ok {
			t.Fatalf("field %s missing from Admin", tt.field)
		}
		tag := f.Tag.Get("gorm")
		if !strings.Contains(tag, "uniqueIndex") {
			t.Errorf("%s gorm tag %q lacks a unique index", tt.field, tag)
		}
		if tt.partial && !strings.Contains(tag, "where:") {
			t.Errorf("%s gorm tag %q should scope uniqueness to non-empty values", tt.field, tag)
		}
	}
}
