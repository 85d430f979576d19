package admin

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestDeletedUsernameFormat(t *testing.T) {
	before := time.Now().UnixMilli()
	got := deletedUsername("zhangsan")
	after := time.Now().UnixMilli()

	if !strings.HasPrefix(got, "zhangsan_deleted_") {
		t.Fatalf("deletedUsername = %q, want zhangsan_deleted_<ts>", got)
	}

	raw := strings.TrimPrefix(got, "zhangsan_deleted_")
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.Fatalf("timestamp suffix %q is not numeric: %v", raw, err)
	}
	if ts < before || ts > after {
		t.Errorf("timestamp %d outside [%d, %d]", ts, before, after)
	}
}

func TestDeletionNote(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	got := deletionNote("", at)
	want := "[deleted at 2026-08-30 14:05:00]"
	if got != want {
		t.Errorf("deletionNote on empty notes = %q, want %q", got, want)
	}

	got = deletionNote("transferred from branch office", at)
	want = "transferred from branch office [deleted at 2026-08-30 14:05:00]"
	if got != want {
		t.Errorf("deletionNote appended = %q, want %q", got, want)
	}
}

func TestDeletedUsernameDistinctOverTime(t *testing.T) {
	a := deletedUsername("lisi")
	time.Sleep(2 * time.Millisecond)
	b := deletedUsername("lisi")
	if a == b {
		t.Errorf("expected distinct renames for successive deletions, both %q", a)
	}
}
