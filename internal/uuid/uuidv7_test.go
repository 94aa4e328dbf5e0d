package uuid

import (
	"testing"
	"time"

	googleuuid "github.com/google/uuid"
)

func TestNew_IsVersion7(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("New() produced unparsable id %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("version = %d, want 7", parsed.Version())
	}
	if parsed.Variant() != googleuuid.RFC4122 {
		t.Errorf("variant = %v, want RFC4122", parsed.Variant())
	}
}

func TestNewAt_SortsByTime(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	earlier := NewAt(base)
	later := NewAt(base.Add(time.Millisecond))
	if earlier >= later {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated id to be valid")
	}
	if IsValid("not-a-uuid") {
		t.Error("expected garbage to be invalid")
	}
}
