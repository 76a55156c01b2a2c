package id

import (
	"strings"
	"testing"
	"time"
)

func TestNewWindowID(t *testing.T) {
	id := NewWindowID()
	if !strings.HasPrefix(id.String(), WindowPrefix+"_") {
		t.Errorf("expected win_ prefix, got %s", id)
	}
}

func TestUniqueness(t *testing.T) {
	seen := make(map[WindowID]bool)
	for i := 0; i < 1000; i++ {
		id := NewWindowID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestSortability(t *testing.T) {
	first := Default().GenerateString()
	time.Sleep(2 * time.Millisecond)
	second := Default().GenerateString()

	if first >= second {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	raw := Default().GenerateString()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(raw)
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", ts, before, after)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(Default().GenerateString()) {
		t.Error("generated ULID should be valid")
	}
	if IsValid("not-a-ulid") {
		t.Error("garbage should not validate")
	}
}
