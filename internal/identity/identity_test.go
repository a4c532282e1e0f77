package identity_test

import (
	"encoding/hex"
	"testing"

	"lrcloud/internal/identity"
)

func TestNewIDShape(t *testing.T) {
	id := identity.NewID()
	if len(id) != 32 {
		t.Fatalf("expected 32 hex characters, got %d (%q)", len(id), id)
	}

	raw, err := hex.DecodeString(id)
	if err != nil {
		t.Fatalf("identifier is not valid hex: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("expected 16 decoded bytes, got %d", len(raw))
	}
	if version := raw[6] >> 4; version != 4 {
		t.Fatalf("expected version nibble 4, got %x", version)
	}
	if variant := raw[8] >> 6; variant != 0b10 {
		t.Fatalf("expected variant bits 10, got %02b", variant)
	}
}

func TestNewIDLowercase(t *testing.T) {
	id := identity.NewID()
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("unexpected character %q in identifier %q", r, id)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	const trials = 100000
	seen := make(map[string]struct{}, trials)
	for i := 0; i < trials; i++ {
		id := identity.NewID()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate identifier after %d trials: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}
