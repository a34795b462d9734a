package utils

import "testing"

func TestTruncateIDSafeShortensLongIDs(t *testing.T) {
	id := "550e8400-e29b-41d4-a716-446655440000"
	got := TruncateIDSafe(id)
	if got != id[:idDisplayLength] {
		t.Errorf("TruncateIDSafe(%q) = %q, want %q", id, got, id[:idDisplayLength])
	}
}

func TestTruncateIDSafeLeavesShortIDsAlone(t *testing.T) {
	id := "short"
	if got := TruncateIDSafe(id); got != id {
		t.Errorf("TruncateIDSafe(%q) = %q, want unchanged", id, got)
	}
}

func TestGenerateIDProducesDistinctHexStrings(t *testing.T) {
	a, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID returned error: %v", err)
	}
	b, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID returned error: %v", err)
	}

	if len(a) != 12 {
		t.Errorf("GenerateID() length = %d, want 12", len(a))
	}
	if a == b {
		t.Errorf("GenerateID() returned the same value twice: %q", a)
	}
}
