package gtpio

import "testing"

func TestPadOrTruncatePads(t *testing.T) {
	got := PadOrTruncate("D4", 6)
	if len(got) != 6 {
		t.Fatalf("expected a 6-byte result for plain ASCII, got %q (%d)", got, len(got))
	}
}

func TestPadOrTruncateTruncates(t *testing.T) {
	got := PadOrTruncate("move D4 winrate 55%", 8)
	if uniseg := len([]rune(got)); uniseg > 8 {
		t.Fatalf("expected at most 8 display cells, got %q", got)
	}
}

func TestPadOrTruncateExact(t *testing.T) {
	got := PadOrTruncate("D4pass", 6)
	if got != "D4pass" {
		t.Fatalf("expected the string unchanged, got %q", got)
	}
}
