package gtpio

import (
	"strings"
	"testing"
	"time"
)

func TestRenderIncludesKeyFields(t *testing.T) {
	s := StatusLine{
		BestMove:  "D4",
		WinRate:   0.62,
		Playouts:  12000,
		Elapsed:   2 * time.Second,
		TreeBytes: 1 << 20,
		NodeCount: 4321,
	}
	out := Render(s)
	if !strings.Contains(out, "D4") {
		t.Fatalf("expected the best move in the rendered line, got %q", out)
	}
	if !strings.Contains(out, "4321") {
		t.Fatalf("expected the node count in the rendered line, got %q", out)
	}
}

func TestBannerIncludesNameAndVersion(t *testing.T) {
	out := Banner("gouct", "0.1.0", 1<<24)
	if !strings.Contains(out, "gouct") || !strings.Contains(out, "0.1.0") {
		t.Fatalf("expected name and version in banner, got %q", out)
	}
}
