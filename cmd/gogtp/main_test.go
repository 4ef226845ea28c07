package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/gtpio"
)

// newTestDispatcher wires a fresh engine the same way run() does, minus
// flag parsing and the opening book, and drives it through the line
// protocol directly rather than real stdin/stdout.
func newTestDispatcher(t *testing.T, boardSize int) *gtpio.Dispatcher {
	t.Helper()
	tables, err := data.Load()
	if err != nil {
		t.Fatalf("data.Load: %v", err)
	}
	e := newEngine(tables, nil, 1)
	e.resize(boardSize, board.DefaultRules())
	return registerCommands(e)
}

func serve(t *testing.T, d *gtpio.Dispatcher, commands ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	var out bytes.Buffer
	if err := d.Serve(in, &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	return out.String()
}

func TestProtocolPlayAndFinalScore(t *testing.T) {
	d := newTestDispatcher(t, 5)
	out := serve(t, d,
		"1 boardsize 5",
		"2 clear_board",
		"3 komi 6.5",
		"4 play B C3",
		"5 final_score",
		"6 quit",
	)
	if !strings.Contains(out, "=1") || !strings.Contains(out, "=2") {
		t.Fatalf("expected successful responses for setup commands, got %q", out)
	}
	if !strings.Contains(out, "=4") {
		t.Fatalf("expected play to succeed, got %q", out)
	}
	if !strings.Contains(out, "=5 B+") {
		t.Fatalf("expected a single stone owning the whole empty board under area scoring to favour Black despite komi, got %q", out)
	}
}

func TestProtocolUnknownCommandIsAnError(t *testing.T) {
	d := newTestDispatcher(t, 9)
	out := serve(t, d, "1 frobnicate")
	if !strings.HasPrefix(out, "?1") {
		t.Fatalf("expected an error response for an unknown command, got %q", out)
	}
}

func TestProtocolGenmovePlaysALegalMove(t *testing.T) {
	d := newTestDispatcher(t, 5)
	out := serve(t, d,
		"1 boardsize 5",
		"2 genmove B",
	)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "=2 ") {
		t.Fatalf("expected genmove to report a vertex, got %q", out)
	}
	vertex := strings.TrimSpace(strings.TrimPrefix(last, "=2 "))
	if vertex == "" {
		t.Fatalf("expected a non-empty vertex from genmove")
	}
}

func TestProtocolListCommandsIncludesRegisteredNames(t *testing.T) {
	d := newTestDispatcher(t, 9)
	out := serve(t, d, "1 list_commands")
	for _, want := range []string{"genmove", "play", "boardsize", "quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected list_commands to include %q, got %q", want, out)
		}
	}
}
