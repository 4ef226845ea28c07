package gtpio

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// StatusLine is the periodic search-progress readout spec.md §4.5's
// UCT search driver exposes during a long search (best move, win rate,
// playouts/second, node count, memory in use).
type StatusLine struct {
	BestMove     string
	WinRate      float64
	Playouts     uint64
	Elapsed      time.Duration
	TreeBytes    uint64
	NodeCount    int
}

// Render formats one status line, colorized with termenv when the
// output supports it (its own go-isatty/go-osc52-backed capability
// probe) and degrading to plain text on a dumb terminal or when piped,
// matching termenv's own recommended fallback idiom.
func Render(s StatusLine) string {
	profile := termenv.ColorProfile()
	pps := 0.0
	if secs := s.Elapsed.Seconds(); secs > 0 {
		pps = float64(s.Playouts) / secs
	}
	plain := fmt.Sprintf(
		"move %s  winrate %.1f%%  playouts %d (%.0f/s)  nodes %d  mem %s",
		s.BestMove, s.WinRate*100, s.Playouts, pps, s.NodeCount,
		humanize.Bytes(s.TreeBytes),
	)
	if profile == termenv.Ascii {
		return plain
	}

	rateColor := "2" // green: favourable
	switch {
	case s.WinRate < 0.3:
		rateColor = "1" // red: losing
	case s.WinRate < 0.5:
		rateColor = "3" // yellow: uncertain
	}

	move := termenv.String(s.BestMove).Bold().Foreground(profile.Color("4")).String()
	rate := termenv.String(fmt.Sprintf("%.1f%%", s.WinRate*100)).Foreground(profile.Color(rateColor)).String()
	rest := fmt.Sprintf(
		"playouts %d (%.0f/s)  nodes %d  mem %s",
		s.Playouts, pps, s.NodeCount, humanize.Bytes(s.TreeBytes),
	)
	return fmt.Sprintf("move %s  winrate %s  %s", move, rate, rest)
}

// Banner renders a name/version line, sized with go-humanize to show
// the tree capacity in human units rather than a raw byte count. The
// "name", "version" and "list_commands" commands of cmd/gogtp do not
// use it; they report their own plain strings.
func Banner(name, version string, treeCapacityBytes uint64) string {
	return fmt.Sprintf("%s %s (tree capacity %s)", name, version, humanize.Bytes(treeCapacityBytes))
}
