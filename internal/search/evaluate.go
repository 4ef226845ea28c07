package search

import (
	"math"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/point"
)

// scoreArea computes Black's area score minus White's area score: each
// stone counts for its own colour, each empty region counts for a
// colour only if every stone bordering it is that colour (dame/neutral
// regions count for neither), the standard Tromp-Taylor area rule.
//
// Fuego keeps two scoring paths (a full Tromp-Taylor pass and a
// cheaper "simple end position" pass used when the playout ran to
// completion, where the board is already settled and a fast heuristic
// is safe) purely to save C++ playout time; a flood fill over a Go
// board here is inexpensive enough that both evaluation paths below
// share this one function instead of carrying a second, approximate
// implementation.
func scoreArea(pos board.Position) float64 {
	geom := pos.Geometry()
	visited := make(map[point.Point]bool)
	black, white := 0.0, 0.0
	for _, p := range pos.IterBoard() {
		switch pos.ColorAt(p) {
		case board.Black:
			black++
			continue
		case board.White:
			white++
			continue
		}
		if visited[p] || pos.ColorAt(p) != board.Empty {
			continue
		}
		region, border := floodRegion(pos, geom, p, visited)
		switch border {
		case board.Black:
			black += float64(len(region))
		case board.White:
			white += float64(len(region))
		}
	}
	return black - white
}

func floodRegion(pos board.Position, geom point.Geometry, start point.Point, visited map[point.Point]bool) ([]point.Point, board.Color) {
	queue := []point.Point{start}
	visited[start] = true
	region := []point.Point{start}
	border := board.Empty
	mixed := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range geom.Neighbors4(cur) {
			c := pos.ColorAt(nb)
			if c == board.Border {
				continue
			}
			if c == board.Empty {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				region = append(region, nb)
				queue = append(queue, nb)
				continue
			}
			if border == board.Empty {
				border = c
			} else if border != c {
				mixed = true
			}
		}
	}
	if mixed {
		return region, board.Empty
	}
	return region, border
}

// ScoreMargin returns the raw Tromp-Taylor margin (positive favours
// Black) after komi, the form "final_score" reports rather than the
// [0,1] win-probability Evaluate backs up into the tree.
func ScoreMargin(pos board.Position, rules board.Rules) float64 {
	return scoreArea(pos) - rules.Komi - rules.HandicapKomi
}

// mercyDifference returns Black's stone count minus White's.
func mercyDifference(pos board.Position) int {
	black, white := 0, 0
	for _, p := range pos.IterBoard() {
		switch pos.ColorAt(p) {
		case board.Black:
			black++
		case board.White:
			white++
		}
	}
	return black - white
}

// Evaluate computes the backed-up value from Black's perspective for a
// finished or cut-short playout, per spec.md §4.8: the mercy rule
// takes priority (an immediate 1 or 0), otherwise the raw area score is
// turned into a win/loss value modified by the configured score and
// length coefficients, with an exact draw returning 0.5.
func Evaluate(pos board.Position, rules board.Rules, params Params, movesPlayed int) float64 {
	if params.MercyThreshold > 0 {
		if diff := mercyDifference(pos); diff >= params.MercyThreshold {
			return 1
		} else if diff <= -params.MercyThreshold {
			return 0
		}
	}

	m := scoreArea(pos) - rules.Komi - rules.HandicapKomi
	if m == 0 {
		return 0.5
	}
	maxScore := float64(pos.Geometry().BoardSize * pos.Geometry().BoardSize)
	lengthMod := math.Min(0.5, float64(movesPlayed)*params.LengthBeta)
	winVal := (1 - params.ScoreAlpha) + params.ScoreAlpha*math.Abs(m)/maxScore - lengthMod
	if winVal < 0 {
		winVal = 0
	}
	if m > 0 {
		return winVal
	}
	return 1 - winVal
}
