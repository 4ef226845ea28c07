package pattern

import "github.com/uctgo/gouct/internal/point"

// DiamondContext builds the Greenpeep-style context code for point p
// from the mover's point of view: a base-3 digit (empty=0, own=1,
// opponent=2) for each of the 12 diamond points, followed by a "ko
// exists at p" bit and a "p is a defensive move" bit, matching the
// bit budget described by Fuego's GoUctAdditiveKnowledgeGreenpeep
// (16-bit 8-neighbour core + 8-bit liberty/2-away extension + 2 flag
// bits). The combined code indexes the embedded predictor tables
// (internal/data).
func DiamondContext(pos Position, p point.Point, koPoint point.Point) uint32 {
	geom := pos.Geometry()
	mover := pos.ToPlay()
	opp := mover.Opponent()

	var code uint32
	for _, d := range geom.Diamond12(p) {
		code *= 3
		switch pos.ColorAt(d) {
		case mover:
			code += 1
		case opp:
			code += 2
		default: // Empty or Border both read as empty context
		}
	}

	code <<= 1
	if p == koPoint {
		code |= 1
	}
	code <<= 1
	if isDefensiveMove(pos, p) {
		code |= 1
	}
	return code
}

// isDefensiveMove reports whether playing at p would save one of the
// mover's own blocks currently in atari, the "defensive move" flag bit
// Greenpeep's context packs alongside the raw diamond shape.
func isDefensiveMove(pos Position, p point.Point) bool {
	mover := pos.ToPlay()
	geom := pos.Geometry()
	for _, nb := range geom.Neighbors4(p) {
		if pos.ColorAt(nb) == mover && pos.InAtari(nb) {
			return true
		}
	}
	return false
}
