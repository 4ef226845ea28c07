package search

// Params bundles the UCT/RAVE selection constants and the Go-specific
// evaluation coefficients, spec.md §4.5/§4.7/§4.8 gathered in one
// struct the way the teacher gathers its MultithreadPolicy/selection
// knobs on the MCTS type itself (pkg/mcts/mcts.go).
type Params struct {
	UCTConst            float64 // c; spec default is 0 (pure exploitation plus RAVE/knowledge)
	RAVEBeta            float64
	FirstPlayUrgency    float64
	ExpansionThreshold  int32
	VirtualLossAmount   int32
	PriorSeedWeight     int32

	EarlyAbortEnabled      bool
	EarlyAbortThreshold    float64 // e.g. 0.8, spec.md §4.5 "sure-win threshold"
	EarlyAbortMinFraction  float64 // fraction of the playout budget spent before checking
	EarlyAbortMinVisits    int32

	MercyThreshold int // absolute stone-count difference; 0 disables the mercy rule
	ScoreAlpha     float64
	LengthBeta     float64
	MaxPlayoutMoves int
}

// DefaultParams mirrors spec.md §4.5/§4.8's stated defaults: zero bias
// constant (selection relies on RAVE and additive knowledge instead of
// a UCB1 exploration term), beta tuned conservatively, alpha ≈ 0.02,
// and a length penalty that only matters on boards large enough for
// long games.
func DefaultParams(boardSize int) Params {
	beta := 0.0
	if boardSize >= 15 {
		beta = 2.8e-4
	}
	return Params{
		UCTConst:              0,
		RAVEBeta:              1e-4,
		FirstPlayUrgency:      1.1,
		ExpansionThreshold:    3,
		VirtualLossAmount:     3,
		PriorSeedWeight:       6,
		EarlyAbortEnabled:     true,
		EarlyAbortThreshold:   0.8,
		EarlyAbortMinFraction: 0.5,
		EarlyAbortMinVisits:   1000,
		MercyThreshold:        int(float64(boardSize*boardSize) * 0.7),
		ScoreAlpha:            0.02,
		LengthBeta:            beta,
		MaxPlayoutMoves:       boardSize * boardSize * 3,
	}
}
