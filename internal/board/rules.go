package board

// KoRule selects how the board enforces the ko prohibition (spec.md §3
// "rules (... ko rule ∈ {simple, super, none} ...)").
type KoRule int

const (
	KoSimple KoRule = iota
	KoSuper
	KoNone
)

// ScoringRule selects the end-of-game counting method.
type ScoringRule int

const (
	ScoringArea ScoringRule = iota
	ScoringTerritory
)

// Rules bundles the ruleset a Board is constructed with.
type Rules struct {
	Komi           float64
	KoRule         KoRule
	SuicideAllowed bool
	Scoring        ScoringRule
	HandicapKomi   float64
}

// DefaultRules returns the common Chinese-style ruleset: area scoring,
// super-ko (the board's hash covers the position plus the side to
// move), no suicide.
func DefaultRules() Rules {
	return Rules{
		Komi:           7.5,
		KoRule:         KoSuper,
		SuicideAllowed: false,
		Scoring:        ScoringArea,
	}
}
