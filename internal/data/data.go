// Package data loads the engine's embedded tables: the Greenpeep
// predictor tables (one per board-size tier), the feature-weight blob
// the rule-based predictor uses, and the raw 3x8-colour pattern bit
// table kept for debug inspection (spec.md §6/§9 "Embedded data
// files"). Every table ships inside the binary via go:embed and loads
// once at process start, matching the teacher's "load once, immutable
// after load" pattern for static tables (internal/pattern has no
// mutable state either).
package data

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/uctgo/gouct/internal/knowledge"
	"github.com/uctgo/gouct/internal/policy"
)

//go:embed assets/greenpeep_small.tsv assets/greenpeep_large.tsv assets/weights.tsv assets/patterns.bin
var assets embed.FS

// greenpeepTable is a sparse lookup from a 12-point diamond context
// code to a trained probability/gamma value, satisfying
// knowledge.GreenpeepTable. Contexts absent from the table read as 0,
// which GreenpeepPredictor.Value then floors to its flavour's minimum.
type greenpeepTable map[uint32]float64

func (t greenpeepTable) ValueAt(context uint32) float64 { return t[context] }

// Gamma satisfies policy.GammaTable, reusing the same sparse map shape
// for gamma-weighted pattern selection.
func (t greenpeepTable) Gamma(code uint32) float64 { return t[code] }

// Tables bundles every embedded table the engine loads at startup.
type Tables struct {
	Small   greenpeepTable
	Large   greenpeepTable
	Weights knowledge.FeatureWeights
	Pattern []byte
}

// ForBoardSize returns the Greenpeep table for the tier the given
// board size falls into (GoUctAdditiveKnowledgeGreenpeep's own
// board-size-gated flavour switch, spec.md §4.7).
func (t *Tables) ForBoardSize(boardSize int) knowledge.GreenpeepTable {
	if boardSize >= 15 {
		return t.Large
	}
	return t.Small
}

// GammaForBoardSize returns the same underlying table as ForBoardSize,
// typed for the playout policy's gamma-weighted pattern generator
// (internal/policy.GammaTable) instead of the knowledge predictor's
// interface — the two consumers want different method sets off the
// same sparse map, so this is a separate accessor rather than a type
// that satisfies both interfaces being returned through one of them.
func (t *Tables) GammaForBoardSize(boardSize int) policy.GammaTable {
	if boardSize >= 15 {
		return t.Large
	}
	return t.Small
}

// PatternPopcount sums the set bits across the raw pattern table, used
// by cmd/gogtp's dbg-pattern command as a cheap sanity readout that the
// table actually loaded (the live 3x3 matcher in internal/pattern does
// not consult this table; it matches rules directly against the board,
// so the embedded bit table is retained only for this kind of
// diagnostic and for parity with the original Fuego data files).
func (t *Tables) PatternPopcount() int {
	n := 0
	for _, b := range t.Pattern {
		n += bits.OnesCount8(b)
	}
	return n
}

// Load reads every embedded table, collecting every failure (instead
// of stopping at the first) into one *multierror.Error, matching
// SPEC_FULL's choice of hashicorp/go-multierror for this component so
// cmd/gogtp can report every broken table at once on a fatal init
// failure.
func Load() (*Tables, error) {
	var errs *multierror.Error
	t := &Tables{Weights: knowledge.DefaultFeatureWeights}

	small, err := loadGreenpeep("assets/greenpeep_small.tsv")
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("greenpeep small table: %w", err))
	}
	t.Small = small

	large, err := loadGreenpeep("assets/greenpeep_large.tsv")
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("greenpeep large table: %w", err))
	}
	t.Large = large

	weights, err := loadWeights("assets/weights.tsv")
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("feature weights: %w", err))
	} else {
		t.Weights = weights
	}

	raw, err := assets.ReadFile("assets/patterns.bin")
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("pattern table: %w", err))
	}
	t.Pattern = raw

	return t, errs.ErrorOrNil()
}

func loadGreenpeep(path string) (greenpeepTable, error) {
	raw, err := assets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table := make(greenpeepTable)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return table, fmt.Errorf("%s: malformed line %q", path, line)
		}
		ctx, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return table, fmt.Errorf("%s: bad context %q: %w", path, fields[0], err)
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return table, fmt.Errorf("%s: bad value %q: %w", path, fields[1], err)
		}
		table[uint32(ctx)] = val
	}
	return table, sc.Err()
}

func loadWeights(path string) (knowledge.FeatureWeights, error) {
	w := knowledge.DefaultFeatureWeights
	raw, err := assets.ReadFile(path)
	if err != nil {
		return w, err
	}
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return w, fmt.Errorf("%s: malformed line %q", path, line)
		}
		val, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return w, fmt.Errorf("%s: bad weight %q: %w", path, fields[1], err)
		}
		switch fields[0] {
		case "capture":
			w.Capture = val
		case "save":
			w.Save = val
		case "pattern":
			w.Pattern = val
		case "proximity":
			w.Proximity = val
		case "thirdline":
			w.ThirdLine = val
		default:
			return w, fmt.Errorf("%s: unknown feature %q", path, fields[0])
		}
	}
	return w, sc.Err()
}
