package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/pattern"
	"github.com/uctgo/gouct/internal/point"
	"github.com/uctgo/gouct/internal/search"
	"github.com/uctgo/gouct/internal/tree"
)

// setParam implements the common shape of the three "uct_param_*" GTP
// extension commands: with no arguments, list every known parameter's
// current value; with "name value", set it and rebuild the searcher so
// the change takes effect on the next genmove.
func setParam(args []string, setters map[string]paramSetter) (string, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(setters))
		for name, s := range setters {
			names = append(names, fmt.Sprintf("%s %s", name, s.get()))
		}
		return strings.Join(names, "\n"), nil
	}
	if len(args) != 2 {
		return "", fmt.Errorf("expected \"name value\", got %d arguments", len(args))
	}
	s, ok := setters[args[0]]
	if !ok {
		return "", fmt.Errorf("unknown parameter %q", args[0])
	}
	if err := s.set(args[1]); err != nil {
		return "", fmt.Errorf("bad value for %q: %w", args[0], err)
	}
	return "", nil
}

type paramSetter struct {
	get func() string
	set func(string) error
}

func floatParam(get func() float64, set func(float64)) paramSetter {
	return paramSetter{
		get: func() string { return strconv.FormatFloat(get(), 'g', -1, 64) },
		set: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			set(v)
			return nil
		},
	}
}

func boolParam(get func() bool, set func(bool)) paramSetter {
	return paramSetter{
		get: func() string { return strconv.FormatBool(get()) },
		set: func(s string) error {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			set(v)
			return nil
		},
	}
}

func intParam(get func() int32, set func(int32)) paramSetter {
	return paramSetter{
		get: func() string { return strconv.FormatInt(int64(get()), 10) },
		set: func(s string) error {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return err
			}
			set(int32(v))
			return nil
		},
	}
}

// uctParamSearchSetters exposes the UCT search driver's own tunables
// (spec.md §4.5): exploration constant, RAVE beta, first-play urgency,
// expansion threshold, early-abort gating.
func uctParamSearchSetters(e *engine) map[string]paramSetter {
	return map[string]paramSetter{
		"exploration": floatParam(
			func() float64 { return e.searchParams.UCTConst },
			func(v float64) { e.searchParams.UCTConst = v; e.rebuildSearcher() },
		),
		"rave_beta": floatParam(
			func() float64 { return e.searchParams.RAVEBeta },
			func(v float64) { e.searchParams.RAVEBeta = v; e.rebuildSearcher() },
		),
		"first_play_urgency": floatParam(
			func() float64 { return e.searchParams.FirstPlayUrgency },
			func(v float64) { e.searchParams.FirstPlayUrgency = v; e.rebuildSearcher() },
		),
		"expansion_threshold": intParam(
			func() int32 { return e.searchParams.ExpansionThreshold },
			func(v int32) { e.searchParams.ExpansionThreshold = v; e.rebuildSearcher() },
		),
		"early_abort": boolParam(
			func() bool { return e.searchParams.EarlyAbortEnabled },
			func(v bool) { e.searchParams.EarlyAbortEnabled = v; e.rebuildSearcher() },
		),
	}
}

// uctParamPlayerSetters exposes process-level search resource knobs
// (spec.md §5 Concurrency & resource model): thread count and playout
// budget.
func uctParamPlayerSetters(e *engine) map[string]paramSetter {
	return map[string]paramSetter{
		"threads": intParam(
			func() int32 { return int32(e.threads) },
			func(v int32) {
				e.threads = int(v)
				e.tr = tree.NewTree(numThreads(e.threads), nodesPerThread)
				e.rebuildSearcher()
			},
		),
		"playouts": floatParam(
			func() float64 { return float64(e.playouts) },
			func(v float64) {
				if v <= 0 {
					e.playouts = search.DefaultPlayoutLimit
				} else {
					e.playouts = uint64(v)
				}
				e.rebuildSearcher()
			},
		),
		"movetime_ms": intParam(
			func() int32 { return int32(e.movetime) },
			func(v int32) { e.movetime = int(v); e.rebuildSearcher() },
		),
	}
}

// uctParamPolicySetters exposes the playout policy cascade's switches
// (spec.md §4.6).
func uctParamPolicySetters(e *engine) map[string]paramSetter {
	return map[string]paramSetter{
		"use_patterns": boolParam(
			func() bool { return e.playoutParams.UsePatternsInRollout },
			func(v bool) { e.playoutParams.UsePatternsInRollout = v; e.rebuildSearcher() },
		),
		"use_nakade": boolParam(
			func() bool { return e.playoutParams.UseNakadeHeuristic },
			func(v bool) { e.playoutParams.UseNakadeHeuristic = v; e.rebuildSearcher() },
		),
		"gamma_weighted": boolParam(
			func() bool { return e.playoutParams.UseGammaWeighting },
			func(v bool) { e.playoutParams.UseGammaWeighting = v; e.rebuildSearcher() },
		),
		"fillboard_tries": intParam(
			func() int32 { return int32(e.playoutParams.FillboardTries) },
			func(v int32) { e.playoutParams.FillboardTries = int(v); e.rebuildSearcher() },
		),
	}
}

// patternMatch answers the "dbg-pattern" debug command: whether p is a
// hane/cut/edge pattern point for the side to move.
func patternMatch(bd *board.Board, p point.Point) bool {
	return pattern.Match(bd, p)
}
