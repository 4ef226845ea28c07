// Command gogtp is the text-command-protocol-speaking engine binary:
// it wires internal/board, internal/search, internal/policy,
// internal/knowledge, internal/data, internal/book, and internal/gtpio
// into a runnable whole, the same way the teacher's
// examples/ultimate-tic-tac-toe and examples/chess directories wire
// pkg/mcts into a complete game loop around the generic search core.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/uctgo/gouct/internal/board"
	"github.com/uctgo/gouct/internal/book"
	"github.com/uctgo/gouct/internal/data"
	"github.com/uctgo/gouct/internal/gtpio"
	"github.com/uctgo/gouct/internal/search"
	"github.com/uctgo/gouct/internal/treeviz"
)

const (
	engineName    = "gouct"
	engineVersion = "0.1.0"
)

func main() {
	os.Exit(run())
}

// run does all the work and returns a process exit code, matching the
// teacher's examples (which never call os.Exit mid-logic) and the
// entry-point shape SPEC_FULL.md's design notes settle on.
func run() int {
	boardSize := flag.Int("boardsize", 19, "initial board size")
	threads := flag.Int("threads", 4, "search worker threads")
	bookPath := flag.String("book", "", "path to the badger opening-book directory (empty disables the book)")
	flag.Parse()

	tables, err := data.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: fatal: embedded table load failed:\n%v\n", engineName, err)
		return 1
	}

	var bk *book.Book
	if *bookPath != "" {
		bk, err = book.Open(*bookPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: warning: opening book unavailable: %v\n", engineName, err)
			bk = nil
		} else {
			defer bk.Close()
		}
	}

	e := newEngine(tables, bk, *threads)
	e.resize(*boardSize, board.DefaultRules())

	d := registerCommands(e)
	if err := d.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: protocol loop ended: %v\n", engineName, err)
		return 1
	}
	return 0
}

func registerCommands(e *engine) *gtpio.Dispatcher {
	d := gtpio.NewDispatcher()

	d.Register("name", func(args []string) (string, error) { return engineName, nil })
	d.Register("version", func(args []string) (string, error) { return engineVersion, nil })
	d.Register("list_commands", func(args []string) (string, error) {
		return strings.Join(d.Names(), "\n"), nil
	})
	d.Register("quit", func(args []string) (string, error) { return "", nil })

	d.Register("boardsize", func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("boardsize requires exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("bad board size %q", args[0])
		}
		e.resize(n, e.rules)
		return "", nil
	})
	d.Register("clear_board", func(args []string) (string, error) {
		e.clearBoard()
		return "", nil
	})
	d.Register("komi", func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("komi requires exactly one argument")
		}
		k, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("bad komi %q", args[0])
		}
		e.setKomi(k)
		return "", nil
	})
	d.Register("play", func(args []string) (string, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("play requires color and vertex")
		}
		return "", e.play(args[0], args[1])
	})
	d.Register("genmove", func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("genmove requires a color")
		}
		return e.genmove(args[0])
	})
	d.Register("undo", func(args []string) (string, error) {
		return "", e.undo()
	})
	d.Register("kgs-game_over", func(args []string) (string, error) {
		e.clearBoard()
		return "", nil
	})
	d.Register("final_score", func(args []string) (string, error) {
		return e.finalScore(), nil
	})
	d.Register("time_settings", func(args []string) (string, error) {
		if len(args) != 3 {
			return "", fmt.Errorf("time_settings requires main_time byoyomi_time byoyomi_stones")
		}
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("bad main time %q", args[0])
		}
		if secs > 0 {
			e.movetime = secs * 1000
		} else {
			e.movetime = search.DefaultMovetimeLimit
		}
		e.rebuildSearcher()
		return "", nil
	})
	d.Register("time_left", func(args []string) (string, error) {
		// Per-move clock bookkeeping beyond a flat movetime budget is an
		// external time-control policy concern (spec.md §1 Non-goals);
		// acknowledged and ignored here.
		return "", nil
	})

	d.Register("uct_param_search", func(args []string) (string, error) {
		return setParam(args, uctParamSearchSetters(e))
	})
	d.Register("uct_param_player", func(args []string) (string, error) {
		return setParam(args, uctParamPlayerSetters(e))
	})
	d.Register("uct_param_policy", func(args []string) (string, error) {
		return setParam(args, uctParamPolicySetters(e))
	})

	d.Register("dbg-tree", func(args []string) (string, error) {
		depth := 2
		topK := 3
		if len(args) >= 1 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				depth = n
			}
		}
		if len(args) >= 2 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				topK = n
			}
		}
		return treeviz.DumpTopK(e.tr.Root(), e.bd.Geometry(), depth, topK)
	})
	d.Register("dbg-pattern", func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("dbg-pattern requires a vertex")
		}
		p, ok := e.bd.Geometry().Parse(args[0])
		if !ok {
			return "", fmt.Errorf("invalid vertex %q", args[0])
		}
		matched := patternMatch(e.bd, p)
		return fmt.Sprintf("matched=%v table_bits=%d", matched, e.tables.PatternPopcount()), nil
	})

	return d
}
