// Package uci implements the engine's side of the Universal Chess Interface:
// a line-oriented command loop reading GUI commands from an io.Reader and
// writing responses to an io.Writer. Parsing favors the teacher's own style
// in Position.UCIToMove — liberal parsing of whitespace-separated tokens,
// descriptive errors logged and swallowed rather than propagated, since a
// GUI sending one malformed line must never take the engine down.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kitrofimov/chessica/board"
	"github.com/kitrofimov/chessica/eval"
	"github.com/kitrofimov/chessica/game"
	"github.com/kitrofimov/chessica/internal/xlog"
	"github.com/kitrofimov/chessica/search"
)

const (
	engineName   = "chessica"
	engineAuthor = "chessica contributors"
)

// Engine runs the UCI command loop against a single Game, one search at a
// time.
type Engine struct {
	out io.Writer
	mu  sync.Mutex // serializes writes to out

	game *game.Game
	ctrl search.Control

	searching sync.WaitGroup
	lastBest  board.Move
}

// NewEngine returns an Engine that writes responses to out and starts with
// the standard starting position.
func NewEngine(out io.Writer) *Engine {
	return &Engine{out: out, game: game.NewGame()}
}

// Run reads UCI commands from in, one per line, until EOF or a "quit"
// command, dispatching each to its handler. Run blocks until the loop ends;
// callers typically wire os.Stdin/os.Stdout and let Run own the process's
// main loop.
func (e *Engine) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if e.dispatch(line) {
			return
		}
	}
}

// dispatch handles one command line and reports whether the loop should
// stop (i.e. "quit" was received).
func (e *Engine) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		e.handleUCI()
	case "isready":
		e.writeln("readyok")
	case "ucinewgame":
		e.handleNewGame()
	case "position":
		e.handlePosition(args)
	case "go":
		e.handleGo(args)
	case "stop":
		e.handleStop()
	case "quit":
		e.handleStop()
		return true
	default:
		xlog.Printf("ignoring unrecognized command: %q", line)
	}
	return false
}

func (e *Engine) handleUCI() {
	e.writeln(fmt.Sprintf("id name %s", engineName))
	e.writeln(fmt.Sprintf("id author %s", engineAuthor))
	e.writeln("uciok")
}

func (e *Engine) handleNewGame() {
	e.searching.Wait()
	e.game = game.NewGame()
}

func (e *Engine) handlePosition(args []string) {
	e.searching.Wait()
	if len(args) == 0 {
		xlog.Println("position command missing a board specification")
		return
	}

	var g *game.Game
	var rest []string
	switch args[0] {
	case "startpos":
		g = game.NewGame()
		rest = args[1:]
	case "fen":
		end := len(args)
		for i, a := range args[1:] {
			if a == "moves" {
				end = i + 1
				break
			}
		}
		fen := strings.Join(args[1:end], " ")
		var err error
		g, err = game.FromFEN(fen)
		if err != nil {
			xlog.Printf("position fen: %v", err)
			return
		}
		rest = args[end:]
	default:
		xlog.Printf("position: expected startpos or fen, got %q", args[0])
		return
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			xlog.Printf("position: expected moves, got %q", rest[0])
			return
		}
		if err := g.ApplyUCIMoves(rest[1:]); err != nil {
			xlog.Printf("position: %v", err)
			return
		}
	}
	e.game = g
}

func (e *Engine) handleGo(args []string) {
	e.searching.Wait()
	limits := parseGoArgs(args)

	start := time.Now()
	e.searching.Add(1)
	go func() {
		defer e.searching.Done()
		result := e.runSearch(limits, func(r search.Result) {
			e.writeInfo(r, time.Since(start))
		})
		e.lastBest = result.BestMove
		e.writeln("bestmove " + moveUCIOrNone(result.BestMove))
	}()
}

// runSearch calls search.Search and recovers any panic raised during the
// search, such as a board.AssertValid failure in a chessicadebug build,
// reporting a null best move ("bestmove 0000") instead of letting a single
// bad position take down the whole engine process. The recovery is the same
// in every build: a chessicadebug build does not terminate on such a
// failure either. onDepth is forwarded
// to search.Search so the caller gets one "info" line per completed depth
// instead of only a final summary.
func (e *Engine) runSearch(limits search.Limits, onDepth func(search.Result)) (result search.Result) {
	defer func() {
		if r := recover(); r != nil {
			xlog.Printf("search panic recovered: %v", r)
			result = search.Result{BestMove: board.NullMove}
		}
	}()
	return search.Search(e.game, limits, &e.ctrl, onDepth)
}

func (e *Engine) handleStop() {
	e.ctrl.Stop()
	e.searching.Wait()
}

func parseGoArgs(args []string) search.Limits {
	var limits search.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if n, ok := intArg(args, i); ok {
				limits.Depth = n
			}
		case "movetime":
			i++
			if n, ok := intArg(args, i); ok {
				limits.MoveTime = time.Duration(n) * time.Millisecond
			}
		case "wtime":
			i++
			if n, ok := intArg(args, i); ok {
				limits.WTime = time.Duration(n) * time.Millisecond
			}
		case "btime":
			i++
			if n, ok := intArg(args, i); ok {
				limits.BTime = time.Duration(n) * time.Millisecond
			}
		case "winc":
			i++
			if n, ok := intArg(args, i); ok {
				limits.WInc = time.Duration(n) * time.Millisecond
			}
		case "binc":
			i++
			if n, ok := intArg(args, i); ok {
				limits.BInc = time.Duration(n) * time.Millisecond
			}
		case "movestogo":
			i++
			if n, ok := intArg(args, i); ok {
				limits.MovesToGo = n
			}
		case "infinite":
			limits.Depth = 64
		}
	}
	return limits
}

func intArg(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		xlog.Printf("expected a number, got %q", args[i])
		return 0, false
	}
	return n, true
}

func (e *Engine) writeInfo(result search.Result, elapsed time.Duration) {
	score := scoreToUCI(result.Score)
	e.writeln(fmt.Sprintf("info depth %d score %s nodes %d time %d pv %s",
		result.Depth, score, result.Nodes, elapsed.Milliseconds(), moveUCIOrNone(result.BestMove)))
}

// scoreToUCI formats a Score as either "cp <centipawns>" or, near a forced
// mate, "mate <plies-to-mate/2>" per the UCI protocol.
func scoreToUCI(score eval.Score) string {
	const mateThreshold = eval.MATE - 64 // beyond any depth this engine searches
	switch {
	case score >= mateThreshold:
		pliesToMate := eval.MATE - score
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	case score <= -mateThreshold:
		pliesToMate := eval.MATE + score
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	default:
		return fmt.Sprintf("cp %d", score)
	}
}

func moveUCIOrNone(m board.Move) string {
	if m == board.NullMove {
		return "0000"
	}
	return m.UCI()
}

func (e *Engine) writeln(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.out, s)
}
