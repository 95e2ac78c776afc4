// Package astar implements the solver's frontier search. Despite the
// name it is best-first rather than textbook A*: every edge costs zero
// and the ordering comes entirely from the cards-remaining heuristic,
// which is not admissible in degenerate held-card positions. Solution
// quality comes from racing several pruning variants against each other,
// not from this search alone.
package astar

import (
	"container/heap"
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/domino14/solsolver/board"
	"github.com/domino14/solsolver/move"
	"github.com/domino14/solsolver/movegen"
)

var (
	// ErrNoSolution means the frontier was exhausted. It is an expected
	// outcome for hard deals, not a failure.
	ErrNoSolution = errors.New("no solution found")
	// ErrMemoryBudget means the process memory ceiling was hit mid-search.
	ErrMemoryBudget = errors.New("memory budget exceeded")
)

// budgetPollInterval is how many expansions go between memstats reads.
const budgetPollInterval = 4096

type node struct {
	b       *board.Board
	m       move.Move
	hasMove bool
	parent  *node
	h       int
	// index is maintained by the heap.
	index int
}

type frontier []*node

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].h < f[j].h }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index = i; f[j].index = j }
func (f *frontier) Push(x interface{}) { n := x.(*node); n.index = len(*f); *f = append(*f, n) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// Solver is a single sequential search instance. It owns its own visited
// table and shares nothing with other instances.
type Solver struct {
	gen    *movegen.Generator
	budget *Budget

	// requireEmptyHold tightens the goal test so a board with a parked
	// card does not count as solved. The game itself treats all-piles-empty
	// as done even with the slot occupied, so this defaults to off.
	requireEmptyHold bool

	nodes uint64
}

func NewSolver(gen *movegen.Generator, budget *Budget) *Solver {
	return &Solver{gen: gen, budget: budget}
}

func (s *Solver) SetRequireEmptyHold(r bool) {
	s.requireEmptyHold = r
}

// Nodes returns how many states the last Solve expanded.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) isGoal(b *board.Board) bool {
	if !b.Done() {
		return false
	}
	if s.requireEmptyHold {
		if _, held := b.Held(); held {
			return false
		}
	}
	return true
}

// Solve runs best-first search from start and returns the move sequence
// of the first goal state reached. The start board is not mutated; it
// should already be cascade-resolved. Returns ErrNoSolution on frontier
// exhaustion and ErrMemoryBudget if the process ceiling is hit.
func (s *Solver) Solve(ctx context.Context, start *board.Board) ([]move.Move, error) {
	s.nodes = 0

	root := &node{b: start, h: start.CardsRemaining()}
	if s.isGoal(start) {
		return []move.Move{}, nil
	}

	f := &frontier{}
	heap.Init(f)
	heap.Push(f, root)
	visited := map[uint64]struct{}{start.Fingerprint(): {}}

	for f.Len() > 0 {
		if s.nodes%budgetPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if s.budget.Exceeded() {
				log.Info().Uint64("nodes", s.nodes).Int("window", s.gen.Window()).
					Msg("memory-budget-exceeded")
				return nil, ErrMemoryBudget
			}
		}

		n := heap.Pop(f).(*node)
		s.nodes++

		for _, play := range s.gen.GenAll(n.b) {
			fp := play.Board.Fingerprint()
			if _, seen := visited[fp]; seen {
				continue
			}
			visited[fp] = struct{}{}
			child := &node{
				b:       play.Board,
				m:       play.Move,
				hasMove: true,
				parent:  n,
				h:       play.Board.CardsRemaining(),
			}
			if s.isGoal(play.Board) {
				path := reconstruct(child)
				log.Info().Uint64("nodes", s.nodes).Int("window", s.gen.Window()).
					Int("moves", len(path)).Msg("solution-found")
				return path, nil
			}
			heap.Push(f, child)
		}
	}

	log.Info().Uint64("nodes", s.nodes).Int("window", s.gen.Window()).
		Msg("frontier-exhausted")
	return nil, ErrNoSolution
}

func reconstruct(n *node) []move.Move {
	var path []move.Move
	for ; n != nil; n = n.parent {
		if n.hasMove {
			path = append(path, n.m)
		}
	}
	// reverse into start-to-goal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
