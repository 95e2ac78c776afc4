// Package race runs several search variants concurrently, one per
// stagnation-window configuration, and keeps the shortest successful move
// sequence. The variants share nothing: each gets its own copy of the
// start board and its own visited table, and the only synchronization is
// the join at the end.
package race

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/solsolver/astar"
	"github.com/domino14/solsolver/board"
	"github.com/domino14/solsolver/move"
	"github.com/domino14/solsolver/movegen"
)

// DefaultWindows are the raced stagnation windows. UnboundedWindow keeps
// the old no-pruning behavior in the mix; sometimes it finds solutions
// the pruned variants merge away.
var DefaultWindows = []int{5, 10, 15, movegen.UnboundedWindow}

// Result is the outcome of one variant.
type Result struct {
	Window int         `yaml:"window"`
	Moves  []move.Move `yaml:"-"`
	Nodes  uint64      `yaml:"nodes"`
	Err    error       `yaml:"-"`

	// yaml-only mirrors for the race log.
	NumMoves int    `yaml:"moves"`
	Outcome  string `yaml:"outcome"`
}

// Controller fans the variants out and reduces their results.
type Controller struct {
	windows          []int
	budget           *astar.Budget
	requireEmptyHold bool

	// earlyExitOptim cancels the remaining variants as soon as one
	// succeeds. It changes which solution is returned when several
	// variants would succeed with different lengths, so it is an explicit
	// mode, off by default.
	earlyExitOptim bool

	// logStream, if set, receives one YAML document per finished variant.
	logStream io.Writer
}

func NewController(budget *astar.Budget) *Controller {
	return &Controller{windows: DefaultWindows, budget: budget}
}

func (c *Controller) SetWindows(windows []int) {
	c.windows = windows
}

func (c *Controller) SetRequireEmptyHold(r bool) {
	c.requireEmptyHold = r
}

func (c *Controller) SetEarlyExitOptim(e bool) {
	c.earlyExitOptim = e
}

func (c *Controller) SetLogStream(w io.Writer) {
	c.logStream = w
}

// Run races one solver per window over private copies of start and
// returns the shortest successful result. If no variant succeeds it
// returns astar.ErrNoSolution, unless a variant ran into the memory
// ceiling, which wins: the supervisor must be able to tell "provably
// stuck" apart from "out of resources, maybe retry".
func (c *Controller) Run(ctx context.Context, start *board.Board) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(c.windows))
	g := errgroup.Group{}
	for idx, window := range c.windows {
		idx, window := idx, window
		g.Go(func() error {
			solver := astar.NewSolver(movegen.NewGenerator(window), c.budget)
			solver.SetRequireEmptyHold(c.requireEmptyHold)
			moves, err := solver.Solve(ctx, start.Copy())
			results[idx] = Result{
				Window: window,
				Moves:  moves,
				Nodes:  solver.Nodes(),
				Err:    err,
			}
			if err == nil && c.earlyExitOptim {
				cancel()
			}
			return nil
		})
	}
	// the goroutines record errors per-variant rather than returning them.
	_ = g.Wait()

	for i := range results {
		c.logResult(&results[i])
	}

	return pickBest(results)
}

// pickBest reduces the variant results: the successful path with the
// fewest moves wins.
func pickBest(results []Result) (*Result, error) {
	successes := lo.Filter(results, func(r Result, _ int) bool {
		return r.Err == nil
	})
	if len(successes) > 0 {
		best := lo.MinBy(successes, func(a, b Result) bool {
			return len(a.Moves) < len(b.Moves)
		})
		return &best, nil
	}
	for _, r := range results {
		if errors.Is(r.Err, astar.ErrMemoryBudget) {
			return nil, astar.ErrMemoryBudget
		}
	}
	return nil, astar.ErrNoSolution
}

func (c *Controller) logResult(r *Result) {
	evt := log.Info().Int("window", r.Window).Uint64("nodes", r.Nodes)
	switch {
	case r.Err == nil:
		evt.Int("moves", len(r.Moves)).Msg("variant-solved")
	default:
		evt.AnErr("err", r.Err).Msg("variant-failed")
	}
	if c.logStream == nil {
		return
	}
	r.NumMoves = len(r.Moves)
	r.Outcome = "solved"
	if r.Err != nil {
		r.Outcome = r.Err.Error()
	}
	out, err := yaml.Marshal([]*Result{r})
	if err != nil {
		log.Err(err).Msg("marshalling race log")
		return
	}
	c.logStream.Write(out)
}
