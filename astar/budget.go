package astar

import (
	"runtime"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// Budget is the process-wide memory ceiling. The search loop polls it so a
// runaway expansion turns into a distinguishable resource-exhausted result
// instead of taking the whole machine down; a supervisor can then retry
// the deal with different parameters or discard it.
type Budget struct {
	// LimitBytes is compared against the process heap in use. Zero means
	// no ceiling.
	LimitBytes uint64
}

// DefaultBudget caps the heap at half of total system memory.
func DefaultBudget() *Budget {
	total := memory.TotalMemory()
	b := &Budget{LimitBytes: total / 2}
	log.Debug().Uint64("total-system-memory-bytes", total).
		Uint64("limit-bytes", b.LimitBytes).
		Msg("memory-budget")
	return b
}

// Exceeded reports whether the process heap has outgrown the ceiling. It
// reads runtime memstats, which is not free, so callers poll it at a
// coarse interval rather than per node.
func (b *Budget) Exceeded() bool {
	if b == nil || b.LimitBytes == 0 {
		return false
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc > b.LimitBytes
}
