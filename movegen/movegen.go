// Package movegen enumerates every legal manual move from a position:
// parking an exposed card in the holding slot, moving an exposed card
// between piles, and releasing the held card. Each generated play is a
// fresh board with the cascade already resolved.
package movegen

import (
	"github.com/domino14/solsolver/board"
	"github.com/domino14/solsolver/move"
)

// Play is one successor: the board after a manual move plus a full
// cascade, and the move that produced it.
type Play struct {
	Board *board.Board
	Move  move.Move
}

// UnboundedWindow disables the stagnation cutoff.
const UnboundedWindow = 0

// minimumProgress: a window whose moves sucked at most this many cards in
// total is considered stagnant.
const minimumProgress = 1

// Generator generates plays. Each search variant owns one, configured with
// its stagnation window.
type Generator struct {
	window int
}

func NewGenerator(stagnationWindow int) *Generator {
	if stagnationWindow > board.MaxRecentMoves {
		panic("stagnation window exceeds recent-move capacity")
	}
	return &Generator{window: stagnationWindow}
}

func (g *Generator) Window() int {
	return g.window
}

// GenAll returns every legal play from b. The input board is never
// mutated. If the recent-move window is full and made almost no
// foundation progress, the branch is stagnant and no plays are returned.
func (g *Generator) GenAll(b *board.Board) []Play {
	var plays []Play

	if g.window != UnboundedWindow &&
		b.RecentLen() >= g.window &&
		b.SucksInRecent(g.window) <= minimumProgress {
		return plays
	}

	heldCard, held := b.Held()

	for src := 0; src < board.NumPiles; src++ {
		srcCard, ok := b.Top(src)
		if !ok {
			continue
		}
		srcLen := b.PileLen(src)

		// Park the exposed card in the holding slot. Holding the sole
		// card of a singleton pile can never unblock anything a direct
		// move couldn't, so it is pruned.
		if !held && srcLen > 1 {
			plays = append(plays, g.applyHold(b, src))
		}

		for dst := 0; dst < board.NumPiles; dst++ {
			if dst == src {
				continue
			}
			dstCard, dstOccupied := b.Top(dst)
			// Moving a lone card to an empty pile is a no-op in effect.
			if srcLen == 1 && !dstOccupied {
				continue
			}
			if !dstOccupied || dstCard.IsAdjacent(srcCard) {
				plays = append(plays, g.applyPileMove(b, src, dst))
			}
		}
	}

	if held {
		for dst := 0; dst < board.NumPiles; dst++ {
			dstCard, dstOccupied := b.Top(dst)
			if !dstOccupied || dstCard.IsAdjacent(heldCard) {
				plays = append(plays, g.applyRelease(b, dst))
			}
		}
	}

	return plays
}

func (g *Generator) applyHold(b *board.Board, src int) Play {
	nb := b.Copy()
	c := nb.Pop(src)
	nb.SetHeld(c)
	sucked := nb.Cascade()
	m := move.Move{
		From:  move.PileLocation(src, b.PileLen(src)-1),
		To:    move.HoldLocation(),
		Card:  c,
		Sucks: len(sucked),
	}
	nb.PushRecent(m)
	return Play{Board: nb, Move: m}
}

func (g *Generator) applyPileMove(b *board.Board, src, dst int) Play {
	nb := b.Copy()
	c := nb.Pop(src)
	nb.Push(dst, c)
	sucked := nb.Cascade()
	m := move.Move{
		From:  move.PileLocation(src, b.PileLen(src)-1),
		To:    move.PileLocation(dst, b.PileLen(dst)),
		Card:  c,
		Sucks: len(sucked),
	}
	nb.PushRecent(m)
	return Play{Board: nb, Move: m}
}

func (g *Generator) applyRelease(b *board.Board, dst int) Play {
	nb := b.Copy()
	c := nb.TakeHeld()
	nb.Push(dst, c)
	sucked := nb.Cascade()
	m := move.Move{
		From:  move.HoldLocation(),
		To:    move.PileLocation(dst, b.PileLen(dst)),
		Card:  c,
		Sucks: len(sucked),
	}
	nb.PushRecent(m)
	return Play{Board: nb, Move: m}
}
