package board

import "github.com/domino14/solsolver/card"

// Cascade repeatedly advances every eligible exposed card (and the held
// card) into the foundations until a full pass makes no change. Rules are
// tried in a fixed priority for each card: suit foundation, then the
// ascending trump foundation, then the descending one. It returns the
// cards advanced, in the order they were pulled in.
//
// Cascade is idempotent, and the fixpoint it reaches does not depend on
// the order piles are scanned in: a card eligible for a foundation stays
// eligible until it is the one advanced, and no advance can disable
// another pending advance.
func (b *Board) Cascade() []card.Card {
	return b.cascadeOrder(nil)
}

// cascadeOrder runs the cascade scanning piles in the given order, or
// 0..NumPiles-1 if order is nil. The order only exists so tests can verify
// confluence; the fixpoint is the same for any permutation.
func (b *Board) cascadeOrder(order []int) []card.Card {
	var sucked []card.Card

	changed := true
	for changed {
		changed = false

		for i := 0; i < NumPiles; i++ {
			pile := i
			if order != nil {
				pile = order[i]
			}
			top, ok := b.Top(pile)
			if !ok {
				continue
			}
			if b.tryAdvance(top) {
				b.Pop(pile)
				sucked = append(sucked, top)
				changed = true
			}
		}

		if b.hasHeld && b.tryAdvance(b.held) {
			sucked = append(sucked, b.TakeHeld())
			changed = true
		}
	}

	return sucked
}

// tryAdvance pushes c onto the first foundation that accepts it and
// reports whether it did. The caller removes c from its source.
func (b *Board) tryAdvance(c card.Card) bool {
	if !c.IsMajor() {
		s := c.Suit()
		top := b.suits[s][len(b.suits[s])-1]
		if c.IsSuccessorOf(top) {
			b.suits[s] = append(b.suits[s], c)
			return true
		}
		return false
	}

	if len(b.trumpLow) == 0 {
		if c.Rank() == card.MajorLow {
			b.trumpLow = append(b.trumpLow, c)
			return true
		}
	} else if c.IsSuccessorOf(b.trumpLow[len(b.trumpLow)-1]) {
		b.trumpLow = append(b.trumpLow, c)
		return true
	}

	if len(b.trumpHigh) == 0 {
		if c.Rank() == card.MajorHigh {
			b.trumpHigh = append(b.trumpHigh, c)
			return true
		}
	} else if c.IsPredecessorOf(b.trumpHigh[len(b.trumpHigh)-1]) {
		b.trumpHigh = append(b.trumpHigh, c)
		return true
	}

	return false
}
