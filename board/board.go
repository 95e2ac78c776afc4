// Package board encapsulates the full game position: the eleven tableau
// piles, the two trump foundations, the four suit foundations, the
// single-card holding slot, and a bounded window of recent moves used only
// for search pruning.
package board

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/solsolver/card"
	"github.com/domino14/solsolver/move"
)

const NumPiles = 11

// MaxRecentMoves bounds the recent-move window. It must be at least as
// large as the biggest stagnation window any search variant uses.
const MaxRecentMoves = 15

// Board is the mutable game position. It is built once from the deal and
// then only ever branched via Copy; a board published as a search node is
// never mutated again.
type Board struct {
	piles     [NumPiles][]card.Card
	trumpLow  []card.Card // grows upward from rank 0
	trumpHigh []card.Card // grows downward from rank 21
	suits     [card.NumSuits][]card.Card
	held      card.Card
	hasHeld   bool

	// recent is newest-last and capped at MaxRecentMoves. It is excluded
	// from Fingerprint: two boards with identical piles, foundations and
	// held card are the same search state regardless of history.
	recent []move.Move
}

// New returns an empty board with each suit foundation pre-seeded with its
// ace, the way the table is set up before the deal.
func New() *Board {
	b := &Board{}
	for s := 0; s < card.NumSuits; s++ {
		b.suits[s] = append(b.suits[s], card.NewMinor(card.Suit(s), card.MinorAce))
	}
	return b
}

// Copy returns a fresh, independently owned board.
func (b *Board) Copy() *Board {
	nb := &Board{hasHeld: b.hasHeld, held: b.held}
	for i := range b.piles {
		nb.piles[i] = append([]card.Card(nil), b.piles[i]...)
	}
	nb.trumpLow = append([]card.Card(nil), b.trumpLow...)
	nb.trumpHigh = append([]card.Card(nil), b.trumpHigh...)
	for s := range b.suits {
		nb.suits[s] = append([]card.Card(nil), b.suits[s]...)
	}
	nb.recent = append([]move.Move(nil), b.recent...)
	return nb
}

func (b *Board) PileLen(i int) int {
	return len(b.piles[i])
}

// Top returns pile i's exposed card.
func (b *Board) Top(i int) (card.Card, bool) {
	p := b.piles[i]
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1], true
}

// Pop removes and returns pile i's exposed card. Popping an empty pile is
// a logic defect in the caller and fails loudly.
func (b *Board) Pop(i int) card.Card {
	p := b.piles[i]
	if len(p) == 0 {
		panic("pop from empty pile")
	}
	c := p[len(p)-1]
	b.piles[i] = p[:len(p)-1]
	return c
}

func (b *Board) Push(i int, c card.Card) {
	b.piles[i] = append(b.piles[i], c)
}

func (b *Board) Held() (card.Card, bool) {
	return b.held, b.hasHeld
}

// SetHeld places a card in the holding slot. At most one card may be held;
// overwriting a held card is a logic defect.
func (b *Board) SetHeld(c card.Card) {
	if b.hasHeld {
		panic("holding slot already occupied")
	}
	b.held = c
	b.hasHeld = true
}

// TakeHeld removes and returns the held card.
func (b *Board) TakeHeld() card.Card {
	if !b.hasHeld {
		panic("holding slot is empty")
	}
	b.hasHeld = false
	return b.held
}

// Done reports whether every tableau pile is empty. The holding slot is
// deliberately not part of this check; callers that want a stricter goal
// apply their own policy on top.
func (b *Board) Done() bool {
	for i := range b.piles {
		if len(b.piles[i]) != 0 {
			return false
		}
	}
	return true
}

// CardsRemaining counts the cards still in the tableau, plus one for an
// occupied holding slot. It is the search heuristic; it can overestimate
// progress in degenerate held-card positions, so it guides a best-first
// search rather than proving optimality.
func (b *Board) CardsRemaining() int {
	n := 0
	for i := range b.piles {
		n += len(b.piles[i])
	}
	if b.hasHeld {
		n++
	}
	return n
}

// TotalCards counts every card on the board, foundations and holding slot
// included. It is constant across all boards reachable from one deal.
func (b *Board) TotalCards() int {
	n := b.CardsRemaining()
	n += len(b.trumpLow) + len(b.trumpHigh)
	for s := range b.suits {
		n += len(b.suits[s])
	}
	return n
}

// PushRecent appends a move to the recent-move window, dropping the oldest
// entry once the window is full.
func (b *Board) PushRecent(m move.Move) {
	b.recent = append(b.recent, m)
	if len(b.recent) > MaxRecentMoves {
		b.recent = b.recent[1:]
	}
}

func (b *Board) RecentLen() int {
	return len(b.recent)
}

// SucksInRecent sums the sucked-card counts over the most recent n moves.
func (b *Board) SucksInRecent(n int) int {
	start := len(b.recent) - n
	if start < 0 {
		start = 0
	}
	sum := 0
	for _, m := range b.recent[start:] {
		sum += m.Sucks
	}
	return sum
}

const (
	fpSeparator = 0xFF
	fpEmptyHold = 0xFE
)

// Fingerprint hashes the board's content: piles, foundations and held
// card, with move history excluded. Foundations are fully determined by
// their tops, so only lengths are hashed for them.
func (b *Board) Fingerprint() uint64 {
	buf := make([]byte, 0, 96)
	for i := range b.piles {
		for _, c := range b.piles[i] {
			buf = append(buf, byte(c))
		}
		buf = append(buf, fpSeparator)
	}
	buf = append(buf, byte(len(b.trumpLow)), byte(len(b.trumpHigh)))
	for s := range b.suits {
		buf = append(buf, byte(len(b.suits[s])))
	}
	if b.hasHeld {
		buf = append(buf, byte(b.held))
	} else {
		buf = append(buf, fpEmptyHold)
	}
	return xxhash.Sum64(buf)
}

// String renders the position for debug output.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("trump-low: ")
	writePile(&sb, b.trumpLow)
	sb.WriteString("\ntrump-high: ")
	writePile(&sb, b.trumpHigh)
	for s := range b.suits {
		sb.WriteString("\n")
		sb.WriteString(card.Suit(s).String())
		sb.WriteString(": ")
		writePile(&sb, b.suits[s])
	}
	sb.WriteString("\nhold: ")
	if b.hasHeld {
		sb.WriteString(b.held.String())
	} else {
		sb.WriteString("(empty)")
	}
	for i := range b.piles {
		fmt.Fprintf(&sb, "\npile %2d: ", i)
		writePile(&sb, b.piles[i])
	}
	return sb.String()
}

func writePile(sb *strings.Builder, pile []card.Card) {
	for i, c := range pile {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(c.String())
	}
}
