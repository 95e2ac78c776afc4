// Package move contains the move and location value types, and the flat
// text serialization consumed by the replay automation downstream.
package move

import (
	"fmt"

	"github.com/domino14/solsolver/card"
)

// Location is either the single-card holding slot or a position in a
// tableau pile. Depth is the index the card occupied (or will occupy) at
// the time of the move; it exists for downstream replay and diagnostics
// and takes no part in board identity.
type Location struct {
	Pile  int
	Depth int
	Hold  bool
}

func HoldLocation() Location {
	return Location{Hold: true}
}

func PileLocation(pile, depth int) Location {
	return Location{Pile: pile, Depth: depth}
}

// Serialize renders the location in the wire format: "BLOCK" for the
// holding slot, "pile:depth" otherwise.
func (l Location) Serialize() string {
	if l.Hold {
		return "BLOCK"
	}
	return fmt.Sprintf("%d:%d", l.Pile, l.Depth)
}

func (l Location) String() string {
	if l.Hold {
		return "BLOCK"
	}
	return fmt.Sprintf("%d", l.Pile)
}

// Move records one manual action. Sucks is the number of cards the cascade
// resolver pulled into foundations immediately after the action; the
// automation side uses it to decide how long to wait before the next move.
type Move struct {
	From  Location
	To    Location
	Card  card.Card
	Sucks int
}

// Serialize renders the move in the wire format: "<from>-<to>@<sucks>".
func (m Move) Serialize() string {
	return fmt.Sprintf("%s-%s@%d", m.From.Serialize(), m.To.Serialize(), m.Sucks)
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%v %v -> %v", m.Card, m.From, m.To)
}

func (m Move) String() string {
	return fmt.Sprintf("<move %v %v -> %v sucks %d>", m.Card, m.From, m.To, m.Sucks)
}
