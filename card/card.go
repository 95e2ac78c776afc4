// Package card contains the card and rank model for the tarot patience
// deck: 22 major arcana ranked 0-21, and four minor suits ranked ace
// through king.
package card

import (
	"fmt"
	"strconv"
)

// Suit is one of the four minor suits.
type Suit uint8

const (
	Sword Suit = iota
	Wand
	Cup
	Star
)

const NumSuits = 4

const (
	MinorAce  = 1
	MinorKing = 13
	MajorLow  = 0
	MajorHigh = 21
)

// Card packs a whole card into a byte. Minor cards store suit in the high
// nibble and rank (1-13) in the low nibble; major cards set the top bit and
// store rank (0-21) in the low bits. The zero value is not a valid card.
type Card uint8

const majorFlag = 0x80

func NewMinor(suit Suit, rank uint8) Card {
	return Card(uint8(suit)<<4 | rank)
}

func NewMajor(rank uint8) Card {
	return Card(majorFlag | rank)
}

func (c Card) IsMajor() bool {
	return c&majorFlag != 0
}

// Rank returns the rank within the card's own domain: 1-13 for minors,
// 0-21 for majors.
func (c Card) Rank() uint8 {
	if c.IsMajor() {
		return uint8(c &^ majorFlag)
	}
	return uint8(c & 0x0F)
}

// Suit is only meaningful for minor cards.
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

// IsSuccessorOf returns true iff c and other share a domain (both major, or
// minors of the same suit) and c's rank is exactly one above other's.
func (c Card) IsSuccessorOf(other Card) bool {
	if c.IsMajor() != other.IsMajor() {
		return false
	}
	if !c.IsMajor() && c.Suit() != other.Suit() {
		return false
	}
	return c.Rank() == other.Rank()+1
}

// IsPredecessorOf is the mirror of IsSuccessorOf.
func (c Card) IsPredecessorOf(other Card) bool {
	return other.IsSuccessorOf(c)
}

// IsAdjacent returns true if the two cards are in the same domain and their
// ranks differ by exactly one, in either direction.
func (c Card) IsAdjacent(other Card) bool {
	return c.IsSuccessorOf(other) || c.IsPredecessorOf(other)
}

var minorRankNames = map[uint8]string{
	1: "A", 11: "J", 12: "Q", 13: "K",
}

var suitCodes = [NumSuits]string{"SWO", "WAN", "CUP", "STA"}

func (s Suit) String() string {
	return suitCodes[s]
}

// String renders the card in the same VALUE_SUIT token format the deal
// reader accepts.
func (c Card) String() string {
	if c.IsMajor() {
		return fmt.Sprintf("%d_MAJ", c.Rank())
	}
	rank := c.Rank()
	if name, ok := minorRankNames[rank]; ok {
		return name + "_" + c.Suit().String()
	}
	return fmt.Sprintf("%d_%s", rank, c.Suit())
}

func parseSuit(code string) (Suit, error) {
	for i, sc := range suitCodes {
		if code == sc {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unrecognized suit code %q", code)
}

func parseMinorRank(tok string) (uint8, error) {
	switch tok {
	case "A":
		return 1, nil
	case "J":
		return 11, nil
	case "Q":
		return 12, nil
	case "K":
		return 13, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("unrecognized minor rank %q", tok)
	}
	return uint8(n), nil
}

// Parse parses a VALUE_SUIT token such as "Q_CUP" or "13_MAJ". A malformed
// token is a fatal condition for the caller; the deal cannot be trusted.
func Parse(token string) (Card, error) {
	sep := -1
	for i := 0; i < len(token); i++ {
		if token[i] == '_' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return 0, fmt.Errorf("malformed card token %q", token)
	}
	value, suitCode := token[:sep], token[sep+1:]
	if suitCode == "MAJ" {
		n, err := strconv.Atoi(value)
		if err != nil || n < MajorLow || n > MajorHigh {
			return 0, fmt.Errorf("unrecognized major rank %q in token %q", value, token)
		}
		return NewMajor(uint8(n)), nil
	}
	suit, err := parseSuit(suitCode)
	if err != nil {
		return 0, fmt.Errorf("%v in token %q", err, token)
	}
	rank, err := parseMinorRank(value)
	if err != nil {
		return 0, fmt.Errorf("%v in token %q", err, token)
	}
	return NewMinor(suit, rank), nil
}
