package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/solsolver/card"
	"github.com/domino14/solsolver/move"
)

func shuffleOrder(order []int) {
	frand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}

func TestParseDeal(t *testing.T) {
	is := is.New(t)
	deal := `3_SWO,2_SWO

5_WAN,21_MAJ
`
	b, err := ParseDeal(strings.NewReader(deal))
	is.NoErr(err)
	// blank lines are skipped, so the two non-blank lines fill piles 0 and 1.
	is.Equal(b.PileLen(0), 2)
	is.Equal(b.PileLen(1), 2)
	is.Equal(b.PileLen(2), 0)
	// the last token on a line is the exposed card.
	top, ok := b.Top(0)
	is.True(ok)
	is.Equal(top, card.NewMinor(card.Sword, 2))
	top, ok = b.Top(1)
	is.True(ok)
	is.Equal(top, card.NewMajor(21))
	// aces are pre-seeded: 4 cards dealt + 4 aces.
	is.Equal(b.TotalCards(), 8)
}

func TestParseDealBadToken(t *testing.T) {
	is := is.New(t)
	_, err := ParseDeal(strings.NewReader("3_SWO,2_PEN"))
	if err == nil {
		t.Fatal("expected error")
	}
	is.True(strings.Contains(err.Error(), "2_PEN"))
}

func TestParseDealTooManyPiles(t *testing.T) {
	deal := strings.Repeat("2_MAJ\n", NumPiles+1)
	if _, err := ParseDeal(strings.NewReader(deal)); err == nil {
		t.Fatal("expected error")
	}
}

// Scenario: a single pile whose cards cascade off in order with zero
// manual moves.
func TestCascadeSinglePile(t *testing.T) {
	is := is.New(t)
	b := New()
	b.Push(0, card.NewMinor(card.Sword, 3))
	b.Push(0, card.NewMinor(card.Sword, 2))

	sucked := b.Cascade()
	is.Equal(sucked, []card.Card{
		card.NewMinor(card.Sword, 2),
		card.NewMinor(card.Sword, 3),
	})
	is.True(b.Done())
	is.Equal(b.TotalCards(), 6)
}

// Scenario: a suck on one pile exposes progress on another within the
// same resolver invocation.
func TestCascadeAcrossPiles(t *testing.T) {
	is := is.New(t)
	b := New()
	b.Push(0, card.NewMinor(card.Sword, 3))
	b.Push(1, card.NewMinor(card.Sword, 2))

	sucked := b.Cascade()
	is.Equal(len(sucked), 2)
	is.True(b.Done())
}

func TestCascadeTrumps(t *testing.T) {
	is := is.New(t)
	b := New()
	b.Push(0, card.NewMajor(1))
	b.Push(0, card.NewMajor(0))
	b.Push(1, card.NewMajor(21))
	b.Push(2, card.NewMajor(20))

	sucked := b.Cascade()
	is.Equal(len(sucked), 4)
	is.True(b.Done())
	// re-running on a fixpoint board is a no-op.
	is.Equal(len(b.Cascade()), 0)
}

func TestCascadeHeldCard(t *testing.T) {
	is := is.New(t)
	b := New()
	b.SetHeld(card.NewMinor(card.Cup, 2))
	sucked := b.Cascade()
	is.Equal(sucked, []card.Card{card.NewMinor(card.Cup, 2)})
	_, held := b.Held()
	is.True(!held)
}

func TestCascadeIdempotent(t *testing.T) {
	is := is.New(t)
	b := New()
	b.Push(0, card.NewMinor(card.Wand, 5))
	b.Push(0, card.NewMinor(card.Wand, 2))
	b.Push(1, card.NewMajor(7))

	b.Cascade()
	before := b.Fingerprint()
	again := b.Cascade()
	is.Equal(len(again), 0)
	is.Equal(b.Fingerprint(), before)
}

func TestCascadeConfluence(t *testing.T) {
	is := is.New(t)
	// several piles ready to advance at once; the fixpoint must not depend
	// on scan order.
	build := func() *Board {
		b := New()
		b.Push(0, card.NewMinor(card.Sword, 3))
		b.Push(1, card.NewMinor(card.Sword, 2))
		b.Push(2, card.NewMajor(0))
		b.Push(3, card.NewMajor(21))
		b.Push(4, card.NewMinor(card.Cup, 2))
		b.Push(5, card.NewMinor(card.Star, 5))
		b.Push(5, card.NewMinor(card.Star, 2))
		return b
	}

	reference := build()
	reference.Cascade()
	want := reference.Fingerprint()

	order := make([]int, NumPiles)
	for i := range order {
		order[i] = i
	}
	for trial := 0; trial < 50; trial++ {
		shuffleOrder(order)
		b := build()
		b.cascadeOrder(order)
		is.Equal(b.Fingerprint(), want)
	}
}

// A board with all piles empty is done even while a card is parked in the
// holding slot. The search layers on a stricter policy if asked to.
func TestDoneIgnoresHold(t *testing.T) {
	is := is.New(t)
	b := New()
	is.True(b.Done())
	b.SetHeld(card.NewMinor(card.Cup, 9))
	is.True(b.Done())
	is.Equal(b.CardsRemaining(), 1)
}

func TestFingerprintExcludesHistory(t *testing.T) {
	is := is.New(t)
	a := New()
	a.Push(0, card.NewMinor(card.Wand, 9))
	b := a.Copy()
	b.PushRecent(move.Move{Card: card.NewMinor(card.Wand, 9), Sucks: 2})
	is.Equal(a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintSensitivity(t *testing.T) {
	is := is.New(t)
	a := New()
	a.Push(0, card.NewMinor(card.Wand, 9))
	b := New()
	b.Push(1, card.NewMinor(card.Wand, 9))
	is.True(a.Fingerprint() != b.Fingerprint())

	c := New()
	c.SetHeld(card.NewMinor(card.Wand, 9))
	is.True(a.Fingerprint() != c.Fingerprint())
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	a := New()
	a.Push(0, card.NewMinor(card.Wand, 9))
	a.Push(0, card.NewMinor(card.Wand, 5))
	b := a.Copy()
	b.Pop(0)
	b.SetHeld(card.NewMinor(card.Cup, 4))
	is.Equal(a.PileLen(0), 2)
	_, held := a.Held()
	is.True(!held)
}

func TestRecentWindow(t *testing.T) {
	is := is.New(t)
	b := New()
	for i := 0; i < MaxRecentMoves+5; i++ {
		sucks := 0
		if i == 3 {
			sucks = 2
		}
		b.PushRecent(move.Move{Sucks: sucks})
	}
	is.Equal(b.RecentLen(), MaxRecentMoves)
	// the sucky move at i=3 has been evicted from the window.
	is.Equal(b.SucksInRecent(MaxRecentMoves), 0)

	b.PushRecent(move.Move{Sucks: 3})
	is.Equal(b.SucksInRecent(1), 3)
	is.Equal(b.SucksInRecent(5), 3)
}

func TestConservation(t *testing.T) {
	is := is.New(t)
	deal := `3_SWO,2_SWO
5_WAN,21_MAJ
0_MAJ,Q_CUP
7_STA`
	b, err := ParseDeal(strings.NewReader(deal))
	is.NoErr(err)
	total := b.TotalCards()
	b.Cascade()
	is.Equal(b.TotalCards(), total)
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New().Pop(0)
}
