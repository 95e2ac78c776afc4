package board

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/domino14/solsolver/card"
)

// ParseDeal reads the initial layout: up to NumPiles non-blank lines, each
// a comma-separated list of card tokens. Blank lines separate piles and
// are skipped. Tokens are pushed in file order, so the last token on a
// line is that pile's exposed card. Any unrecognized token is fatal.
func ParseDeal(r io.Reader) (*Board, error) {
	b := New()
	scanner := bufio.NewScanner(r)
	pile := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if pile >= NumPiles {
			return nil, fmt.Errorf("deal has more than %d piles", NumPiles)
		}
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			c, err := card.Parse(token)
			if err != nil {
				return nil, err
			}
			b.Push(pile, c)
		}
		pile++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}
