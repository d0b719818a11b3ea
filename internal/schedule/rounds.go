package schedule

import (
	"fmt"
	"time"

	"github.com/derekprior/fixtures/internal/strategy"
)

// RoundSlot is a date/time and court available to one round.
type RoundSlot struct {
	DateTime time.Time
	Court    string
}

// TemplatesFromRounds plays the pairings of round i in the slots of round i,
// in order. Spare slots in a round stay empty.
func TemplatesFromRounds(rounds [][]RoundSlot, pairings [][]strategy.Pairing) ([]FixtureTemplate, error) {
	if len(rounds) != len(pairings) {
		return nil, fmt.Errorf("strategy needs %d rounds, %d configured", len(pairings), len(rounds))
	}

	var fixtures []FixtureTemplate
	for i, round := range pairings {
		if len(round) > len(rounds[i]) {
			return nil, fmt.Errorf("round %d needs %d slots, %d configured", i+1, len(round), len(rounds[i]))
		}
		for j, p := range round {
			slot := rounds[i][j]
			fixtures = append(fixtures, FixtureTemplate{
				DateTime: slot.DateTime,
				Court:    slot.Court,
				HomeSlot: p.Home,
				AwaySlot: p.Away,
			})
		}
	}
	return fixtures, nil
}
