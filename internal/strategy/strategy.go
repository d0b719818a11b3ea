package strategy

import (
	"fmt"
	"strings"
)

// Pairing is a match between two roster slots. Slots are zero-based.
type Pairing struct {
	Home int
	Away int
}

// Strategy generates the rounds of pairings for a league of teamCount slots.
type Strategy interface {
	Rounds(teamCount int) [][]Pairing
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "round_robin":
		return &RoundRobin{}, nil
	case "double_round_robin":
		return &RoundRobin{Legs: 2}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q (known: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the registered strategies.
func Names() []string {
	return []string{"round_robin", "double_round_robin"}
}

// RoundRobin plays every pair once per leg using Berger tables. Each later
// leg repeats the first with home and away swapped on alternate legs, so a
// double round robin is exactly balanced and a single one is within one.
type RoundRobin struct {
	Legs int
}

func (s *RoundRobin) Rounds(teamCount int) [][]Pairing {
	legs := s.Legs
	if legs < 1 {
		legs = 1
	}
	first := bergerRounds(teamCount)

	var rounds [][]Pairing
	for leg := 0; leg < legs; leg++ {
		for _, round := range first {
			r := make([]Pairing, len(round))
			for i, p := range round {
				if leg%2 == 1 {
					p = Pairing{Home: p.Away, Away: p.Home}
				}
				r[i] = p
			}
			rounds = append(rounds, r)
		}
	}
	return rounds
}

// bergerRounds builds a single round robin. An odd roster gets a phantom slot
// and pairings against it are byes, which are dropped.
func bergerRounds(teamCount int) [][]Pairing {
	if teamCount < 2 {
		return nil
	}
	n := teamCount
	if n%2 == 1 {
		n++
	}
	fixed := n - 1

	var rounds [][]Pairing
	for r := 0; r < n-1; r++ {
		var round []Pairing
		for i := 0; i < n/2; i++ {
			home := (r + i) % (n - 1)
			away := (n - 1 - i + r) % (n - 1)
			if i == 0 {
				away = fixed
				if r%2 == 1 {
					home, away = away, home
				}
			}
			if home >= teamCount || away >= teamCount {
				continue
			}
			round = append(round, Pairing{Home: home, Away: away})
		}
		rounds = append(rounds, round)
	}
	return rounds
}
