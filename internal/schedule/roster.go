package schedule

import (
	"github.com/derekprior/fixtures/internal/ident"
	"github.com/derekprior/fixtures/internal/placement"
	"github.com/derekprior/fixtures/internal/season"
)

type rosterEntry struct {
	team  season.Team
	avoid []int
}

// RosterBuilder collects a league's teams with the slots each must avoid and
// places them into slot order.
type RosterBuilder struct {
	ids      *ident.Registry
	oneBased bool
	entries  []rosterEntry
}

func NewRosterBuilder(ids *ident.Registry, oneBased bool) *RosterBuilder {
	return &RosterBuilder{ids: ids, oneBased: oneBased}
}

// Add registers a team, generating its id immediately.
func (b *RosterBuilder) Add(name string, avoid ...int) *RosterBuilder {
	off := 0
	if b.oneBased {
		off = 1
	}
	slots := make([]int, len(avoid))
	for i, s := range avoid {
		slots[i] = s - off
	}
	b.entries = append(b.entries, rosterEntry{
		team:  season.Team{ID: b.ids.Generate(name), Name: name},
		avoid: slots,
	})
	return b
}

// Build places every team and returns the roster ordered by slot.
func (b *RosterBuilder) Build(solver placement.Solver) ([]season.Team, error) {
	constraints := make([]placement.Constraint, len(b.entries))
	for i, e := range b.entries {
		constraints[i] = placement.Constraint{Team: e.team.Name, Forbidden: e.avoid}
	}

	slots, err := solver.Solve(constraints)
	if err != nil {
		return nil, err
	}

	teams := make([]season.Team, len(b.entries))
	for slot, i := range placement.Order(slots) {
		teams[slot] = b.entries[i].team
	}
	return teams, nil
}
