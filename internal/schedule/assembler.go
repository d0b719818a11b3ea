package schedule

import (
	"fmt"

	"github.com/derekprior/fixtures/internal/ident"
	"github.com/derekprior/fixtures/internal/season"
)

// Assembler binds placed rosters to fixture templates and collects the
// resulting leagues into a season. It does not check scheduling rules; that
// is the validator's job.
type Assembler struct {
	ids    *ident.Registry
	season *season.Season
}

func NewAssembler(ids *ident.Registry) *Assembler {
	return &Assembler{ids: ids, season: season.New()}
}

// Add builds a league from teams ordered by slot and the templates that
// refer to those slots.
func (a *Assembler) Add(name string, teams []season.Team, fixtures []FixtureTemplate) (*season.League, error) {
	league := &season.League{
		ID:    a.ids.Generate(name),
		Name:  name,
		Teams: append([]season.Team(nil), teams...),
	}

	for i, f := range fixtures {
		if f.HomeSlot < 0 || f.HomeSlot >= len(teams) || f.AwaySlot < 0 || f.AwaySlot >= len(teams) {
			return nil, fmt.Errorf("league %q fixture %d: slots %d/%d outside roster of %d",
				name, i+1, f.HomeSlot, f.AwaySlot, len(teams))
		}
		if f.HomeSlot == f.AwaySlot {
			return nil, fmt.Errorf("league %q fixture %d: home and away slot are both %d", name, i+1, f.HomeSlot)
		}
		league.Matches = append(league.Matches, season.Match{
			DateTime:   f.DateTime,
			Court:      f.Court,
			HomeTeamID: teams[f.HomeSlot].ID,
			AwayTeamID: teams[f.AwaySlot].ID,
		})
	}

	if err := a.season.Add(league); err != nil {
		return nil, err
	}
	return league, nil
}

func (a *Assembler) Build() *season.Season {
	return a.season
}
