package season

import (
	"fmt"
	"time"
)

// Team is a named entrant in a league.
type Team struct {
	ID   string
	Name string
}

// Match is a single fixture between two teams on a court.
type Match struct {
	DateTime   time.Time
	Court      string
	HomeTeamID string
	AwayTeamID string
}

// Involves reports whether the team plays in the match.
func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func (m Match) IsHome(teamID string) bool {
	return m.HomeTeamID == teamID
}

// Opponent returns the id of the team facing teamID.
func (m Match) Opponent(teamID string) string {
	if m.HomeTeamID == teamID {
		return m.AwayTeamID
	}
	return m.HomeTeamID
}

// League is a division: its roster in slot order and its matches.
type League struct {
	ID      string
	Name    string
	Teams   []Team
	Matches []Match
}

// Team looks up a roster entry by id.
func (l *League) Team(id string) (Team, bool) {
	for _, t := range l.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Season is the full set of leagues, unique by id, in insertion order.
type Season struct {
	Generated time.Time

	leagues []*League
	byID    map[string]*League
}

func New() *Season {
	return &Season{byID: make(map[string]*League)}
}

// Add appends a league. League ids must be unique within the season.
func (s *Season) Add(l *League) error {
	if s.byID == nil {
		s.byID = make(map[string]*League)
	}
	if _, ok := s.byID[l.ID]; ok {
		return fmt.Errorf("duplicate league id %q", l.ID)
	}
	s.byID[l.ID] = l
	s.leagues = append(s.leagues, l)
	return nil
}

func (s *Season) Leagues() []*League {
	return s.leagues
}

func (s *Season) League(id string) (*League, bool) {
	l, ok := s.byID[id]
	return l, ok
}

// Matches returns every match in league order.
func (s *Season) Matches() []Match {
	var all []Match
	for _, l := range s.leagues {
		all = append(all, l.Matches...)
	}
	return all
}

// TeamName resolves a team id to its display name across all leagues.
func (s *Season) TeamName(id string) (string, bool) {
	for _, l := range s.leagues {
		if t, ok := l.Team(id); ok {
			return t.Name, true
		}
	}
	return "", false
}
