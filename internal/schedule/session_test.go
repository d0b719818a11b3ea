package schedule

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/placement"
	"github.com/derekprior/fixtures/internal/season"
)

var sessionTestConfig = `
timezone: Europe/London
leagues:
  - name: Division 1
    strategy: double_round_robin
    teams:
      - name: Parco
        avoid: [0]
      - name: Aces
      - name: Lions
      - name: Tigers
      - name: Hawks
      - name: Owls
    rounds:
` + roundsYAML + `
  - name: Cup
    one_based: true
    teams:
      - name: Aces
      - name: Lions
    fixtures:
      - at: "2025-12-15 19:30"
        court: Centre
        home: 1
        away: 2
`

// roundsYAML lists ten fortnightly rounds of three courts from 1 September.
var roundsYAML = func() string {
	out := ""
	start := time.Date(2025, 9, 1, 20, 0, 0, 0, time.UTC)
	for r := 0; r < 10; r++ {
		day := start.AddDate(0, 0, 14*r).Format("2006-01-02")
		out += "      - slots:\n"
		for _, court := range []string{"Court 1", "Court 2", "Court 3"} {
			out += "          - at: \"" + day + " 20:00\"\n"
			out += "            court: " + court + "\n"
		}
	}
	return out
}()

func loadSessionConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte(sessionTestConfig))
	require.NoError(t, err)
	return cfg
}

func TestSessionGenerate(t *testing.T) {
	cfg := loadSessionConfig(t)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))

	s, err := NewSession(42, WithClock(clock)).Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), s.Generated)

	leagues := s.Leagues()
	require.Len(t, leagues, 2)

	div := leagues[0]
	assert.Equal(t, "Division1", div.ID)
	require.Len(t, div.Teams, 6)
	require.Len(t, div.Matches, 30)
	assert.NotEqual(t, "Parco", div.Teams[0].Name)

	home := make(map[string]int)
	away := make(map[string]int)
	meetings := make(map[[2]string]int)
	for _, m := range div.Matches {
		home[m.HomeTeamID]++
		away[m.AwayTeamID]++
		a, b := m.HomeTeamID, m.AwayTeamID
		if a > b {
			a, b = b, a
		}
		meetings[[2]string{a, b}]++
		assert.Equal(t, 20, m.DateTime.Hour())
		assert.Equal(t, "Europe/London", m.DateTime.Location().String())
	}
	for _, team := range div.Teams {
		assert.Equal(t, 5, home[team.ID], team.Name)
		assert.Equal(t, 5, away[team.ID], team.Name)
	}
	assert.Len(t, meetings, 15)
	for pair, n := range meetings {
		assert.Equal(t, 2, n, "%v", pair)
	}

	cup := leagues[1]
	assert.Equal(t, "Cup", cup.ID)
	require.Len(t, cup.Matches, 1)
	// Teams in a second league get fresh ids.
	assert.Contains(t, []string{"Aces0", "Lions0"}, cup.Matches[0].HomeTeamID)
	assert.Equal(t, 19, cup.Matches[0].DateTime.Hour())
	assert.Equal(t, 30, cup.Matches[0].DateTime.Minute())
}

func TestSessionDeterministic(t *testing.T) {
	cfg := loadSessionConfig(t)
	clock := clockwork.NewFakeClock()

	matches := func(seed int64) []season.Match {
		s, err := NewSession(seed, WithClock(clock)).Generate(cfg)
		require.NoError(t, err)
		return s.Matches()
	}

	assert.Equal(t, matches(7), matches(7))

	differs := false
	for seed := int64(8); seed < 20 && !differs; seed++ {
		differs = !assert.ObjectsAreEqual(matches(7), matches(seed))
	}
	assert.True(t, differs, "different seeds should eventually place teams differently")
}

func TestSessionSeedFromClock(t *testing.T) {
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(0, WithClock(clockwork.NewFakeClockAt(now)))
	assert.Equal(t, now.UnixNano(), s.Seed())
	assert.NotEmpty(t, s.RunID)

	assert.Equal(t, int64(5), NewSession(5).Seed())
}

func TestSessionSingleUse(t *testing.T) {
	cfg := loadSessionConfig(t)
	sess := NewSession(1)
	_, err := sess.Generate(cfg)
	require.NoError(t, err)

	_, err = sess.Generate(cfg)
	assert.ErrorIs(t, err, ErrSessionUsed)
}

func TestSessionPlacementExhausted(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`
leagues:
  - name: Pairs
    teams:
      - name: Parco
        avoid: [1]
      - name: Aces
        avoid: [1]
    fixtures:
      - at: "2025-09-01 20:00"
        court: Court 1
        home: 0
        away: 1
`))
	require.NoError(t, err)

	_, err = NewSession(1).Generate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, placement.ErrPlacementExhausted)
	assert.Contains(t, err.Error(), `league "Pairs"`)

	var exhausted *placement.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Contains(t, []string{"Parco", "Aces"}, exhausted.Team)
}

type fixedSolver struct{}

func (fixedSolver) Solve(constraints []placement.Constraint) ([]int, error) {
	slots := make([]int, len(constraints))
	for i := range slots {
		slots[i] = i
	}
	return slots, nil
}

func TestSessionWithSolver(t *testing.T) {
	cfg := loadSessionConfig(t)
	s, err := NewSession(1, WithSolver(fixedSolver{})).Generate(cfg)
	require.NoError(t, err)

	// Every registry-generated id is unique across the whole season.
	seen := make(map[string]bool)
	for _, l := range s.Leagues() {
		assert.False(t, seen[l.ID])
		seen[l.ID] = true
		for _, team := range l.Teams {
			assert.False(t, seen[team.ID], team.ID)
			seen[team.ID] = true
		}
	}

	cup, ok := s.League("Cup")
	require.True(t, ok)
	assert.Equal(t, season.Match{
		DateTime:   cup.Matches[0].DateTime,
		Court:      "Centre",
		HomeTeamID: "Aces0",
		AwayTeamID: "Lions0",
	}, cup.Matches[0])
}

func TestSessionCalendar(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`
timezone: Europe/London
leagues:
  - name: Division 1
    strategy: round_robin
    teams: [{name: Parco}, {name: Aces}, {name: Lions}, {name: Tigers}, {name: Hawks}]
    calendar:
      start: "2025-09-01"
      every_days: 14
      times: ["20:00"]
      courts: [Court 1, Court 2]
      blackout_dates: ["2025-09-15"]
`))
	require.NoError(t, err)

	s, err := NewSession(3).Generate(cfg)
	require.NoError(t, err)

	// Five teams: five rounds of two matches, one team resting each round.
	matches := s.Matches()
	require.Len(t, matches, 10)
	assert.Equal(t, "2025-09-01", matches[0].DateTime.Format("2006-01-02"))
	assert.Equal(t, "2025-09-29", matches[2].DateTime.Format("2006-01-02"))
	assert.Equal(t, "2025-11-10", matches[9].DateTime.Format("2006-01-02"))
}
