package schedule

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/ident"
	"github.com/derekprior/fixtures/internal/placement"
	"github.com/derekprior/fixtures/internal/season"
	"github.com/derekprior/fixtures/internal/strategy"
)

// ErrSessionUsed is returned when a session is asked for a second season.
var ErrSessionUsed = errors.New("session already generated a season")

// Session is a single generation run. It owns the identifier registry and the
// random source, so two sessions never share ids or random state.
type Session struct {
	RunID string

	seed   int64
	ids    *ident.Registry
	rng    *rand.Rand
	solver placement.Solver
	clock  clockwork.Clock
	logger zerolog.Logger
	used   bool
}

type Option func(*Session)

func WithClock(c clockwork.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSolver replaces the greedy placement solver.
func WithSolver(p placement.Solver) Option {
	return func(s *Session) { s.solver = p }
}

// NewSession creates a run seeded with seed. A zero seed is taken from the
// clock; Seed reports the value actually used.
func NewSession(seed int64, opts ...Option) *Session {
	s := &Session{
		RunID:  uuid.NewString(),
		ids:    ident.NewRegistry(),
		clock:  clockwork.NewRealClock(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if seed == 0 {
		seed = s.clock.Now().UnixNano()
	}
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	if s.solver == nil {
		s.solver = placement.NewGreedy(s.rng)
	}
	s.logger = s.logger.With().
		Str("component", "generator").
		Str("run_id", s.RunID).
		Int64("seed", seed).
		Logger()
	return s
}

func (s *Session) Seed() int64 {
	return s.seed
}

func (s *Session) Registry() *ident.Registry {
	return s.ids
}

// Generate builds every configured league and returns the season.
func (s *Session) Generate(cfg *config.Config) (*season.Season, error) {
	if s.used {
		return nil, ErrSessionUsed
	}
	s.used = true

	asm := NewAssembler(s.ids)
	for _, l := range cfg.Leagues {
		if err := s.addLeague(asm, cfg, l); err != nil {
			return nil, fmt.Errorf("league %q: %w", l.Name, err)
		}
	}

	out := asm.Build()
	out.Generated = s.clock.Now()
	s.logger.Info().
		Int("leagues", len(out.Leagues())).
		Int("matches", len(out.Matches())).
		Msg("season generated")
	return out, nil
}

func (s *Session) addLeague(asm *Assembler, cfg *config.Config, l config.League) error {
	roster := NewRosterBuilder(s.ids, l.OneBased)
	for _, t := range l.Teams {
		roster.Add(t.Name, t.Avoid...)
	}
	teams, err := roster.Build(s.solver)
	if err != nil {
		return err
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	s.logger.Debug().Str("league", l.Name).Strs("slots", names).Msg("teams placed")

	fixtures, err := s.templates(cfg, l, len(teams))
	if err != nil {
		return err
	}

	league, err := asm.Add(l.Name, teams, fixtures)
	if err != nil {
		return err
	}
	s.logger.Debug().
		Str("league", l.Name).
		Str("league_id", league.ID).
		Int("matches", len(league.Matches)).
		Msg("league assembled")
	return nil
}

func (s *Session) templates(cfg *config.Config, l config.League, teamCount int) ([]FixtureTemplate, error) {
	loc := cfg.Location()

	if len(l.Fixtures) > 0 {
		b := NewFixtureListBuilder(l.OneBased)
		for _, f := range l.Fixtures {
			b.Add(f.At.In(loc), f.Court, f.Home, f.Away)
		}
		return b.Build(), nil
	}

	strat, err := strategy.Get(l.Strategy)
	if err != nil {
		return nil, err
	}
	pairings := strat.Rounds(teamCount)

	if l.Calendar != nil {
		return TemplatesFromRounds(CalendarRounds(*l.Calendar, loc, len(pairings)), pairings)
	}

	rounds := make([][]RoundSlot, len(l.Rounds))
	for i, r := range l.Rounds {
		for _, slot := range r.Slots {
			rounds[i] = append(rounds[i], RoundSlot{DateTime: slot.At.In(loc), Court: slot.Court})
		}
	}
	return TemplatesFromRounds(rounds, pairings)
}
