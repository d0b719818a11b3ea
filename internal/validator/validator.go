package validator

import (
	"github.com/rs/zerolog"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/season"
)

// Options configures the peak-time cap. Teams listed in Exempt, by name or
// id, may play ExemptCap peak-time games instead of PeakCap.
type Options struct {
	PeakHour   int
	PeakMinute int
	PeakCap    int
	ExemptCap  int
	Exempt     []string
}

// DefaultOptions caps 21:00 games at one per team, two for exempt teams.
func DefaultOptions() Options {
	return Options{PeakHour: 21, PeakCap: 1, ExemptCap: 2}
}

// OptionsFromConfig converts the validation section of a config file.
func OptionsFromConfig(v config.Validation) (Options, error) {
	h, m, err := v.PeakHourMinute()
	if err != nil {
		return Options{}, err
	}
	return Options{
		PeakHour:   h,
		PeakMinute: m,
		PeakCap:    v.PeakTimeCap,
		ExemptCap:  v.ExemptCap,
		Exempt:     v.ExemptTeams,
	}, nil
}

// Validator checks an assembled season. It never modifies the season.
type Validator struct {
	opts   Options
	exempt map[string]bool
	logger zerolog.Logger
}

func New(opts Options, logger zerolog.Logger) *Validator {
	exempt := make(map[string]bool)
	for _, t := range opts.Exempt {
		exempt[t] = true
	}
	return &Validator{
		opts:   opts,
		exempt: exempt,
		logger: logger.With().Str("component", "validator").Logger(),
	}
}

// Validate stops at the first violation and returns it as a *RuleViolation.
func (v *Validator) Validate(s *season.Season) error {
	violations := v.run(s, true)
	if len(violations) > 0 {
		v.logger.Debug().Str("rule", string(violations[0].Rule)).Msg(violations[0].Message)
		return violations[0]
	}
	v.logger.Debug().Int("matches", len(s.Matches())).Msg("all checks passed")
	return nil
}

// Audit runs every check for every team and returns all violations. Each
// per-team check still reports only its first finding for that team.
func (v *Validator) Audit(s *season.Season) []*RuleViolation {
	violations := v.run(s, false)
	v.logger.Debug().Int("violations", len(violations)).Msg("audit complete")
	return violations
}

type teamCheck func(v *Validator, tf teamFixtures) *RuleViolation

var teamChecks = []teamCheck{
	(*Validator).checkSameDay,
	(*Validator).checkPeakTime,
	(*Validator).checkRoundRobin,
	(*Validator).checkHomeAway,
	(*Validator).checkSpacing,
}

func (v *Validator) run(s *season.Season, failFast bool) []*RuleViolation {
	violations := checkDuplicateCourts(s.Matches(), failFast)
	if failFast && len(violations) > 0 {
		return violations
	}

	for _, tf := range fixturesByTeam(s) {
		for _, check := range teamChecks {
			if violation := check(v, tf); violation != nil {
				violations = append(violations, violation)
				if failFast {
					return violations
				}
			}
		}
	}
	return violations
}

// teamFixtures is the derived view of every match one team plays.
type teamFixtures struct {
	ID      string
	Name    string
	Matches []season.Match
}

// fixturesByTeam groups matches by team, with teams in order of first
// appearance and each team's matches in season order.
func fixturesByTeam(s *season.Season) []teamFixtures {
	index := make(map[string]int)
	var out []teamFixtures
	for _, m := range s.Matches() {
		for _, id := range []string{m.HomeTeamID, m.AwayTeamID} {
			i, ok := index[id]
			if !ok {
				name, found := s.TeamName(id)
				if !found {
					name = id
				}
				i = len(out)
				index[id] = i
				out = append(out, teamFixtures{ID: id, Name: name})
			}
			out[i].Matches = append(out[i].Matches, m)
		}
	}
	return out
}
