package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/fixtures/internal/strategy"
)

// DateTimeLayout is the layout for fixture times in the config file. Times
// are wall-clock times in the configured timezone.
const DateTimeLayout = "2006-01-02 15:04"

const DateLayout = "2006-01-02"

var validate = validator.New()

// DateTime is a wall-clock time read from YAML. It carries no zone until it
// is placed in the config's location with In.
type DateTime struct {
	Time time.Time
}

func (d *DateTime) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(DateTimeLayout, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date/time %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// Date is a calendar date read from YAML as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(DateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// In returns the same wall-clock time in loc.
func (d DateTime) In(loc *time.Location) time.Time {
	t := d.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

type Team struct {
	Name  string `yaml:"name" validate:"required"`
	Avoid []int  `yaml:"avoid"`
}

type Fixture struct {
	At    DateTime `yaml:"at"`
	Court string   `yaml:"court" validate:"required"`
	Home  int      `yaml:"home"`
	Away  int      `yaml:"away"`
}

type RoundSlot struct {
	At    DateTime `yaml:"at"`
	Court string   `yaml:"court" validate:"required"`
}

type Round struct {
	Slots []RoundSlot `yaml:"slots" validate:"required,min=1,dive"`
}

// Calendar describes recurring rounds: one round every EveryDays days from
// Start, skipping blackout dates, with a slot for each time on each court.
type Calendar struct {
	Start         Date     `yaml:"start"`
	EveryDays     int      `yaml:"every_days" validate:"gte=0"`
	Times         []string `yaml:"times" validate:"required,min=1"`
	Courts        []string `yaml:"courts" validate:"required,min=1,dive,required"`
	BlackoutDates []Date   `yaml:"blackout_dates"`
}

// Interval returns the days between rounds, seven when unset.
func (c *Calendar) Interval() int {
	if c.EveryDays == 0 {
		return 7
	}
	return c.EveryDays
}

// League configures one division. Fixtures lists explicit templates;
// alternatively Strategy generates the pairings and either Rounds or
// Calendar supplies the date/court slots they are played in.
type League struct {
	Name     string    `yaml:"name" validate:"required"`
	OneBased bool      `yaml:"one_based"`
	Teams    []Team    `yaml:"teams" validate:"required,min=2,dive"`
	Fixtures []Fixture `yaml:"fixtures" validate:"dive"`
	Strategy string    `yaml:"strategy"`
	Rounds   []Round   `yaml:"rounds" validate:"dive"`
	Calendar *Calendar `yaml:"calendar"`
}

// SlotOffset is subtracted from configured slot numbers to make them
// zero-based.
func (l *League) SlotOffset() int {
	if l.OneBased {
		return 1
	}
	return 0
}

type Validation struct {
	PeakTime    string   `yaml:"peak_time" validate:"required"`
	PeakTimeCap int      `yaml:"peak_time_cap" validate:"gte=0"`
	ExemptCap   int      `yaml:"exempt_cap" validate:"gte=0"`
	ExemptTeams []string `yaml:"exempt_teams"`
}

type Config struct {
	Timezone   string     `yaml:"timezone"`
	Seed       int64      `yaml:"seed"`
	Validation Validation `yaml:"validation"`
	Leagues    []League   `yaml:"leagues" validate:"required,min=1,dive"`

	location *time.Location
}

// DefaultValidation returns the checker settings used when the config
// leaves them out: at most one 21:00 game per team, two for exempt teams.
func DefaultValidation() Validation {
	return Validation{
		PeakTime:    "21:00",
		PeakTimeCap: 1,
		ExemptCap:   2,
	}
}

// Location returns the timezone fixture times are interpreted in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// PeakHourMinute returns the configured peak hour and minute.
func (v Validation) PeakHourMinute() (int, int, error) {
	t, err := time.Parse("15:04", v.PeakTime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid peak_time %q: %w", v.PeakTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// AllTeams returns all team names across all leagues.
func (c *Config) AllTeams() []string {
	var teams []string
	for _, l := range c.Leagues {
		for _, t := range l.Teams {
			teams = append(teams, t.Name)
		}
	}
	return teams
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Config{Validation: DefaultValidation()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if _, _, err := c.Validation.PeakHourMinute(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i := range c.Leagues {
		l := &c.Leagues[i]
		if seen[l.Name] {
			return fmt.Errorf("league %q is defined more than once", l.Name)
		}
		seen[l.Name] = true
		if err := l.validate(); err != nil {
			return fmt.Errorf("league %q: %w", l.Name, err)
		}
	}

	return nil
}

func (l *League) validate() error {
	n := len(l.Teams)
	off := l.SlotOffset()

	names := make(map[string]bool)
	for _, t := range l.Teams {
		if names[t.Name] {
			return fmt.Errorf("team %q appears more than once", t.Name)
		}
		names[t.Name] = true
		for _, slot := range t.Avoid {
			if slot-off < 0 || slot-off >= n {
				return fmt.Errorf("team %q: avoided slot %d outside roster of %d", t.Name, slot, n)
			}
		}
	}

	hasFixtures := len(l.Fixtures) > 0
	hasStrategy := l.Strategy != "" || len(l.Rounds) > 0 || l.Calendar != nil
	if !hasFixtures && !hasStrategy {
		return fmt.Errorf("either 'fixtures' or 'strategy' with 'rounds' or 'calendar' is required")
	}
	if hasFixtures && hasStrategy {
		return fmt.Errorf("cannot have both 'fixtures' and 'strategy'")
	}

	for i, f := range l.Fixtures {
		if f.At.Time.IsZero() {
			return fmt.Errorf("fixture %d: 'at' is required", i+1)
		}
		home, away := f.Home-off, f.Away-off
		if home < 0 || home >= n || away < 0 || away >= n {
			return fmt.Errorf("fixture %d: slots %d/%d outside roster of %d", i+1, f.Home, f.Away, n)
		}
		if home == away {
			return fmt.Errorf("fixture %d: home and away slot are both %d", i+1, f.Home)
		}
	}

	if hasStrategy {
		if l.Strategy == "" {
			return fmt.Errorf("'rounds' and 'calendar' require a 'strategy'")
		}
		if _, err := strategy.Get(l.Strategy); err != nil {
			return err
		}
		if len(l.Rounds) == 0 && l.Calendar == nil {
			return fmt.Errorf("strategy %q requires 'rounds' or 'calendar'", l.Strategy)
		}
		if len(l.Rounds) > 0 && l.Calendar != nil {
			return fmt.Errorf("cannot have both 'rounds' and 'calendar'")
		}
		if l.Calendar != nil {
			if err := l.Calendar.validate(); err != nil {
				return fmt.Errorf("calendar: %w", err)
			}
		}
		for i, r := range l.Rounds {
			for _, s := range r.Slots {
				if s.At.Time.IsZero() {
					return fmt.Errorf("round %d: slot 'at' is required", i+1)
				}
			}
		}
	}

	return nil
}

func (c *Calendar) validate() error {
	if c.Start.IsZero() {
		return fmt.Errorf("'start' is required")
	}
	for _, t := range c.Times {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("invalid time %q: %w", t, err)
		}
	}
	return nil
}
