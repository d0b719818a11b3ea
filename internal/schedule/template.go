package schedule

import "time"

// FixtureTemplate is a scheduled date/time and court whose teams are still
// given as zero-based roster slots.
type FixtureTemplate struct {
	DateTime time.Time
	Court    string
	HomeSlot int
	AwaySlot int
}

// FixtureListBuilder accumulates templates for one league. A 1-based builder
// accepts slot numbers counted from 1 and stores them zero-based.
type FixtureListBuilder struct {
	oneBased bool
	fixtures []FixtureTemplate
}

func NewFixtureListBuilder(oneBased bool) *FixtureListBuilder {
	return &FixtureListBuilder{oneBased: oneBased}
}

func (b *FixtureListBuilder) Add(at time.Time, court string, home, away int) *FixtureListBuilder {
	off := 0
	if b.oneBased {
		off = 1
	}
	b.fixtures = append(b.fixtures, FixtureTemplate{
		DateTime: at,
		Court:    court,
		HomeSlot: home - off,
		AwaySlot: away - off,
	})
	return b
}

func (b *FixtureListBuilder) Build() []FixtureTemplate {
	return b.fixtures
}
