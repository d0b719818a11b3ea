package schedule

import (
	"sort"
	"time"

	"github.com/derekprior/fixtures/internal/config"
)

// CalendarRounds builds n rounds from a recurring calendar. Round dates start
// at cal.Start and step by the calendar interval; a blackout date is skipped
// and the round moves to the next step. Each round offers every configured
// time on every court, ordered by time then court.
func CalendarRounds(cal config.Calendar, loc *time.Location, n int) [][]RoundSlot {
	blackoutDates := make(map[time.Time]bool)
	for _, b := range cal.BlackoutDates {
		blackoutDates[b.Time] = true
	}

	times := make([]time.Time, 0, len(cal.Times))
	for _, t := range cal.Times {
		// Times are checked when the config is loaded.
		parsed, _ := time.Parse("15:04", t)
		times = append(times, parsed)
	}

	var rounds [][]RoundSlot
	d := cal.Start.Time
	for len(rounds) < n {
		if blackoutDates[d] {
			d = d.AddDate(0, 0, cal.Interval())
			continue
		}

		var slots []RoundSlot
		for _, t := range times {
			at := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
			for _, court := range cal.Courts {
				slots = append(slots, RoundSlot{DateTime: at, Court: court})
			}
		}
		sort.SliceStable(slots, func(i, j int) bool {
			if !slots[i].DateTime.Equal(slots[j].DateTime) {
				return slots[i].DateTime.Before(slots[j].DateTime)
			}
			return slots[i].Court < slots[j].Court
		})
		rounds = append(rounds, slots)

		d = d.AddDate(0, 0, cal.Interval())
	}

	return rounds
}
