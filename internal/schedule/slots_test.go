package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/fixtures/internal/config"
)

func date(y, m, d int) config.Date {
	return config.Date{Time: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)}
}

func testCalendar() config.Calendar {
	return config.Calendar{
		Start:         date(2025, 9, 1),
		EveryDays:     14,
		Times:         []string{"21:00", "20:00"},
		Courts:        []string{"Court 2", "Court 1"},
		BlackoutDates: []config.Date{date(2025, 9, 29)},
	}
}

func TestCalendarRounds(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	rounds := CalendarRounds(testCalendar(), london, 3)
	require.Len(t, rounds, 3)

	t.Run("skips blackout dates", func(t *testing.T) {
		var got []string
		for _, r := range rounds {
			got = append(got, r[0].DateTime.Format("2006-01-02"))
		}
		assert.Equal(t, []string{"2025-09-01", "2025-09-15", "2025-10-13"}, got)
	})

	t.Run("every time on every court", func(t *testing.T) {
		for i, r := range rounds {
			assert.Len(t, r, 4, "round %d", i+1)
		}
	})

	t.Run("slots ordered by time then court", func(t *testing.T) {
		var got []string
		for _, s := range rounds[0] {
			got = append(got, s.DateTime.Format("15:04")+" "+s.Court)
		}
		assert.Equal(t, []string{"20:00 Court 1", "20:00 Court 2", "21:00 Court 1", "21:00 Court 2"}, got)
	})

	t.Run("times are wall-clock in the location", func(t *testing.T) {
		assert.Equal(t, london, rounds[0][0].DateTime.Location())
		// 13 October is still BST.
		_, offset := rounds[2][0].DateTime.Zone()
		assert.Equal(t, 3600, offset)
	})
}

func TestCalendarRoundsWeeklyDefault(t *testing.T) {
	cal := config.Calendar{Start: date(2025, 9, 1), Times: []string{"20:00"}, Courts: []string{"Court 1"}}
	rounds := CalendarRounds(cal, time.UTC, 2)
	require.Len(t, rounds, 2)
	assert.Equal(t, 7*24*time.Hour, rounds[1][0].DateTime.Sub(rounds[0][0].DateTime))
}

func TestCalendarRoundsZero(t *testing.T) {
	assert.Empty(t, CalendarRounds(testCalendar(), time.UTC, 0))
}
