package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/derekprior/fixtures/internal/season"
)

const dateLayout = "2006-01-02"

// checkDuplicateCourts reports matches sharing a court at the same instant.
func checkDuplicateCourts(matches []season.Match, failFast bool) []*RuleViolation {
	type courtKey struct {
		at    int64
		court string
	}
	seen := make(map[courtKey]bool)

	var violations []*RuleViolation
	for _, m := range matches {
		k := courtKey{m.DateTime.UnixNano(), m.Court}
		if !seen[k] {
			seen[k] = true
			continue
		}
		violations = append(violations, &RuleViolation{
			Rule:    RuleDuplicateCourt,
			Message: fmt.Sprintf("duplicate matches on %s / %s", m.DateTime.Format(time.RFC3339), m.Court),
		})
		if failFast {
			break
		}
	}
	return violations
}

func (v *Validator) checkSameDay(tf teamFixtures) *RuleViolation {
	dates := make(map[string]bool)
	for _, m := range tf.Matches {
		d := m.DateTime.Format(dateLayout)
		if dates[d] {
			return &RuleViolation{
				Rule:    RuleSameDay,
				Team:    tf.ID,
				Message: fmt.Sprintf("multiple games for %s on %s", tf.Name, d),
			}
		}
		dates[d] = true
	}
	return nil
}

func (v *Validator) checkPeakTime(tf teamFixtures) *RuleViolation {
	limit := v.opts.PeakCap
	if v.exempt[tf.Name] || v.exempt[tf.ID] {
		limit = v.opts.ExemptCap
	}

	count := 0
	for _, m := range tf.Matches {
		t := m.DateTime
		if t.Hour() == v.opts.PeakHour && t.Minute() == v.opts.PeakMinute && t.Second() == 0 {
			count++
		}
	}
	if count > limit {
		return &RuleViolation{
			Rule: RulePeakTime,
			Team: tf.ID,
			Message: fmt.Sprintf("more than %d %02d:%02d game(s) for %s (%d scheduled)",
				limit, v.opts.PeakHour, v.opts.PeakMinute, tf.Name, count),
		}
	}
	return nil
}

// checkRoundRobin requires every opponent the team has met to be met the same
// number of times. The first opponent seen sets the expected count.
func (v *Validator) checkRoundRobin(tf teamFixtures) *RuleViolation {
	counts := make(map[string]int)
	var opponents []string
	for _, m := range tf.Matches {
		opp := m.Opponent(tf.ID)
		if _, ok := counts[opp]; !ok {
			opponents = append(opponents, opp)
		}
		counts[opp]++
	}

	if len(opponents) == 0 {
		return nil
	}
	first := opponents[0]
	want := counts[first]
	for _, opp := range opponents[1:] {
		if counts[opp] != want {
			return &RuleViolation{
				Rule: RuleRoundRobin,
				Team: tf.ID,
				Message: fmt.Sprintf("%s and %s play %d game(s) against each other but %s and %s play %d",
					tf.Name, opp, counts[opp], tf.Name, first, want),
			}
		}
	}
	return nil
}

// checkHomeAway allows a difference of one. A team with a single fixture
// must be at home for it.
func (v *Validator) checkHomeAway(tf teamFixtures) *RuleViolation {
	home, away := 0, 0
	for _, m := range tf.Matches {
		if m.IsHome(tf.ID) {
			home++
		} else {
			away++
		}
	}

	if home+away == 1 {
		if home != 1 {
			return &RuleViolation{
				Rule:    RuleHomeAway,
				Team:    tf.ID,
				Message: fmt.Sprintf("%s: only fixture is away (0 home, 1 away)", tf.Name),
			}
		}
		return nil
	}

	diff := home - away
	if diff < -1 || diff > 1 {
		return &RuleViolation{
			Rule:    RuleHomeAway,
			Team:    tf.ID,
			Message: fmt.Sprintf("%s: unbalanced home and away counts (%d and %d)", tf.Name, home, away),
		}
	}
	return nil
}

// checkSpacing joins the whole-week gaps between consecutive fixtures into
// a digit string; "11" means three games in three successive weeks.
func (v *Validator) checkSpacing(tf teamFixtures) *RuleViolation {
	days := make([]int64, len(tf.Matches))
	for i, m := range tf.Matches {
		days[i] = dayNumber(m.DateTime)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var gaps strings.Builder
	for i := 1; i < len(days); i++ {
		gaps.WriteString(strconv.FormatInt((days[i]-days[i-1])/7, 10))
	}
	if strings.Contains(gaps.String(), "11") {
		return &RuleViolation{
			Rule:    RuleSpacing,
			Team:    tf.ID,
			Message: fmt.Sprintf("%s: more than two successive games (week gaps %s)", tf.Name, gaps.String()),
		}
	}
	return nil
}

// dayNumber counts calendar days since the epoch for the date t falls on in
// its own location.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
