package validator

import "errors"

// Rule identifies one of the schedule checks.
type Rule string

const (
	RuleDuplicateCourt Rule = "duplicate-court"
	RuleSameDay        Rule = "same-day"
	RulePeakTime       Rule = "peak-time"
	RuleRoundRobin     Rule = "round-robin"
	RuleHomeAway       Rule = "home-away"
	RuleSpacing        Rule = "spacing"
)

// ErrRuleViolation matches every *RuleViolation with errors.Is.
var ErrRuleViolation = errors.New("rule violation")

// RuleViolation is a failed check. Team is empty for season-wide rules.
type RuleViolation struct {
	Rule    Rule
	Team    string
	Message string
}

func (v *RuleViolation) Error() string {
	return string(v.Rule) + ": " + v.Message
}

func (v *RuleViolation) Unwrap() error {
	return ErrRuleViolation
}
