package tiebreak

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule is returned when a rule has no implementation
	ErrUnknownRule = errors.New("unknown tiebreaker rule")
	// ErrEmptyField is returned when a rule eliminates every team
	ErrEmptyField = errors.New("tiebreaker eliminated every team")
	// ErrNoFlipper is returned when a coin flip is needed but no coin was configured
	ErrNoFlipper = errors.New("no coin flipper configured")
)

// UndefinedRuleError reports a (scope, rule number, group size) combination
// with no tiebreaker in the catalog
type UndefinedRuleError struct {
	Scope Scope
	Index int
	Size  int
}

func (e *UndefinedRuleError) Error() string {
	return fmt.Sprintf("undefined tiebreaker: scope = %s, rule = %d, teams = %d", e.Scope, e.Index, e.Size)
}

// SizeClass is the group size a catalog entry applies to
type SizeClass int

const (
	AnySize SizeClass = iota
	TwoTeams
	MoreThanTwo
)

func (c SizeClass) matches(size int) bool {
	switch c {
	case TwoTeams:
		return size == 2
	case MoreThanTwo:
		return size > 2
	}
	return size >= 2
}

// Entry is one row of the tiebreaker catalog
type Entry struct {
	Scope Scope
	Index int
	Size  SizeClass
	Rule  Rule
}

// Catalog lists the tiebreakers in the order they are applied.
// Rule numbers past the last entry for a scope and size fall through to a coin flip.
var Catalog = []Entry{
	// Division ties, two clubs or more
	{ScopeDivision, 1, AnySize, RuleHeadToHead},
	{ScopeDivision, 2, AnySize, RuleDivisionWinPercentage},
	{ScopeDivision, 3, AnySize, RuleCommonGames},
	{ScopeDivision, 4, AnySize, RuleConferenceWinPercentage},
	{ScopeDivision, 5, AnySize, RuleStrengthOfVictory},
	{ScopeDivision, 6, AnySize, RuleStrengthOfSchedule},
	{ScopeDivision, 7, AnySize, RuleConferencePointsRanking},
	{ScopeDivision, 8, AnySize, RuleLeaguePointsRanking},
	{ScopeDivision, 9, AnySize, RuleCommonNetPoints},
	{ScopeDivision, 10, AnySize, RuleConferenceNetPoints},

	// Conference ties, two clubs
	{ScopeConference, 1, TwoTeams, RuleHeadToHead},
	{ScopeConference, 2, TwoTeams, RuleConferenceWinPercentage},
	{ScopeConference, 3, TwoTeams, RuleCommonGames},
	{ScopeConference, 4, TwoTeams, RuleStrengthOfVictory},
	{ScopeConference, 5, TwoTeams, RuleStrengthOfSchedule},
	{ScopeConference, 6, TwoTeams, RuleConferencePointsRanking},
	{ScopeConference, 7, TwoTeams, RuleLeaguePointsRanking},
	{ScopeConference, 8, TwoTeams, RuleCommonNetPoints},
	{ScopeConference, 9, TwoTeams, RuleConferenceNetPoints},

	// Conference ties, three or more clubs
	{ScopeConference, 1, MoreThanTwo, RuleHighestDivisionRank},
	{ScopeConference, 2, MoreThanTwo, RuleHeadToHead},
	{ScopeConference, 3, MoreThanTwo, RuleConferenceWinPercentage},
	{ScopeConference, 4, MoreThanTwo, RuleCommonGames},
	{ScopeConference, 5, MoreThanTwo, RuleStrengthOfVictory},
	{ScopeConference, 6, MoreThanTwo, RuleStrengthOfSchedule},
	{ScopeConference, 7, MoreThanTwo, RuleConferencePointsRanking},
	{ScopeConference, 8, MoreThanTwo, RuleLeaguePointsRanking},
	{ScopeConference, 9, MoreThanTwo, RuleCommonNetPoints},
	{ScopeConference, 10, MoreThanTwo, RuleConferenceNetPoints},
}

// Lookup returns the tiebreaker to run for the given scope, rule number and
// number of tied teams
func Lookup(scope Scope, index, size int) (Rule, error) {
	if index < 1 || size < 2 {
		return "", &UndefinedRuleError{Scope: scope, Index: index, Size: size}
	}

	last := 0
	for _, e := range Catalog {
		if e.Scope != scope || !e.Size.matches(size) {
			continue
		}
		if e.Index == index {
			return e.Rule, nil
		}
		if e.Index > last {
			last = e.Index
		}
	}

	if last > 0 && index > last {
		return RuleCoinFlip, nil
	}
	return "", &UndefinedRuleError{Scope: scope, Index: index, Size: size}
}

// Sequence lists the tiebreakers applied, in order, to size teams tied in scope.
// The final entry is always the coin flip.
func Sequence(scope Scope, size int) ([]Rule, error) {
	var rules []Rule
	for index := 1; ; index++ {
		rule, err := Lookup(scope, index, size)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
		if rule == RuleCoinFlip {
			return rules, nil
		}
	}
}
