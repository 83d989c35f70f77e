// Package tiebreak implements the NFL tie-breaking procedures used to order
// teams that finish with the same win percentage.
//
// Procedures follow https://www.nfl.com/standings/tie-breaking-procedures.
package tiebreak

import (
	"fmt"
	"math"

	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/sam-maryland/nfl-standings/internal/stats"
)

// Scope is the standings table a tie is broken for
type Scope string

const (
	ScopeDivision   Scope = "division"
	ScopeConference Scope = "conference"
)

// ParseScope converts a scope name into a Scope
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeDivision, ScopeConference:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q: want %q or %q", s, ScopeDivision, ScopeConference)
}

// Rule identifies a single tiebreaker
type Rule string

const (
	RuleHeadToHead              Rule = "head_to_head"
	RuleDivisionWinPercentage   Rule = "division_win_percentage"
	RuleCommonGames             Rule = "common_games"
	RuleConferenceWinPercentage Rule = "conference_win_percentage"
	RuleStrengthOfVictory       Rule = "strength_of_victory"
	RuleStrengthOfSchedule      Rule = "strength_of_schedule"
	RuleConferencePointsRanking Rule = "conference_points_ranking"
	RuleLeaguePointsRanking     Rule = "league_points_ranking"
	RuleCommonNetPoints         Rule = "common_net_points"
	RuleConferenceNetPoints     Rule = "conference_net_points"
	RuleHighestDivisionRank     Rule = "highest_division_rank"
	RuleCoinFlip                Rule = "coin_flip"
)

func (r Rule) String() string {
	return string(r)
}

// DefaultCommonGamesMinimum is the number of common games each club needs
// before the common games tiebreaker applies to a conference tie
const DefaultCommonGamesMinimum = 4

// Flipper picks the coin toss winner. *rand.Rand satisfies it.
type Flipper interface {
	Intn(n int) int
}

// Pool holds the teams that rankings are computed against. It is read only.
type Pool struct {
	League     []*league.Team
	Conference []*league.Team
}

// Env is everything a rule needs beyond the tied teams themselves
type Env struct {
	Scope              Scope
	Pool               Pool
	Flipper            Flipper
	CommonGamesMinimum int
}

type ruleFunc func(teams []*league.Team, env Env) []*league.Team

var ruleFuncs = map[Rule]ruleFunc{
	RuleHeadToHead:              headToHead,
	RuleDivisionWinPercentage:   divisionWinPercentage,
	RuleCommonGames:             commonGames,
	RuleConferenceWinPercentage: conferenceWinPercentage,
	RuleStrengthOfVictory:       strengthOfVictory,
	RuleStrengthOfSchedule:      strengthOfSchedule,
	RuleConferencePointsRanking: pointsRanking(conferencePool),
	RuleLeaguePointsRanking:     pointsRanking(leaguePool),
	RuleCommonNetPoints:         netPoints(commonOpponents),
	RuleConferenceNetPoints:     netPoints(conferenceOpponents),
	RuleHighestDivisionRank:     highestDivisionRanks,
	RuleCoinFlip:                coinFlip,
}

// Apply runs rule against teams and returns the teams still in contention
func Apply(rule Rule, teams []*league.Team, env Env) ([]*league.Team, error) {
	f, ok := ruleFuncs[rule]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	if rule == RuleCoinFlip && env.Flipper == nil {
		return nil, ErrNoFlipper
	}
	return f(teams, env), nil
}

// headToHead compares records in games among the tied clubs.
//
// Division ties keep the best percentage. Conference ties only apply as a sweep:
// a club that beat each of the others wins, a club that lost to each of the others
// is eliminated, and a full percentage comparison happens only when every club has
// played every other.
func headToHead(teams []*league.Team, env Env) []*league.Team {
	names := stats.Names(teams)

	percentages := make(map[*league.Team]float64, len(teams))
	playedAll := make(map[*league.Team]bool, len(teams))
	everyonePlayed := true

	for _, t := range teams {
		others := make(map[string]bool, len(names)-1)
		for name := range names {
			if name != t.FullName {
				others[name] = true
			}
		}

		percentages[t] = stats.RecordAgainst(t, others).Percentage()
		playedAll[t] = hasPlayedAll(t, others)
		if !playedAll[t] {
			everyonePlayed = false
		}
	}

	if env.Scope == ScopeDivision {
		return keepMax(teams, func(t *league.Team) float64 { return percentages[t] })
	}

	for _, t := range teams {
		if playedAll[t] && percentages[t] >= 1.0 {
			return []*league.Team{t}
		}
	}

	survivors := league.Filter(teams, func(t *league.Team) bool {
		return !(playedAll[t] && percentages[t] <= 0.0)
	})
	if len(survivors) > 0 && len(survivors) < len(teams) {
		return survivors
	}

	if everyonePlayed {
		return keepMax(teams, func(t *league.Team) float64 { return percentages[t] })
	}
	return teams
}

func hasPlayedAll(t *league.Team, opponents map[string]bool) bool {
	played := make(map[string]bool, len(opponents))
	for _, g := range t.Games {
		if opp := g.Opponent(t.FullName); opponents[opp] {
			played[opp] = true
		}
	}
	return len(played) == len(opponents)
}

func divisionWinPercentage(teams []*league.Team, _ Env) []*league.Team {
	return keepMax(teams, func(t *league.Team) float64 { return t.DivisionWinPercentage })
}

// commonGames compares records against opponents every tied club has played.
// Conference ties need a minimum number of common games per club.
func commonGames(teams []*league.Team, env Env) []*league.Team {
	common := stats.CommonOpponents(teams)

	percentages := make(map[*league.Team]float64, len(teams))
	for _, t := range teams {
		record := stats.RecordAgainst(t, common)
		if env.Scope == ScopeConference && record.Games() < env.CommonGamesMinimum {
			return teams
		}
		percentages[t] = record.Percentage()
	}

	return keepMax(teams, func(t *league.Team) float64 { return percentages[t] })
}

func conferenceWinPercentage(teams []*league.Team, _ Env) []*league.Team {
	return keepMax(teams, func(t *league.Team) float64 { return t.ConferenceWinPercentage })
}

func strengthOfVictory(teams []*league.Team, _ Env) []*league.Team {
	return keepMax(teams, func(t *league.Team) float64 { return t.StrengthOfVictory })
}

func strengthOfSchedule(teams []*league.Team, _ Env) []*league.Team {
	return keepMax(teams, scheduleStrength)
}

// scheduleStrength is the metric compared by the strength of schedule tiebreaker.
// TODO: switch to t.StrengthOfSchedule once the league confirms the schedule rule
// should not compare strength of victory.
func scheduleStrength(t *league.Team) float64 {
	return t.StrengthOfVictory
}

// pointsRanking adds each club's rank in points scored and points allowed among
// the pool's teams; the lowest combined ranking wins. Clubs tied in a category
// share the better rank.
func pointsRanking(pool func(teams []*league.Team, env Env) []*league.Team) ruleFunc {
	return func(teams []*league.Team, env Env) []*league.Team {
		ranked := pool(teams, env)

		return keepMax(teams, func(t *league.Team) float64 {
			scored := competitionRank(ranked, func(o *league.Team) bool { return o.PointsScored > t.PointsScored })
			allowed := competitionRank(ranked, func(o *league.Team) bool { return o.PointsAllowed < t.PointsAllowed })
			return -float64(scored + allowed)
		})
	}
}

// competitionRank is one more than the number of pool teams ahead of a club
func competitionRank(pool []*league.Team, ahead func(*league.Team) bool) int {
	rank := 1
	for _, o := range pool {
		if ahead(o) {
			rank++
		}
	}
	return rank
}

func netPoints(opponents func(teams []*league.Team, env Env) map[string]bool) ruleFunc {
	return func(teams []*league.Team, env Env) []*league.Team {
		against := opponents(teams, env)
		return keepMax(teams, func(t *league.Team) float64 {
			return float64(stats.NetPointsAgainst(t, against))
		})
	}
}

func commonOpponents(teams []*league.Team, _ Env) map[string]bool {
	return stats.CommonOpponents(teams)
}

func conferenceOpponents(teams []*league.Team, env Env) map[string]bool {
	return stats.Names(conferencePool(teams, env))
}

func conferencePool(teams []*league.Team, env Env) []*league.Team {
	if len(env.Pool.Conference) > 0 {
		return env.Pool.Conference
	}
	return teams
}

func leaguePool(teams []*league.Team, env Env) []*league.Team {
	if len(env.Pool.League) > 0 {
		return env.Pool.League
	}
	return conferencePool(teams, env)
}

// highestDivisionRanks eliminates all but the highest ranked club of each
// division. Clubs without a division rank lose to ranked division mates.
func highestDivisionRanks(teams []*league.Team, _ Env) []*league.Team {
	best := make(map[string]*league.Team)
	for _, t := range teams {
		current, ok := best[t.Division]
		if !ok || divisionSeed(t) < divisionSeed(current) {
			best[t.Division] = t
		}
	}

	return league.Filter(teams, func(t *league.Team) bool { return best[t.Division] == t })
}

func divisionSeed(t *league.Team) int {
	if t.DivisionRank <= 0 {
		return math.MaxInt
	}
	return t.DivisionRank
}

func coinFlip(teams []*league.Team, env Env) []*league.Team {
	return []*league.Team{teams[env.Flipper.Intn(len(teams))]}
}

// keepMax returns every team whose metric equals the group's best value
func keepMax(teams []*league.Team, metric func(*league.Team) float64) []*league.Team {
	values := make([]float64, len(teams))
	best := math.Inf(-1)
	for i, t := range teams {
		values[i] = metric(t)
		if values[i] > best {
			best = values[i]
		}
	}

	var winners []*league.Team
	for i, t := range teams {
		if values[i] >= best {
			winners = append(winners, t)
		}
	}
	return winners
}
