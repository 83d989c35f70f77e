// Package stats holds the small game-level calculations the tiebreakers are built on.
package stats

import "github.com/sam-maryland/nfl-standings/internal/league"

// NoGames is returned by WinPercentage when no games were played.
// It sorts below every real percentage.
const NoGames = -1.0

// WinPercentage determines a win percentage where ties count as half a win and half a loss
func WinPercentage(wins, losses, ties int) float64 {
	games := wins + losses + ties
	if games == 0 {
		return NoGames
	}
	return (float64(wins) + float64(ties)*0.5) / float64(games)
}

// GameWinner returns the full name of the winning team.
// decided is false when the game ended in a tie.
func GameWinner(g league.Game) (winner string, decided bool) {
	switch {
	case g.HomeTeamScore > g.AwayTeamScore:
		return g.HomeTeamName, true
	case g.AwayTeamScore > g.HomeTeamScore:
		return g.AwayTeamName, true
	}
	return "", false
}

// Record is a won-lost-tied record
type Record struct {
	Wins   int
	Losses int
	Ties   int
}

// Add counts game from team's point of view
func (r *Record) Add(team string, g league.Game) {
	winner, decided := GameWinner(g)
	switch {
	case !decided:
		r.Ties++
	case winner == team:
		r.Wins++
	default:
		r.Losses++
	}
}

// Merge adds other's results to r
func (r *Record) Merge(other Record) {
	r.Wins += other.Wins
	r.Losses += other.Losses
	r.Ties += other.Ties
}

// Games returns the number of games in the record
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// Percentage returns the record's win percentage, or NoGames
func (r Record) Percentage() float64 {
	return WinPercentage(r.Wins, r.Losses, r.Ties)
}

// RecordAgainst returns team's record in games against any of opponents
func RecordAgainst(team *league.Team, opponents map[string]bool) Record {
	var r Record
	for _, g := range team.Games {
		if opponents[g.Opponent(team.FullName)] {
			r.Add(team.FullName, g)
		}
	}
	return r
}

// NetPointsAgainst sums team's score minus the opponent's score over games against opponents.
// A nil set counts every game.
func NetPointsAgainst(team *league.Team, opponents map[string]bool) int {
	net := 0
	for _, g := range team.Games {
		if opponents != nil && !opponents[g.Opponent(team.FullName)] {
			continue
		}
		own, opp := g.ScoreFor(team.FullName)
		net += own - opp
	}
	return net
}

// CommonOpponents returns the opponents every one of teams has played at least once
func CommonOpponents(teams []*league.Team) map[string]bool {
	counts := make(map[string]int)
	for _, t := range teams {
		// divisional opponents are played twice but count once
		seen := make(map[string]bool)
		for _, g := range t.Games {
			opp := g.Opponent(t.FullName)
			if opp == "" || opp == t.FullName || seen[opp] {
				continue
			}
			seen[opp] = true
			counts[opp]++
		}
	}

	common := make(map[string]bool)
	for opp, n := range counts {
		if n == len(teams) {
			common[opp] = true
		}
	}
	return common
}

// Names returns the set of the teams' full names
func Names(teams []*league.Team) map[string]bool {
	names := make(map[string]bool, len(teams))
	for _, t := range teams {
		names[t.FullName] = true
	}
	return names
}
