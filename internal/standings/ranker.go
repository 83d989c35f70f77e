// Package standings assigns division and conference ranks to a season's teams.
package standings

import (
	"fmt"
	"sort"

	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/sam-maryland/nfl-standings/internal/tiebreak"
	"github.com/sirupsen/logrus"
)

// Ranker ranks teams within their divisions and conferences.
// It writes DivisionRank and ConferenceRank on the teams it is given, so a
// team set must not be ranked by two goroutines at once.
type Ranker struct {
	logger   *logrus.Logger
	resolver *tiebreak.Resolver
	league   []*league.Team
}

// NewRanker creates a new ranker. leagueTeams is every team in the league and
// is used by tiebreakers that compare against the whole league or conference.
// When leagueTeams is empty the league points ranking only covers the teams
// being ranked, and RankDivision compares conference points and net points
// against the division alone.
func NewRanker(logger *logrus.Logger, resolver *tiebreak.Resolver, leagueTeams []*league.Team) *Ranker {
	return &Ranker{
		logger:   logger,
		resolver: resolver,
		league:   leagueTeams,
	}
}

// RankDivision attaches a DivisionRank to each team in the division and
// returns the teams in rank order
func (r *Ranker) RankDivision(teams []*league.Team) ([]*league.Team, error) {
	if len(teams) == 0 {
		return nil, nil
	}

	return r.rankDivision(teams, tiebreak.Pool{
		League:     r.leaguePool(teams),
		Conference: r.conferencePool(teams[0].Conference, teams),
	})
}

func (r *Ranker) rankDivision(teams []*league.Team, pool tiebreak.Pool) ([]*league.Team, error) {
	err := r.rank(teams, tiebreak.ScopeDivision, pool,
		func(t *league.Team) float64 { return t.DivisionWinPercentage },
		func(t *league.Team, rank int) { t.DivisionRank = rank },
	)
	if err != nil {
		return nil, fmt.Errorf("ranking division %s: %w", teams[0].Division, err)
	}

	return byRank(teams, func(t *league.Team) int { return t.DivisionRank }), nil
}

// RankConference attaches a DivisionRank and a ConferenceRank to each team in
// the conference and returns the teams in conference rank order.
// Division ranks are settled first because conference ties with more than two
// clubs only consider the best ranked club of each division.
func (r *Ranker) RankConference(teams []*league.Team) ([]*league.Team, error) {
	if len(teams) == 0 {
		return nil, nil
	}

	pool := tiebreak.Pool{
		League:     r.leaguePool(teams),
		Conference: teams,
	}

	// division ties compare against the whole conference, not just the division
	for _, division := range league.SplitDivisions(teams) {
		if _, err := r.rankDivision(division.Teams, pool); err != nil {
			return nil, err
		}
	}

	err := r.rank(teams, tiebreak.ScopeConference, pool,
		func(t *league.Team) float64 { return t.ConferenceWinPercentage },
		func(t *league.Team, rank int) { t.ConferenceRank = rank },
	)
	if err != nil {
		return nil, fmt.Errorf("ranking conference %s: %w", teams[0].Conference, err)
	}

	return byRank(teams, func(t *league.Team) int { return t.ConferenceRank }), nil
}

// RankLeague ranks every conference in the league and returns each
// conference's teams in rank order, keyed by conference name
func (r *Ranker) RankLeague(teams []*league.Team) (map[string][]*league.Team, error) {
	ranked := make(map[string][]*league.Team)
	for _, conference := range league.Conferences(teams) {
		conferenceTeams := league.Filter(teams, func(t *league.Team) bool { return t.Conference == conference })

		ordered, err := r.RankConference(conferenceTeams)
		if err != nil {
			return nil, err
		}
		ranked[conference] = ordered
	}

	r.logger.WithFields(logrus.Fields{
		"teams":       len(teams),
		"conferences": len(ranked),
	}).Info("Ranked league")

	return ranked, nil
}

// rank walks teams from the best win percentage down. Teams on the same
// percentage are handed to the resolver as one group and take the ranks that
// follow the teams ahead of them.
func (r *Ranker) rank(teams []*league.Team, scope tiebreak.Scope, pool tiebreak.Pool, percentage func(*league.Team) float64, assign func(*league.Team, int)) error {
	sorted := append([]*league.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return percentage(sorted[i]) > percentage(sorted[j])
	})

	rank := 1
	var tied []*league.Team

	flush := func() error {
		if len(tied) == 1 {
			assign(tied[0], rank)
			rank++
			return nil
		}

		r.logger.WithFields(logrus.Fields{
			"scope":      scope,
			"teams":      len(tied),
			"start_rank": rank,
			"percentage": percentage(tied[0]),
		}).Debug("Breaking tie")

		placements, err := r.resolver.BreakTies(tied, rank, scope, pool)
		if err != nil {
			return err
		}
		for _, p := range placements {
			assign(p.Team, p.Rank)
		}
		rank += len(tied)
		return nil
	}

	for _, team := range sorted {
		if len(tied) > 0 && percentage(team) != percentage(tied[0]) {
			if err := flush(); err != nil {
				return err
			}
			tied = nil
		}
		tied = append(tied, team)
	}

	return flush()
}

func (r *Ranker) leaguePool(teams []*league.Team) []*league.Team {
	if len(r.league) > 0 {
		return r.league
	}
	return teams
}

func (r *Ranker) conferencePool(conference string, teams []*league.Team) []*league.Team {
	pool := league.Filter(r.league, func(t *league.Team) bool { return t.Conference == conference })
	if len(pool) > 0 {
		return pool
	}
	return teams
}

func byRank(teams []*league.Team, rank func(*league.Team) int) []*league.Team {
	ordered := append([]*league.Team(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})
	return ordered
}
