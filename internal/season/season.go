// Package season loads season files and derives the records the tiebreakers read.
package season

import (
	"fmt"
	"os"

	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/sam-maryland/nfl-standings/internal/stats"
	"gopkg.in/yaml.v3"
)

// ValidationError describes a season file that cannot be ranked
type ValidationError struct {
	Team    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Team == "" {
		return e.Message
	}
	return fmt.Sprintf("team %q: %s", e.Team, e.Message)
}

// Load reads a YAML or JSON season file
func Load(path string) (*league.Season, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read season file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a season document
func Parse(data []byte) (*league.Season, error) {
	var s league.Season
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse season: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every team is uniquely named and placed in a division
// and conference, and that every game is between known teams
func Validate(s *league.Season) error {
	if len(s.Teams) == 0 {
		return &ValidationError{Message: "season has no teams"}
	}

	known := make(map[string]bool, len(s.Teams))
	for _, t := range s.Teams {
		switch {
		case t.FullName == "":
			return &ValidationError{Message: "team is missing full_name"}
		case known[t.FullName]:
			return &ValidationError{Team: t.FullName, Message: "duplicate team"}
		case t.Division == "" || t.Conference == "":
			return &ValidationError{Team: t.FullName, Message: "team needs a division and a conference"}
		}
		known[t.FullName] = true
	}

	for _, g := range s.Games {
		for _, name := range []string{g.HomeTeamName, g.AwayTeamName} {
			if !known[name] {
				return &ValidationError{Team: name, Message: fmt.Sprintf("week %d game references an unknown team", g.Week)}
			}
		}
		if g.HomeTeamName == g.AwayTeamName {
			return &ValidationError{Team: g.HomeTeamName, Message: fmt.Sprintf("week %d game is against itself", g.Week)}
		}
	}
	return nil
}

// Derive attaches the season's games to each team and computes overall,
// division and conference records, points, strength of victory and strength
// of schedule. Playoff games are ignored. Teams without games keep the
// records they were loaded with.
func Derive(s *league.Season) {
	if len(s.Games) > 0 {
		for _, t := range s.Teams {
			t.Games = nil
		}
		for _, g := range s.Games {
			if g.IsPlayoffs {
				continue
			}
			if home, ok := s.Team(g.HomeTeamName); ok {
				home.Games = append(home.Games, g)
			}
			if away, ok := s.Team(g.AwayTeamName); ok {
				away.Games = append(away.Games, g)
			}
		}
	}

	byName := make(map[string]*league.Team, len(s.Teams))
	for _, t := range s.Teams {
		byName[t.FullName] = t
	}

	records := make(map[string]stats.Record, len(s.Teams))
	for _, t := range s.Teams {
		if regularSeason(t.Games) == 0 {
			continue
		}
		deriveRecords(t, byName)
		records[t.FullName] = stats.Record{Wins: t.Wins, Losses: t.Losses, Ties: t.Ties}
	}

	for _, t := range s.Teams {
		if regularSeason(t.Games) == 0 {
			continue
		}
		t.StrengthOfVictory, t.StrengthOfSchedule = strengths(t, records)
	}
}

func deriveRecords(t *league.Team, byName map[string]*league.Team) {
	var overall, division, conference stats.Record
	t.PointsScored, t.PointsAllowed = 0, 0

	for _, g := range t.Games {
		if g.IsPlayoffs {
			continue
		}
		overall.Add(t.FullName, g)

		own, opp := g.ScoreFor(t.FullName)
		t.PointsScored += own
		t.PointsAllowed += opp

		opponent, ok := byName[g.Opponent(t.FullName)]
		if !ok || opponent.Conference != t.Conference {
			continue
		}
		conference.Add(t.FullName, g)
		if opponent.Division == t.Division {
			division.Add(t.FullName, g)
		}
	}

	t.Wins, t.Losses, t.Ties = overall.Wins, overall.Losses, overall.Ties
	t.WinPercentage = overall.Percentage()
	t.DivisionWins, t.DivisionLosses, t.DivisionTies = division.Wins, division.Losses, division.Ties
	t.DivisionWinPercentage = division.Percentage()
	t.ConferenceWins, t.ConferenceLosses, t.ConferenceTies = conference.Wins, conference.Losses, conference.Ties
	t.ConferenceWinPercentage = conference.Percentage()
}

// strengths returns the combined record of the opponents t beat and the
// combined record of every opponent t played, one entry per game
func strengths(t *league.Team, records map[string]stats.Record) (victory, schedule float64) {
	var beaten, played stats.Record
	for _, g := range t.Games {
		if g.IsPlayoffs {
			continue
		}
		record := records[g.Opponent(t.FullName)]
		played.Merge(record)
		if winner, decided := stats.GameWinner(g); decided && winner == t.FullName {
			beaten.Merge(record)
		}
	}
	return combined(beaten), combined(played)
}

func combined(r stats.Record) float64 {
	if r.Games() == 0 {
		return 0
	}
	return r.Percentage()
}

func regularSeason(games []league.Game) int {
	n := 0
	for _, g := range games {
		if !g.IsPlayoffs {
			n++
		}
	}
	return n
}
