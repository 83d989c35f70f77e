package league

import "time"

// Season represents one league season as loaded from a season file
type Season struct {
	Name                   string  `yaml:"name" json:"name"`
	Year                   int     `yaml:"year" json:"year"`
	RegularSeasonWeekCount int     `yaml:"regular_season_week_count" json:"regular_season_week_count"`
	PlayoffTeams           int     `yaml:"playoff_teams" json:"playoff_teams"`
	Teams                  []*Team `yaml:"teams" json:"teams"`
	Games                  []Game  `yaml:"games" json:"games,omitempty"`
}

// Team represents a club's season record plus its computed standings ranks
type Team struct {
	Location   string `yaml:"location" json:"location,omitempty"`
	Name       string `yaml:"name" json:"name,omitempty"`
	FullName   string `yaml:"full_name" json:"full_name"`
	Division   string `yaml:"division" json:"division"`
	Conference string `yaml:"conference" json:"conference"`

	Wins          int     `yaml:"wins" json:"wins"`
	Losses        int     `yaml:"losses" json:"losses"`
	Ties          int     `yaml:"ties" json:"ties"`
	WinPercentage float64 `yaml:"win_percentage" json:"win_percentage"`

	DivisionWins          int     `yaml:"division_wins" json:"division_wins"`
	DivisionLosses        int     `yaml:"division_losses" json:"division_losses"`
	DivisionTies          int     `yaml:"division_ties" json:"division_ties"`
	DivisionWinPercentage float64 `yaml:"division_win_percentage" json:"division_win_percentage"`

	ConferenceWins          int     `yaml:"conference_wins" json:"conference_wins"`
	ConferenceLosses        int     `yaml:"conference_losses" json:"conference_losses"`
	ConferenceTies          int     `yaml:"conference_ties" json:"conference_ties"`
	ConferenceWinPercentage float64 `yaml:"conference_win_percentage" json:"conference_win_percentage"`

	StrengthOfVictory  float64 `yaml:"strength_of_victory" json:"strength_of_victory"`
	StrengthOfSchedule float64 `yaml:"strength_of_schedule" json:"strength_of_schedule"`

	PointsScored  int `yaml:"points_scored" json:"points_scored"`
	PointsAllowed int `yaml:"points_allowed" json:"points_allowed"`

	DivisionRank   int `yaml:"division_rank" json:"division_rank"`
	ConferenceRank int `yaml:"conference_rank" json:"conference_rank"`

	Games []Game `yaml:"games" json:"-"`
}

// Division is a group of teams that play each other twice a season
type Division struct {
	Name       string
	Conference string
	Teams      []*Team
}

// Game represents a completed game between two teams
type Game struct {
	Week          int       `yaml:"week" json:"week"`
	StartTime     time.Time `yaml:"start_time" json:"start_time"`
	IsPlayoffs    bool      `yaml:"is_playoffs" json:"is_playoffs,omitempty"`
	WasOvertime   bool      `yaml:"was_overtime" json:"was_overtime,omitempty"`
	AwayTeamName  string    `yaml:"away_team" json:"away_team"`
	AwayTeamScore int       `yaml:"away_score" json:"away_score"`
	HomeTeamName  string    `yaml:"home_team" json:"home_team"`
	HomeTeamScore int       `yaml:"home_score" json:"home_score"`
}

// Involves reports whether the named team played in the game
func (g Game) Involves(team string) bool {
	return g.HomeTeamName == team || g.AwayTeamName == team
}

// Opponent returns the name of the team that played against team.
// It returns an empty string when team did not play in the game.
func (g Game) Opponent(team string) string {
	switch team {
	case g.HomeTeamName:
		return g.AwayTeamName
	case g.AwayTeamName:
		return g.HomeTeamName
	}
	return ""
}

// ScoreFor returns the points scored by team and by its opponent
func (g Game) ScoreFor(team string) (own, opp int) {
	if g.AwayTeamName == team {
		return g.AwayTeamScore, g.HomeTeamScore
	}
	return g.HomeTeamScore, g.AwayTeamScore
}

// Conferences returns the season's distinct conference names in first-seen order
func (s *Season) Conferences() []string {
	return Conferences(s.Teams)
}

// Divisions returns the season's distinct division names in first-seen order
func (s *Season) Divisions() []string {
	return Divisions(s.Teams)
}

// TeamsInConference returns the season's teams belonging to conference
func (s *Season) TeamsInConference(conference string) []*Team {
	return Filter(s.Teams, func(t *Team) bool { return t.Conference == conference })
}

// Team looks up a team by its full name
func (s *Season) Team(fullName string) (*Team, bool) {
	for _, t := range s.Teams {
		if t.FullName == fullName {
			return t, true
		}
	}
	return nil, false
}

// Conferences returns the distinct conference names of teams in first-seen order
func Conferences(teams []*Team) []string {
	return distinct(teams, func(t *Team) string { return t.Conference })
}

// Divisions returns the distinct division names of teams in first-seen order
func Divisions(teams []*Team) []string {
	return distinct(teams, func(t *Team) string { return t.Division })
}

// SplitDivisions groups teams by division in first-seen order
func SplitDivisions(teams []*Team) []Division {
	var out []Division
	for _, name := range Divisions(teams) {
		members := Filter(teams, func(t *Team) bool { return t.Division == name })
		out = append(out, Division{Name: name, Conference: members[0].Conference, Teams: members})
	}
	return out
}

// Filter returns the teams for which keep returns true, preserving order
func Filter(teams []*Team, keep func(*Team) bool) []*Team {
	var out []*Team
	for _, t := range teams {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func distinct(teams []*Team, key func(*Team) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range teams {
		k := key(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
