package tiebreak

import (
	"github.com/sam-maryland/nfl-standings/internal/league"
)

// fixedFlipper always lands on the same index
type fixedFlipper int

func (f fixedFlipper) Intn(n int) int {
	return int(f) % n
}

func newTeam(name, division, conference string) *league.Team {
	return &league.Team{FullName: name, Division: division, Conference: conference}
}

// play records a completed game on both teams
func play(home *league.Team, homeScore int, away *league.Team, awayScore int) {
	g := league.Game{
		HomeTeamName:  home.FullName,
		HomeTeamScore: homeScore,
		AwayTeamName:  away.FullName,
		AwayTeamScore: awayScore,
	}
	home.Games = append(home.Games, g)
	away.Games = append(away.Games, g)
}

func names(teams []*league.Team) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = t.FullName
	}
	return out
}

func placementNames(placements []Placement) []string {
	out := make([]string, len(placements))
	for i, p := range placements {
		out[i] = p.Team.FullName
	}
	return out
}

func divisionEnv() Env {
	return Env{Scope: ScopeDivision, Flipper: fixedFlipper(0), CommonGamesMinimum: DefaultCommonGamesMinimum}
}

func conferenceEnv() Env {
	return Env{Scope: ScopeConference, Flipper: fixedFlipper(0), CommonGamesMinimum: DefaultCommonGamesMinimum}
}
