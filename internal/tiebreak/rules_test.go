package tiebreak

import (
	"testing"

	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("division")
	require.NoError(t, err)
	assert.Equal(t, ScopeDivision, scope)

	scope, err = ParseScope("conference")
	require.NoError(t, err)
	assert.Equal(t, ScopeConference, scope)

	_, err = ParseScope("league")
	assert.Error(t, err)
}

func TestKeepMax(t *testing.T) {
	a, b, c := newTeam("A", "N", "NFC"), newTeam("B", "N", "NFC"), newTeam("C", "N", "NFC")
	a.StrengthOfVictory, b.StrengthOfVictory, c.StrengthOfVictory = 0.5, 0.625, 0.625

	got := keepMax([]*league.Team{a, b, c}, func(t *league.Team) float64 { return t.StrengthOfVictory })
	assert.Equal(t, []string{"B", "C"}, names(got))
}

func TestHeadToHead_Division(t *testing.T) {
	a, b, c := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC"), newTeam("C", "North", "NFC")
	play(a, 24, b, 10)
	play(c, 7, a, 14)
	play(b, 21, c, 20)

	got := headToHead([]*league.Team{a, b, c}, divisionEnv())
	assert.Equal(t, []string{"A"}, names(got))

	got = headToHead([]*league.Team{b, c}, divisionEnv())
	assert.Equal(t, []string{"B"}, names(got))
}

func TestHeadToHead_DivisionWithoutGames(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")

	got := headToHead([]*league.Team{a, b}, divisionEnv())
	assert.Equal(t, []string{"A", "B"}, names(got))
}

func TestHeadToHead_Conference(t *testing.T) {
	tests := []struct {
		name  string
		games func(a, b, c *league.Team)
		want  []string
	}{
		{
			name: "win sweep wins outright",
			games: func(a, b, c *league.Team) {
				play(a, 20, b, 10)
				play(c, 3, a, 6)
				play(b, 17, c, 17)
			},
			want: []string{"A"},
		},
		{
			name: "loss sweep is eliminated",
			games: func(a, b, c *league.Team) {
				play(a, 20, b, 10)
				play(b, 20, a, 10)
				play(a, 20, c, 10)
				play(b, 20, c, 10)
			},
			want: []string{"A", "B"},
		},
		{
			name: "incomplete schedule without sweep is a no-op",
			games: func(a, b, c *league.Team) {
				play(a, 20, b, 10)
				play(b, 20, c, 10)
			},
			want: []string{"A", "B", "C"},
		},
		{
			name:  "no games is a no-op",
			games: func(a, b, c *league.Team) {},
			want:  []string{"A", "B", "C"},
		},
		{
			name: "everyone played keeps the best percentage",
			games: func(a, b, c *league.Team) {
				play(a, 20, b, 10)
				play(b, 20, a, 10)
				play(a, 20, c, 10)
				play(c, 20, a, 10)
				play(b, 20, c, 10)
				play(b, 10, c, 10)
			},
			want: []string{"B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, c := newTeam("A", "North", "NFC"), newTeam("B", "South", "NFC"), newTeam("C", "East", "NFC")
			tt.games(a, b, c)

			got := headToHead([]*league.Team{a, b, c}, conferenceEnv())
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestHeadToHead_ConferenceDoesNotMutateInput(t *testing.T) {
	a, b, c := newTeam("A", "North", "NFC"), newTeam("B", "South", "NFC"), newTeam("C", "East", "NFC")
	play(a, 20, c, 10)
	play(b, 20, c, 10)
	play(a, 20, b, 10)
	play(b, 20, a, 10)

	group := []*league.Team{a, b, c}
	_ = headToHead(group, conferenceEnv())
	assert.Equal(t, []string{"A", "B", "C"}, names(group))
}

func TestCommonGames(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	opponents := []*league.Team{
		newTeam("W", "West", "NFC"), newTeam("X", "West", "NFC"),
		newTeam("Y", "West", "NFC"), newTeam("Z", "West", "NFC"),
	}

	play(a, 20, opponents[0], 10)
	play(a, 20, opponents[1], 10)
	play(b, 20, opponents[0], 10)
	play(b, 10, opponents[1], 20)
	// only A played Y
	play(a, 0, opponents[2], 30)

	t.Run("division only needs common opponents", func(t *testing.T) {
		got := commonGames([]*league.Team{a, b}, divisionEnv())
		assert.Equal(t, []string{"A"}, names(got))
	})

	t.Run("conference needs the minimum common games", func(t *testing.T) {
		got := commonGames([]*league.Team{a, b}, conferenceEnv())
		assert.Equal(t, []string{"A", "B"}, names(got))
	})

	t.Run("conference applies once the minimum is met", func(t *testing.T) {
		env := conferenceEnv()
		env.CommonGamesMinimum = 2
		got := commonGames([]*league.Team{a, b}, env)
		assert.Equal(t, []string{"A"}, names(got))
	})

	t.Run("no common opponents keeps everyone", func(t *testing.T) {
		c := newTeam("C", "North", "NFC")
		play(c, 20, opponents[3], 10)
		got := commonGames([]*league.Team{a, b, c}, divisionEnv())
		assert.Equal(t, []string{"A", "B", "C"}, names(got))
	})
}

func TestPercentageRules(t *testing.T) {
	a, b, c := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC"), newTeam("C", "North", "NFC")
	a.DivisionWinPercentage, b.DivisionWinPercentage, c.DivisionWinPercentage = 0.5, 0.5, 0.25
	a.ConferenceWinPercentage, b.ConferenceWinPercentage, c.ConferenceWinPercentage = 0.4, 0.6, 0.6
	a.StrengthOfVictory, b.StrengthOfVictory, c.StrengthOfVictory = 0.7, 0.3, 0.3
	group := []*league.Team{a, b, c}

	assert.Equal(t, []string{"A", "B"}, names(divisionWinPercentage(group, divisionEnv())))
	assert.Equal(t, []string{"B", "C"}, names(conferenceWinPercentage(group, divisionEnv())))
	assert.Equal(t, []string{"A"}, names(strengthOfVictory(group, divisionEnv())))
}

// The strength of schedule tiebreaker compares strength of victory until the
// intended metric is confirmed. This fails once the two are separated.
func TestStrengthOfSchedule_ComparesVictoryStrength(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	a.StrengthOfVictory, b.StrengthOfVictory = 0.4, 0.6
	a.StrengthOfSchedule, b.StrengthOfSchedule = 0.6, 0.4

	assert.Equal(t, []string{"B"}, names(strengthOfSchedule([]*league.Team{a, b}, divisionEnv())))
	assert.Equal(t,
		names(strengthOfVictory([]*league.Team{a, b}, divisionEnv())),
		names(strengthOfSchedule([]*league.Team{a, b}, divisionEnv())),
	)
}

func TestPointsRanking(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	c, d := newTeam("C", "South", "NFC"), newTeam("D", "East", "AFC")

	// scored ranks: C 1, A 2, B 2, D 4
	// allowed ranks: C 1, A 2, D 2, B 4
	a.PointsScored, a.PointsAllowed = 300, 200
	b.PointsScored, b.PointsAllowed = 300, 250
	c.PointsScored, c.PointsAllowed = 350, 180
	d.PointsScored, d.PointsAllowed = 280, 200

	env := divisionEnv()
	env.Pool = Pool{League: []*league.Team{a, b, c, d}, Conference: []*league.Team{a, b, c}}

	got := pointsRanking(conferencePool)([]*league.Team{a, b}, env)
	assert.Equal(t, []string{"A"}, names(got))

	got = pointsRanking(leaguePool)([]*league.Team{b, d}, env)
	assert.Equal(t, []string{"B", "D"}, names(got), "B has 2+4, D has 4+2 in the league pool")

	got = pointsRanking(conferencePool)([]*league.Team{b, c}, env)
	assert.Equal(t, []string{"C"}, names(got))

	// ties in a category share the better rank
	assert.Equal(t, 2, competitionRank(env.Pool.League, func(o *league.Team) bool { return o.PointsScored > b.PointsScored }))
	assert.Equal(t, 4, competitionRank(env.Pool.League, func(o *league.Team) bool { return o.PointsScored > d.PointsScored }))
}

func TestPointsRanking_EqualRanksKeepEveryone(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	a.PointsScored, a.PointsAllowed = 300, 250
	b.PointsScored, b.PointsAllowed = 250, 200

	got := pointsRanking(conferencePool)([]*league.Team{a, b}, divisionEnv())
	assert.Equal(t, []string{"A", "B"}, names(got))
}

func TestNetPoints(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	x, y := newTeam("X", "South", "NFC"), newTeam("Y", "West", "AFC")

	play(a, 30, x, 10) // +20
	play(b, 24, x, 21) // +3
	play(a, 0, y, 35)  // -35, not a conference game
	play(b, 20, y, 10) // +10
	play(a, 17, b, 10) // +7 / -7

	env := divisionEnv()
	env.Pool = Pool{Conference: []*league.Team{a, b, x}}

	got := netPoints(commonOpponents)([]*league.Team{a, b}, env)
	assert.Equal(t, []string{"B"}, names(got), "A +20-35 = -15, B +3+10 = 13 vs X and Y")

	got = netPoints(conferenceOpponents)([]*league.Team{a, b}, env)
	assert.Equal(t, []string{"A"}, names(got), "A +20+7 = 27, B +3-7 = -4 in conference games")
}

func TestHighestDivisionRanks(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	c, d := newTeam("C", "South", "NFC"), newTeam("D", "West", "NFC")
	e := newTeam("E", "South", "NFC")
	a.DivisionRank, b.DivisionRank = 3, 2
	c.DivisionRank, e.DivisionRank = 0, 4
	d.DivisionRank = 1

	got := highestDivisionRanks([]*league.Team{a, b, c, d, e}, conferenceEnv())
	assert.Equal(t, []string{"B", "D", "E"}, names(got))
}

func TestCoinFlip(t *testing.T) {
	a, b, c := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC"), newTeam("C", "North", "NFC")

	env := divisionEnv()
	env.Flipper = fixedFlipper(2)
	assert.Equal(t, []string{"C"}, names(coinFlip([]*league.Team{a, b, c}, env)))

	env.Flipper = fixedFlipper(4)
	assert.Equal(t, []string{"B"}, names(coinFlip([]*league.Team{a, b, c}, env)))
}

func TestApply(t *testing.T) {
	a, b := newTeam("A", "North", "NFC"), newTeam("B", "North", "NFC")
	a.DivisionWinPercentage, b.DivisionWinPercentage = 0.75, 0.5

	got, err := Apply(RuleDivisionWinPercentage, []*league.Team{a, b}, divisionEnv())
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, names(got))

	_, err = Apply(Rule("points_per_drive"), []*league.Team{a, b}, divisionEnv())
	assert.ErrorIs(t, err, ErrUnknownRule)

	_, err = Apply(RuleCoinFlip, []*league.Team{a, b}, Env{Scope: ScopeDivision})
	assert.ErrorIs(t, err, ErrNoFlipper)
}

func TestEveryCatalogRuleIsImplemented(t *testing.T) {
	for _, e := range Catalog {
		_, ok := ruleFuncs[e.Rule]
		assert.True(t, ok, "rule %s has no implementation", e.Rule)
	}
	_, ok := ruleFuncs[RuleCoinFlip]
	assert.True(t, ok)
}
