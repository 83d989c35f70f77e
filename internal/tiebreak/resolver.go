package tiebreak

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/sirupsen/logrus"
)

// Placement is a team's resolved finish within a tie
type Placement struct {
	Team *league.Team
	Rank int
}

// Resolver breaks ties by running the catalog's tiebreakers in order
type Resolver struct {
	logger             *logrus.Logger
	flipper            Flipper
	commonGamesMinimum int

	lookup func(scope Scope, index, size int) (Rule, error)
	apply  func(rule Rule, teams []*league.Team, env Env) ([]*league.Team, error)
}

// Option configures a Resolver
type Option func(*Resolver)

// WithFlipper sets the coin used by the final tiebreaker
func WithFlipper(f Flipper) Option {
	return func(r *Resolver) {
		r.flipper = f
	}
}

// WithSeed seeds the coin used by the final tiebreaker
func WithSeed(seed int64) Option {
	return func(r *Resolver) {
		r.flipper = rand.New(rand.NewSource(seed))
	}
}

// WithCommonGamesMinimum sets the common games a club needs before the
// common games tiebreaker applies to a conference tie
func WithCommonGamesMinimum(n int) Option {
	return func(r *Resolver) {
		r.commonGamesMinimum = n
	}
}

// NewResolver creates a new tiebreak resolver
func NewResolver(logger *logrus.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		logger:             logger,
		flipper:            rand.New(rand.NewSource(time.Now().UnixNano())),
		commonGamesMinimum: DefaultCommonGamesMinimum,
		lookup:             Lookup,
		apply:              Apply,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BreakTies orders teams that are tied in scope, best first. The first team
// gets startRank and each following team the next rank.
//
// Any tiebreaker that eliminates a team sends the remaining teams back to the
// first tiebreaker. Once a single team is left it takes the next rank and the
// rest of the group starts over from the first tiebreaker.
func (r *Resolver) BreakTies(group []*league.Team, startRank int, scope Scope, pool Pool) ([]Placement, error) {
	env := Env{
		Scope:              scope,
		Pool:               pool,
		Flipper:            r.flipper,
		CommonGamesMinimum: r.commonGamesMinimum,
	}

	placements := make([]Placement, 0, len(group))
	placed := make(map[*league.Team]bool, len(group))
	remaining := append([]*league.Team(nil), group...)
	index := 1

	for len(placements) < len(group) {
		for len(remaining) > 1 {
			before := len(remaining)

			rule, err := r.lookup(scope, index, before)
			if err != nil {
				return nil, err
			}

			survivors, err := r.apply(rule, remaining, env)
			if err != nil {
				return nil, fmt.Errorf("running %s tiebreaker: %w", rule, err)
			}
			if len(survivors) == 0 {
				return nil, fmt.Errorf("%w: scope = %s, rule = %s", ErrEmptyField, scope, rule)
			}

			r.logger.WithFields(logrus.Fields{
				"scope":  scope,
				"rule":   rule,
				"index":  index,
				"before": before,
				"after":  len(survivors),
			}).Debug("Applied tiebreaker")

			remaining = survivors
			if len(survivors) < before {
				index = 1
			} else {
				index++
			}
		}

		winner := remaining[0]
		placements = append(placements, Placement{Team: winner, Rank: startRank + len(placements)})
		placed[winner] = true

		remaining = league.Filter(group, func(t *league.Team) bool { return !placed[t] })
		index = 1
	}

	return placements, nil
}
