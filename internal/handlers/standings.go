package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sam-maryland/nfl-standings/internal/config"
	"github.com/sam-maryland/nfl-standings/internal/league"
	"github.com/sam-maryland/nfl-standings/internal/season"
	"github.com/sam-maryland/nfl-standings/internal/standings"
	"github.com/sam-maryland/nfl-standings/internal/tiebreak"
	"github.com/sirupsen/logrus"
)

// SeasonLoader loads a season by path
type SeasonLoader interface {
	LoadSeason(path string) (*league.Season, error)
}

// FileLoader reads seasons from YAML or JSON files
type FileLoader struct{}

// LoadSeason implements SeasonLoader
func (FileLoader) LoadSeason(path string) (*league.Season, error) {
	return season.Load(path)
}

// RankArgs represents the parameters for ranking a season
type RankArgs struct {
	SeasonPath string `json:"season_path"`
	Conference string `json:"conference,omitempty"`
}

// RulesArgs represents the parameters for listing a tiebreaker sequence
type RulesArgs struct {
	Scope string `json:"scope"`
	Size  int    `json:"size"`
}

// StandingEntry represents a team's place in its conference
type StandingEntry struct {
	ConferenceRank int     `json:"conference_rank"`
	Division       string  `json:"division"`
	DivisionRank   int     `json:"division_rank"`
	TeamName       string  `json:"team_name"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	WinPercentage  float64 `json:"win_percentage"`
	PointsFor      int     `json:"points_for"`
	PointsAgainst  int     `json:"points_against"`
}

// ConferenceStandings lists one conference's teams in rank order
type ConferenceStandings struct {
	Conference string          `json:"conference"`
	Teams      []StandingEntry `json:"teams"`
}

// StandingsResponse is the result of ranking a season
type StandingsResponse struct {
	Season      string                `json:"season"`
	Year        int                   `json:"year,omitempty"`
	Conferences []ConferenceStandings `json:"conferences"`
}

// RulesResponse lists the tiebreakers applied to a tie, in order
type RulesResponse struct {
	Scope string   `json:"scope"`
	Size  int      `json:"size"`
	Rules []string `json:"rules"`
}

// StandingsHandler ranks seasons and describes the tiebreaker catalog
type StandingsHandler struct {
	loader   SeasonLoader
	logger   *logrus.Logger
	settings *config.Settings
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(loader SeasonLoader, logger *logrus.Logger, settings *config.Settings) *StandingsHandler {
	if settings == nil {
		settings = config.Default()
	}
	return &StandingsHandler{
		loader:   loader,
		logger:   logger,
		settings: settings,
	}
}

// HandleRank loads a season, derives its records and ranks every conference
func (h *StandingsHandler) HandleRank(args RankArgs) (*StandingsResponse, error) {
	h.logger.WithField("season_path", args.SeasonPath).Info("Handling rank")

	if args.SeasonPath == "" {
		return nil, fmt.Errorf("season path is required")
	}

	s, err := h.loader.LoadSeason(args.SeasonPath)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load season")
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	season.Derive(s)

	teams := s.Teams
	if args.Conference != "" {
		teams = s.TeamsInConference(args.Conference)
		if len(teams) == 0 {
			return nil, fmt.Errorf("no teams in conference %q", args.Conference)
		}
	}

	ranker := standings.NewRanker(h.logger, h.newResolver(), s.Teams)
	ranked, err := ranker.RankLeague(teams)
	if err != nil {
		h.logger.WithError(err).Error("Failed to rank season")
		return nil, fmt.Errorf("failed to rank season: %w", err)
	}

	response := &StandingsResponse{Season: s.Name, Year: s.Year}
	for _, conference := range league.Conferences(teams) {
		entries := make([]StandingEntry, 0, len(ranked[conference]))
		for _, t := range ranked[conference] {
			entries = append(entries, StandingEntry{
				ConferenceRank: t.ConferenceRank,
				Division:       t.Division,
				DivisionRank:   t.DivisionRank,
				TeamName:       t.FullName,
				Wins:           t.Wins,
				Losses:         t.Losses,
				Ties:           t.Ties,
				WinPercentage:  t.WinPercentage,
				PointsFor:      t.PointsScored,
				PointsAgainst:  t.PointsAllowed,
			})
		}
		response.Conferences = append(response.Conferences, ConferenceStandings{Conference: conference, Teams: entries})
	}

	return response, nil
}

// HandleRules lists the tiebreakers applied to size teams tied in scope
func (h *StandingsHandler) HandleRules(args RulesArgs) (*RulesResponse, error) {
	scope, err := tiebreak.ParseScope(args.Scope)
	if err != nil {
		return nil, err
	}

	sequence, err := tiebreak.Sequence(scope, args.Size)
	if err != nil {
		return nil, err
	}

	rules := make([]string, len(sequence))
	for i, rule := range sequence {
		rules[i] = rule.String()
	}
	return &RulesResponse{Scope: string(scope), Size: args.Size, Rules: rules}, nil
}

func (h *StandingsHandler) newResolver() *tiebreak.Resolver {
	opts := []tiebreak.Option{tiebreak.WithCommonGamesMinimum(h.settings.Tiebreakers.CommonGamesMinimum)}
	if seed := h.settings.Tiebreakers.CoinFlipSeed; seed != 0 {
		opts = append(opts, tiebreak.WithSeed(seed))
	}
	return tiebreak.NewResolver(h.logger, opts...)
}

// WriteJSON writes any response as indented JSON
func WriteJSON(w io.Writer, response interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return nil
}

// WriteStandingsTable writes one aligned table per conference
func WriteStandingsTable(w io.Writer, response *StandingsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range response.Conferences {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, c.Conference)
		fmt.Fprintln(tw, "RANK\tTEAM\tDIVISION\tDIV RANK\tW-L-T\tPCT\tPF\tPA")
		for _, e := range c.Teams {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d-%d-%d\t%s\t%d\t%d\n",
				e.ConferenceRank, e.TeamName, e.Division, e.DivisionRank,
				e.Wins, e.Losses, e.Ties, formatPercentage(e.WinPercentage),
				e.PointsFor, e.PointsAgainst)
		}
	}
	return tw.Flush()
}

// WriteRules writes a numbered tiebreaker list
func WriteRules(w io.Writer, response *RulesResponse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s tie, %d teams:\n", response.Scope, response.Size)
	for i, rule := range response.Rules {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, rule)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatPercentage prints a percentage the way standings tables do (.667, 1.000)
func formatPercentage(pct float64) string {
	if pct < 0 {
		return "-"
	}
	s := fmt.Sprintf("%.3f", pct)
	return strings.TrimPrefix(s, "0")
}
