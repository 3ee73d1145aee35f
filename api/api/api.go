/* api.go
 * This file contains the public methods for interacting with this package. For consistent
 * results, functions should only be called from this file, not the logic or store sub packages.
 * The facade composes the pure engine in api/logic with the store and the results feed
 */

package api

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"scorecast/api/external"
	"scorecast/api/logic"
	"scorecast/api/shared"
	"scorecast/api/store"
)

// API provides methods for interacting with the prediction-league data layer.
type API struct {
	Store store.Interface
	Cache *store.LocalCache
	Feed  *external.Client

	// Seeds are the fallback bracket documents used when a user has neither a
	// remote nor a cached prediction (demo data, pre-canned examples).
	Seeds []shared.BracketPrediction

	// Zone is the display timezone used for matchday grouping only.
	Zone *time.Location
}

// Config carries everything NewAPI needs to wire the store, the local cache
// and the results feed.
type Config struct {
	DBName   string
	MongoURI string
	Mode     shared.Mode
	CacheDir string
	FeedURL  string
	FeedKey  string
	Timezone string
}

// NewAPI creates a new API instance with the provided configuration.
func NewAPI(cfg Config) (*API, error) {
	if cfg.DBName == "" || cfg.FeedURL == "" {
		return nil, fmt.Errorf("dbName and feedURL are required")
	}

	s, err := store.NewStore(cfg.DBName, cfg.MongoURI, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	cache, err := store.NewLocalCache(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local cache: %w", err)
	}
	feed, err := external.NewClient(cfg.FeedURL, cfg.FeedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed client: %w", err)
	}

	zone := time.UTC
	if cfg.Timezone != "" {
		zone, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
		}
	}

	return &API{
		Store: s,
		Cache: cache,
		Feed:  feed,
		Zone:  zone,
	}, nil
}

// RefreshData pulls the latest fixtures and results from the feed, stores
// them, and recomputes the leaderboard. Called by the results webhook and the
// refresh schedule.
func (a *API) RefreshData(ctx context.Context) error {
	matches, err := a.Feed.FetchMatches(ctx)
	if err != nil {
		return err
	}
	if _, err := a.Store.StoreMatches(matches); err != nil {
		return err
	}
	return a.Rescore()
}

// Rescore rebuilds the leaderboard from stored matches, picks, scoring config
// and graded bracket points, and persists it.
func (a *API) Rescore() error {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return err
	}
	picks, _, err := a.Store.FetchPicks()
	if err != nil {
		return err
	}
	cfg, _, err := a.Store.FetchScoring()
	if err != nil {
		return err
	}
	members, _, err := a.Store.FetchMembers()
	if err != nil {
		return err
	}
	bracketPoints, err := a.Store.FetchBracketPoints()
	if err != nil {
		return err
	}

	entries := logic.BuildLeaderboard(members, matches, picks, cfg, bracketPoints)
	stamp, err := a.Store.StoreLeaderboard(entries)
	if err != nil {
		return err
	}
	log.Println("leaderboard recomputed, lastUpdated", stamp)
	return nil
}

// Leaderboard returns the stored leaderboard with ranks and movement deltas.
// Movement is computed against the persisted rank snapshot; the snapshot is
// advanced whenever the leaderboard's lastUpdated stamp has changed. A
// snapshot that cannot be saved only costs arrows on the next load, so that
// failure is logged and swallowed.
func (a *API) Leaderboard() (LeaderboardView, error) {
	entries, lastUpdated, err := a.Store.FetchLeaderboard()
	if err != nil {
		return LeaderboardView{}, err
	}

	snapshot, err := a.Store.LoadRankSnapshot()
	if err != nil {
		return LeaderboardView{}, err
	}
	movement, next := logic.RankMovement(entries, snapshot, lastUpdated)
	if snapshot == nil || next.Timestamp != snapshot.Timestamp {
		if err := a.Store.SaveRankSnapshot(next); err != nil {
			log.Println("failed to save rank snapshot:", err)
		}
	}

	view := LeaderboardView{LastUpdated: lastUpdated}
	for i, entry := range entries {
		view.Entries = append(view.Entries, RankedEntry{
			Rank:     i + 1,
			Movement: movement[logic.IdentityKey(entry.Member)],
			Entry:    entry,
		})
	}
	return view, nil
}

// SetPick validates and stores one member's score prediction for a match.
// Locked and finished matches reject changes; a level knockout prediction
// must carry an advancing side.
func (a *API) SetPick(userID string, matchID string, homeScore int, awayScore int, advances shared.Side, now time.Time) error {
	match, err := a.findMatch(matchID)
	if err != nil {
		return err
	}
	if match.Status == shared.StatusFinished {
		return fmt.Errorf("match %s has already finished", matchID)
	}
	if logic.IsMatchLocked(match.KickoffUTC, now) {
		return fmt.Errorf("match %s locked at %s", matchID, logic.LockTime(match.KickoffUTC).Format(time.RFC3339))
	}
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}

	pick := shared.Pick{
		MatchID:   matchID,
		UserID:    userID,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Advances:  advances,
	}
	if !logic.IsPickComplete(match, &pick) {
		return fmt.Errorf("a level prediction on a knockout match needs the advancing side")
	}
	return a.Store.StorePick(pick)
}

// UserPicks returns one member's picks keyed by match ID, for display.
func (a *API) UserPicks(userID string) (map[string]shared.Pick, error) {
	return a.Store.FetchUserPicks(userID)
}

// UpcomingMatches returns unfinished fixtures bucketed into matchdays in the
// API's display timezone, days and fixtures both in kickoff order.
func (a *API) UpcomingMatches(now time.Time) ([]MatchdayGroup, error) {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]shared.Match)
	for _, m := range matches {
		if m.Status == shared.StatusFinished || m.KickoffUTC.Before(now) {
			continue
		}
		key := logic.DateKey(m.KickoffUTC, a.Zone)
		byDay[key] = append(byDay[key], m)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]MatchdayGroup, 0, len(keys))
	for _, key := range keys {
		day := byDay[key]
		sort.Slice(day, func(i, j int) bool { return day[i].KickoffUTC.Before(day[j].KickoffUTC) })
		groups = append(groups, MatchdayGroup{DateKey: key, Matches: day})
	}
	return groups, nil
}

// SwingReport ranks open matches by how contested they are among members'
// picks.
func (a *API) SwingReport(now time.Time) ([]logic.SwingOpportunity, error) {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return nil, err
	}
	picks, _, err := a.Store.FetchPicks()
	if err != nil {
		return nil, err
	}
	return logic.SwingReport(matches, picks, now), nil
}

// Project runs the what-if simulation over the stored leaderboard and returns
// the projected ranking plus any rejected hypothetical match IDs.
func (a *API) Project(outcomes map[string]logic.Hypothetical) ([]logic.ProjectedRow, []string, error) {
	entries, _, err := a.Store.FetchLeaderboard()
	if err != nil {
		return nil, nil, err
	}
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return nil, nil, err
	}
	picks, _, err := a.Store.FetchPicks()
	if err != nil {
		return nil, nil, err
	}
	cfg, _, err := a.Store.FetchScoring()
	if err != nil {
		return nil, nil, err
	}

	rows, rejected := logic.Project(entries, matches, picks, cfg, outcomes)
	return rows, rejected, nil
}

// ResolveBracket reconciles a user's remote, cached and seed bracket
// documents into the canonical one and writes it back to the local cache so
// later loads never regress to an earlier source.
func (a *API) ResolveBracket(userID string) (shared.BracketPrediction, error) {
	remote, err := a.Store.GetBracketPrediction(userID)
	if err != nil {
		return shared.BracketPrediction{}, err
	}
	cached, _ := a.Cache.LoadBracket(a.Store.GetMode(), userID)

	resolved := logic.ResolveBracket(userID, remote, cached, a.Seeds)
	if err := a.Cache.SaveBracket(a.Store.GetMode(), userID, resolved); err != nil {
		log.Println("failed to write bracket cache:", err)
	}
	return resolved, nil
}

// SetGroupPick records a user's predicted finisher for one group slot. Group
// outcome predictions lock when the first group-stage match kicks off.
func (a *API) SetGroupPick(userID string, groupID string, slot logic.GroupSlot, teamCode string, now time.Time) error {
	if err := a.checkGroupOutcomesOpen(now); err != nil {
		return err
	}
	pred, err := a.ResolveBracket(userID)
	if err != nil {
		return err
	}
	logic.SetGroupPick(&pred, groupID, slot, teamCode)
	return a.saveBracket(userID, pred)
}

// SetBestThird records a user's best-thirds slate entry. Locks with the group
// outcomes.
func (a *API) SetBestThird(userID string, slot int, teamCode string, now time.Time) error {
	if err := a.checkGroupOutcomesOpen(now); err != nil {
		return err
	}
	if slot < 0 || slot >= shared.BestThirdsSlots {
		return fmt.Errorf("best-thirds slot must be between 0 and %d", shared.BestThirdsSlots-1)
	}
	pred, err := a.ResolveBracket(userID)
	if err != nil {
		return err
	}
	logic.SetBestThird(&pred, slot, teamCode)
	return a.saveBracket(userID, pred)
}

// SetKnockoutPick records a user's predicted winner for one knockout match.
// Locks with that match.
func (a *API) SetKnockoutPick(userID string, matchID string, winner shared.Side, now time.Time) error {
	match, err := a.findMatch(matchID)
	if err != nil {
		return err
	}
	if !match.Stage.IsKnockout() {
		return fmt.Errorf("match %s is not a knockout match", matchID)
	}
	if logic.IsMatchLocked(match.KickoffUTC, now) {
		return fmt.Errorf("match %s locked at %s", matchID, logic.LockTime(match.KickoffUTC).Format(time.RFC3339))
	}
	pred, err := a.ResolveBracket(userID)
	if err != nil {
		return err
	}
	logic.SetKnockoutPick(&pred, match.Stage, matchID, winner)
	return a.saveBracket(userID, pred)
}

// Teams lists the tournament's teams, deduplicated from the fixture list and
// sorted by code.
func (a *API) Teams() ([]shared.Team, error) {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var teams []shared.Team
	for _, m := range matches {
		for _, team := range []shared.Team{m.Home, m.Away} {
			if team.Code == "" || seen[team.Code] {
				continue
			}
			seen[team.Code] = true
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Code < teams[j].Code })
	return teams, nil
}

func (a *API) findMatch(matchID string) (shared.Match, error) {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return shared.Match{}, err
	}
	for _, m := range matches {
		if m.ID == matchID {
			return m, nil
		}
	}
	return shared.Match{}, fmt.Errorf("unknown match: %s", matchID)
}

func (a *API) checkGroupOutcomesOpen(now time.Time) error {
	matches, _, err := a.Store.FetchMatches()
	if err != nil {
		return err
	}
	lock, ok := logic.GroupOutcomesLockTime(matches)
	if ok && !now.Before(lock) {
		return fmt.Errorf("group predictions locked at %s", lock.Format(time.RFC3339))
	}
	return nil
}

func (a *API) saveBracket(userID string, pred shared.BracketPrediction) error {
	if err := a.Store.StoreBracketPrediction(pred); err != nil {
		return err
	}
	return a.Cache.SaveBracket(a.Store.GetMode(), userID, pred)
}
