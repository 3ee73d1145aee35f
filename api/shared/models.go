/* models.go
 * This file contains the structs and constants that are shared between sub packages: the tournament
 * domain model (matches, picks, scoring rules, bracket predictions) and the derived leaderboard types
 */

package shared

import "time"

// Mode selects which data set the app operates on. Every store and facade entry
// point takes it explicitly; it is never inferred from ambient state.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeDemo    Mode = "demo"
)

// Stage identifies a tournament round. GROUP is the group stage, everything
// else is a knockout round.
type Stage string

const (
	StageGroup Stage = "GROUP"
	StageR32   Stage = "R32"
	StageR16   Stage = "R16"
	StageQF    Stage = "QF"
	StageSF    Stage = "SF"
	StageThird Stage = "THIRD"
	StageFinal Stage = "F"
)

// IsKnockout reports whether the stage is a knockout round.
func (s Stage) IsKnockout() bool {
	return s != StageGroup && s != ""
}

type MatchStatus string

const (
	StatusScheduled  MatchStatus = "SCHEDULED"
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusFinished   MatchStatus = "FINISHED"
)

// Side identifies one of the two teams in a match, relative to the fixture.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

// Outcome is a match result relative to the home team.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
	OutcomeDraw Outcome = "DRAW"
)

// DecidedBy records how a finished match was settled.
type DecidedBy string

const (
	DecidedRegular DecidedBy = "REGULAR"
	DecidedET      DecidedBy = "ET"
	DecidedPens    DecidedBy = "PENS"
)

type Team struct {
	Code string `bson:"code" json:"code"`
	Name string `bson:"name" json:"name"`
}

type Score struct {
	Home int `bson:"home" json:"home"`
	Away int `bson:"away" json:"away"`
}

// Match is a fixture as supplied by the results feed. Score, Winner and
// DecidedBy are only meaningful once Status is FINISHED.
type Match struct {
	ID         string      `bson:"id" json:"id"`
	Stage      Stage       `bson:"stage" json:"stage"`
	Group      string      `bson:"group,omitempty" json:"group,omitempty"`
	KickoffUTC time.Time   `bson:"kickoffUtc" json:"kickoffUtc"`
	Status     MatchStatus `bson:"status" json:"status"`
	Home       Team        `bson:"home" json:"home"`
	Away       Team        `bson:"away" json:"away"`
	Score      *Score      `bson:"score,omitempty" json:"score,omitempty"`
	Winner     Side        `bson:"winner,omitempty" json:"winner,omitempty"`
	DecidedBy  DecidedBy   `bson:"decidedBy,omitempty" json:"decidedBy,omitempty"`
}

// Pick is one member's score prediction for one match. Advances is only
// meaningful for knockout matches where the predicted scores are level.
// Nil score pointers mean the member has not picked that side yet.
type Pick struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	MatchID   string    `bson:"matchId" json:"matchId"`
	UserID    string    `bson:"userId" json:"userId"`
	HomeScore *int      `bson:"homeScore,omitempty" json:"homeScore,omitempty"`
	AwayScore *int      `bson:"awayScore,omitempty" json:"awayScore,omitempty"`
	Advances  Side      `bson:"advances,omitempty" json:"advances,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RuleSet is the point values for one stage. KnockoutWinner is ignored for the
// group stage.
type RuleSet struct {
	ExactScoreBoth int `bson:"exactScoreBoth" json:"exactScoreBoth"`
	ExactScoreOne  int `bson:"exactScoreOne" json:"exactScoreOne"`
	Result         int `bson:"result" json:"result"`
	KnockoutWinner int `bson:"knockoutWinner,omitempty" json:"knockoutWinner,omitempty"`
}

// ScoringConfig holds the group rule set and one rule set per knockout stage.
type ScoringConfig struct {
	Group    RuleSet           `bson:"group" json:"group"`
	Knockout map[Stage]RuleSet `bson:"knockout" json:"knockout"`
}

// Member identifies a league member. Different data sources populate different
// fields, which is why identity resolution falls through id -> uid -> email ->
// lowercase name (see logic.IdentityKey).
type Member struct {
	ID    string `bson:"id,omitempty" json:"id,omitempty"`
	UID   string `bson:"uid,omitempty" json:"uid,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
}

// LeaderboardEntry is one member's ranked totals, broken down by category.
type LeaderboardEntry struct {
	Member         Member `bson:"member" json:"member"`
	TotalPoints    int    `bson:"totalPoints" json:"totalPoints"`
	ExactPoints    int    `bson:"exactPoints" json:"exactPoints"`
	ResultPoints   int    `bson:"resultPoints" json:"resultPoints"`
	KnockoutPoints int    `bson:"knockoutPoints" json:"knockoutPoints"`
	BracketPoints  int    `bson:"bracketPoints" json:"bracketPoints"`
}

// GroupPrediction is a member's predicted top-two finishers for one group.
// First and Second are team codes; both empty means no selection yet.
type GroupPrediction struct {
	First  string `bson:"first,omitempty" json:"first,omitempty"`
	Second string `bson:"second,omitempty" json:"second,omitempty"`
}

// BestThirdsSlots is the fixed number of third-placed teams that advance.
const BestThirdsSlots = 8

// BracketPrediction is the canonical per-user bracket document: group
// finishes, the best-thirds slate and per-match knockout winners.
type BracketPrediction struct {
	UserID     string                     `bson:"userId" json:"userId"`
	Groups     map[string]GroupPrediction `bson:"groups,omitempty" json:"groups,omitempty"`
	BestThirds []string                   `bson:"bestThirds,omitempty" json:"bestThirds,omitempty"`
	Knockout   map[Stage]map[string]Side  `bson:"knockout,omitempty" json:"knockout,omitempty"`
	UpdatedAt  string                     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// RankSnapshot is the persisted previous-ranking baseline used for movement
// arrows. Ranks maps identity key to 1-based rank; Timestamp is the
// leaderboard lastUpdated stamp the ranks were captured from.
type RankSnapshot struct {
	Timestamp string         `bson:"timestamp" json:"timestamp"`
	Ranks     map[string]int `bson:"ranks" json:"ranks"`
}
