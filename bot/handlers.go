/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface. Each command parses
 * the user's message, calls the API facade and replies in the channel the command was run
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/mongo"

	"scorecast/api/logic"
	"scorecast/api/shared"
)

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$pick"):
		b.setPickHandler(session, message)

	case startsWith(message.Content, "$mypicks"):
		b.myPicksHandler(session, message)

	case startsWith(message.Content, "$group"):
		b.setGroupPickHandler(session, message)

	case startsWith(message.Content, "$thirds"):
		b.setBestThirdHandler(session, message)

	case startsWith(message.Content, "$ko"):
		b.setKnockoutPickHandler(session, message)

	case startsWith(message.Content, "$leaderboard"):
		b.leaderboardHandler(session, message)

	case startsWith(message.Content, "$swing"):
		b.swingHandler(session, message)

	case startsWith(message.Content, "$whatif"):
		b.whatIfHandler(session, message)

	case startsWith(message.Content, "$upcoming"):
		b.upcomingMatchesHandler(session, message)

	case startsWith(message.Content, "$teams"):
		b.teamsHandler(session, message)
	}
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Scorecast Bot v1.0\n")
	res.WriteString("`$pick matchId home-away [home|away]`: Sets your score prediction for a match. For a knockout match predicted level you must also say which side advances, e.g. `$pick r16-3 1-1 away`\n")
	res.WriteString("Picks for a match close 30 minutes before kickoff and cannot be changed once the match has finished\n")
	res.WriteString("`$mypicks`: Shows the picks you currently have stored\n")
	res.WriteString("`$group groupId first|second team`: Predicts a group winner or runner-up, e.g. `$group A first Brazil`. Group predictions close 30 minutes before the first group match\n")
	res.WriteString("`$thirds slot team`: Fills one of the 8 best-thirds slots, e.g. `$thirds 3 Japan`\n")
	res.WriteString("`$ko matchId home|away`: Predicts the winner of a knockout bracket match\n")
	res.WriteString("`$leaderboard`: Shows the league standings with movement since the last update. Members on equal points keep their order, there is no tie breaker\n")
	res.WriteString("`$swing`: Ranks the open matches the league disagrees on most\n")
	res.WriteString("`$whatif matchId home-away [home|away] ...`: Shows how the standings would change if the given matches finished with those scores\n")
	res.WriteString("`$upcoming`: Shows the upcoming fixtures grouped by matchday\n")
	res.WriteString("`$teams`: Shows the tournament's teams and their codes. Team names have fuzzy matching, names with two or more words need to be encased in \" (e.g. \"South Korea\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// setPickHandler handles the $pick command with a DiscordSession interface
func (b *Bot) setPickHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$pick matchId home-away [home|away]`")
		return
	}

	matchID := args[1]
	homeScore, awayScore, err := parseScoreline(args[2])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not read score %q, expected something like 2-1", args[2]))
		return
	}

	var advances shared.Side
	if len(args) > 3 {
		advances, err = parseSide(args[3])
		if err != nil {
			session.ChannelMessageSend(message.ChannelID, "The advancing side must be `home` or `away`")
			return
		}
	}

	res := fmt.Sprintf("%s's pick for %s has been updated", message.Author.Username, matchID)
	err = b.APIPtr.SetPick(message.Author.ID, matchID, homeScore, awayScore, advances, time.Now().UTC())
	if err != nil {
		log.Println(err)
		res = fmt.Sprintf("Could not set %s's pick: %s", message.Author.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// myPicksHandler handles the $mypicks command with a DiscordSession interface
func (b *Bot) myPicksHandler(session DiscordSession, message *discordgo.MessageCreate) {
	picks, err := b.APIPtr.UserPicks(message.Author.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s does not have any picks stored. Use $pick to set one", message.Author.Username))
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured fetching %s's picks", message.Author.Username))
		return
	}
	if len(picks) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s does not have any picks stored. Use $pick to set one", message.Author.Username))
		return
	}

	matches, _, err := b.APIPtr.Store.FetchMatches()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured fetching the fixture list")
		return
	}
	byID := make(map[string]shared.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	matchIDs := make([]string, 0, len(picks))
	for id := range picks {
		matchIDs = append(matchIDs, id)
	}
	sort.Strings(matchIDs)

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s's picks:\n", message.Author.Username))
	for _, id := range matchIDs {
		pick := picks[id]
		line := fmt.Sprintf("- %s: %s", matchLabel(byID, id), formatPick(pick))
		res.WriteString(line + "\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// setGroupPickHandler handles the $group command with a DiscordSession interface
func (b *Bot) setGroupPickHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 4 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$group groupId first|second team`")
		return
	}

	groupID := strings.ToUpper(args[1])
	var slot logic.GroupSlot
	switch strings.ToLower(args[2]) {
	case "first":
		slot = logic.GroupSlotFirst
	case "second":
		slot = logic.GroupSlotSecond
	default:
		session.ChannelMessageSend(message.ChannelID, "The group slot must be `first` or `second`")
		return
	}

	code, errMsg := b.resolveTeam(strings.Join(args[3:], " "))
	if errMsg != "" {
		session.ChannelMessageSend(message.ChannelID, errMsg)
		return
	}

	res := fmt.Sprintf("%s now has %s finishing %s in group %s", message.Author.Username, code, args[2], groupID)
	if err := b.APIPtr.SetGroupPick(message.Author.ID, groupID, slot, code, time.Now().UTC()); err != nil {
		log.Println(err)
		res = fmt.Sprintf("Could not set %s's group prediction: %s", message.Author.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// setBestThirdHandler handles the $thirds command with a DiscordSession interface
func (b *Bot) setBestThirdHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$thirds slot team` where slot is 1-8")
		return
	}

	slot, err := strconv.Atoi(args[1])
	if err != nil || slot < 1 || slot > shared.BestThirdsSlots {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("The best-thirds slot must be a number between 1 and %d", shared.BestThirdsSlots))
		return
	}

	code, errMsg := b.resolveTeam(strings.Join(args[2:], " "))
	if errMsg != "" {
		session.ChannelMessageSend(message.ChannelID, errMsg)
		return
	}

	res := fmt.Sprintf("%s now has %s in best-thirds slot %d", message.Author.Username, code, slot)
	if err := b.APIPtr.SetBestThird(message.Author.ID, slot-1, code, time.Now().UTC()); err != nil {
		log.Println(err)
		res = fmt.Sprintf("Could not set %s's best-thirds prediction: %s", message.Author.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// setKnockoutPickHandler handles the $ko command with a DiscordSession interface
func (b *Bot) setKnockoutPickHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$ko matchId home|away`")
		return
	}

	matchID := args[1]
	winner, err := parseSide(args[2])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "The winning side must be `home` or `away`")
		return
	}

	res := fmt.Sprintf("%s's bracket winner for %s has been updated", message.Author.Username, matchID)
	if err := b.APIPtr.SetKnockoutPick(message.Author.ID, matchID, winner, time.Now().UTC()); err != nil {
		log.Println(err)
		res = fmt.Sprintf("Could not set %s's bracket winner: %s", message.Author.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command with a DiscordSession interface
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	view, err := b.APIPtr.Leaderboard()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			session.ChannelMessageSend(message.ChannelID, "No leaderboard has been scored yet")
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the leaderboard")
		return
	}
	if len(view.Entries) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No leaderboard has been scored yet")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Leaderboard (updated %s):\n", view.LastUpdated))
	for _, ranked := range view.Entries {
		entry := ranked.Entry
		res.WriteString(fmt.Sprintf("%d. %s %s: %d pts (exact %d, result %d, knockout %d, bracket %d)\n",
			ranked.Rank, formatMovement(ranked.Movement), entry.Member.Name,
			entry.TotalPoints, entry.ExactPoints, entry.ResultPoints, entry.KnockoutPoints, entry.BracketPoints))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// swingHandler handles the $swing command with a DiscordSession interface
func (b *Bot) swingHandler(session DiscordSession, message *discordgo.MessageCreate) {
	report, err := b.APIPtr.SwingReport(time.Now().UTC())
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred building the swing report")
		return
	}
	if len(report) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No open matches to report on")
		return
	}

	var res strings.Builder
	res.WriteString("Most contested open matches:\n")
	for i, opp := range report {
		line := fmt.Sprintf("%d. %s vs %s: swing %.4f", i+1, opp.Match.Home.Name, opp.Match.Away.Name, opp.SwingScore)
		if opp.ConsensusPct != nil {
			line += fmt.Sprintf(", league leans %s %d%% (%d-%d of %d picks)",
				opp.Consensus, *opp.ConsensusPct, opp.HomeVotes, opp.AwayVotes, opp.TotalVotes)
		} else {
			line += ", no picks yet"
		}
		res.WriteString(line + "\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// whatIfHandler handles the $whatif command with a DiscordSession interface
func (b *Bot) whatIfHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	outcomes, err := parseHypotheticals(args[1:])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s. Usage: `$whatif matchId home-away [home|away] ...`", err))
		return
	}
	if len(outcomes) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$whatif matchId home-away [home|away] ...`")
		return
	}

	rows, rejected, err := b.APIPtr.Project(outcomes)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred running the projection")
		return
	}

	var res strings.Builder
	res.WriteString("Projected standings:\n")
	for _, row := range rows {
		res.WriteString(fmt.Sprintf("%d. %s: %d pts (now %d. with %d pts, %+d)\n",
			row.ProjectedRank, row.Member.Name, row.ProjectedPoints,
			row.CurrentRank, row.CurrentPoints, row.ProjectedDelta))
	}
	if len(rejected) > 0 {
		res.WriteString(fmt.Sprintf("Ignored outcomes: %s\n", strings.Join(rejected, ", ")))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// upcomingMatchesHandler handles the $upcoming command with a DiscordSession interface
func (b *Bot) upcomingMatchesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	days, err := b.APIPtr.UpcomingMatches(time.Now().UTC())
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting upcoming matches")
		return
	}
	if len(days) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No upcoming matches")
		return
	}

	var res strings.Builder
	res.WriteString("Upcoming matches:\n")
	for _, day := range days {
		res.WriteString(day.DateKey + "\n")
		for _, m := range day.Matches {
			stage := string(m.Stage)
			if m.Stage == shared.StageGroup && m.Group != "" {
				stage = fmt.Sprintf("Group %s", m.Group)
			}
			res.WriteString(fmt.Sprintf("- %s: %s vs %s (%s, kickoff %s)\n",
				m.ID, m.Home.Name, m.Away.Name, stage, m.KickoffUTC.Format("15:04 MST")))
		}
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// teamsHandler handles the $teams command with a DiscordSession interface
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	teams, err := b.APIPtr.Teams()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the teams list")
		return
	}

	var res strings.Builder
	res.WriteString("Teams in the tournament:\n")
	for _, team := range teams {
		res.WriteString(fmt.Sprintf("- %s: %s\n", team.Code, team.Name))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// resolveTeam resolves loose user input to a team code using the tournament's
// team list. Returns the code, or a reply-ready error message when the input
// matched nothing.
func (b *Bot) resolveTeam(raw string) (string, string) {
	teams, err := b.APIPtr.Teams()
	if err != nil {
		log.Println(err)
		return "", "An error occured getting the teams list"
	}
	resolved, invalid := logic.ResolveTeams([]string{raw}, teams)
	if len(invalid) > 0 || len(resolved) == 0 {
		return "", fmt.Sprintf("Could not find a team matching %q. Use $teams to see the valid names", raw)
	}
	return resolved[0], ""
}

// splitArgs splits a command message into arguments. We use splitter here instead of go's
// built in splitter because now we can have team names that contain spaces e.g. "South Korea"
// recognised as one argument not two
func splitArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	args, _ := spaceSplitter.Split(content)
	out := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.Trim(strings.TrimSpace(arg), "\"")
		if arg != "" {
			out = append(out, arg)
		}
	}
	return out
}

// parseScoreline reads a "home-away" scoreline like "2-1"
func parseScoreline(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid scoreline: %s", s)
	}
	home, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid scoreline: %s", s)
	}
	away, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid scoreline: %s", s)
	}
	return home, away, nil
}

// parseSide reads a "home" or "away" argument
func parseSide(s string) (shared.Side, error) {
	switch strings.ToLower(s) {
	case "home":
		return shared.SideHome, nil
	case "away":
		return shared.SideAway, nil
	default:
		return "", fmt.Errorf("invalid side: %s", s)
	}
}

// parseHypotheticals reads repeated `matchId home-away [home|away]` groups
func parseHypotheticals(args []string) (map[string]logic.Hypothetical, error) {
	outcomes := make(map[string]logic.Hypothetical)
	i := 0
	for i < len(args) {
		if i+1 >= len(args) {
			return nil, fmt.Errorf("match %s is missing a scoreline", args[i])
		}
		matchID := args[i]
		home, away, err := parseScoreline(args[i+1])
		if err != nil {
			return nil, err
		}
		outcome := logic.Hypothetical{HomeScore: home, AwayScore: away}
		i += 2
		if i < len(args) {
			if side, err := parseSide(args[i]); err == nil {
				outcome.Advances = side
				i++
			}
		}
		outcomes[matchID] = outcome
	}
	return outcomes, nil
}

// formatMovement renders a rank movement as an arrow, e.g. ▲2 for a two place climb
func formatMovement(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("(▲%d)", delta)
	case delta < 0:
		return fmt.Sprintf("(▼%d)", -delta)
	default:
		return "(=)"
	}
}

// formatPick renders a stored pick, including the advancing side for level knockout picks
func formatPick(pick shared.Pick) string {
	if pick.HomeScore == nil || pick.AwayScore == nil {
		return "incomplete"
	}
	s := fmt.Sprintf("%d-%d", *pick.HomeScore, *pick.AwayScore)
	if *pick.HomeScore == *pick.AwayScore && pick.Advances != "" {
		s += fmt.Sprintf(" (%s advances)", strings.ToLower(string(pick.Advances)))
	}
	return s
}

// matchLabel renders a match as "home vs away" when the fixture is known, else the raw id
func matchLabel(byID map[string]shared.Match, matchID string) string {
	m, ok := byID[matchID]
	if !ok {
		return matchID
	}
	return fmt.Sprintf("%s vs %s", m.Home.Name, m.Away.Name)
}
