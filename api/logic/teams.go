/* teams.go
 * Contains fuzzy team-name resolution for user input. Bot commands accept team codes or loose
 * name spellings and resolve them against the tournament's team list
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"scorecast/api/shared"
)

// ResolveTeams matches loosely spelled team names or codes from user input
// against the valid team list. It returns the resolved team codes and the
// inputs that matched nothing. Exact code matches win outright; otherwise the
// best fuzzy rank against the team names decides.
func ResolveTeams(input []string, validTeams []shared.Team) ([]string, []string) {
	byCode := make(map[string]shared.Team, len(validTeams))
	lookup := make(map[string]string, len(validTeams))
	var namesLower []string
	for _, team := range validTeams {
		byCode[strings.ToUpper(team.Code)] = team
		lower := strings.ToLower(team.Name)
		lookup[lower] = team.Code
		namesLower = append(namesLower, lower)
	}

	var resolved []string
	var invalid []string
	for _, raw := range input {
		if team, ok := byCode[strings.ToUpper(strings.TrimSpace(raw))]; ok {
			resolved = append(resolved, team.Code)
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(raw))
		ranked := fuzzy.RankFind(lower, namesLower)
		if len(ranked) == 0 {
			invalid = append(invalid, raw)
			continue
		}
		// Prefer an exact name match when fuzzy finds several candidates.
		best := ranked[0].Target
		for _, r := range ranked {
			if r.Target == lower {
				best = r.Target
				break
			}
		}
		resolved = append(resolved, lookup[best])
	}
	return resolved, invalid
}
