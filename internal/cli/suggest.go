package cli

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// minSimilarity is the Jaro-Winkler score a team name needs to be suggested
const minSimilarity = 0.85

// suggestCountry returns the known team most similar to name.
// A name that already is a known team gets no suggestion.
func suggestCountry(name string, teams []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}

	var (
		best      string
		bestScore float64
	)
	for _, team := range teams {
		if team == name {
			return "", false
		}
		score := matchr.JaroWinkler(needle, strings.ToLower(team), false)
		if score > bestScore {
			best, bestScore = team, score
		}
	}

	if bestScore < minSimilarity {
		return "", false
	}
	return best, true
}
