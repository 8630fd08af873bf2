package autofill

import (
	"math"
	"strings"

	"github.com/applyforge/applyforge/internal/domain"
)

// Scoring constants. The substring bonus and token cap are fixed heuristics
// carried over from production tuning; validate changes against the scenario
// tests rather than assuming deeper intent.
const (
	substringScore = 95
	tokenScoreCap  = 80
)

type aliasSet struct {
	key     domain.ProfileKey
	aliases []string
}

// vocabulary maps profile attributes to known label synonyms. Order matters:
// score ties resolve to the earlier entry.
var vocabulary = []aliasSet{
	{domain.KeyFirstName, []string{"first name", "given name", "firstname"}},
	{domain.KeyLastName, []string{"last name", "surname", "lastname"}},
	{domain.KeyEmail, []string{"email", "e-mail"}},
	{domain.KeyPhone, []string{"phone", "mobile", "telephone"}},
	{domain.KeyLinkedIn, []string{"linkedin", "linkedin url"}},
	{domain.KeyWebsite, []string{"portfolio", "website", "github", "personal site"}},
	{domain.KeyCity, []string{"city", "location", "address city"}},
}

// Match scores a normalized label against the whole vocabulary and returns
// the best attribute with its confidence in [0,100].
func Match(label string) (domain.ProfileKey, int) {
	best := -1
	bestKey := vocabulary[0].key
	for _, set := range vocabulary {
		if score := scoreAliases(label, set.aliases); score > best {
			best = score
			bestKey = set.key
		}
	}
	return bestKey, best
}

// scoreAliases returns the best score across an attribute's aliases: a
// substring hit scores substringScore, otherwise the fraction of alias tokens
// present in the label scaled to tokenScoreCap.
func scoreAliases(label string, aliases []string) int {
	if label == "" {
		return 0
	}

	best := 0
	var labelTokens map[string]bool

	for _, alias := range aliases {
		normalized := Normalize(alias)
		if normalized == "" {
			continue
		}
		if strings.Contains(label, normalized) {
			if substringScore > best {
				best = substringScore
			}
			continue
		}

		if labelTokens == nil {
			labelTokens = make(map[string]bool)
			for _, token := range strings.Fields(label) {
				labelTokens[token] = true
			}
		}

		aliasTokens := strings.Fields(normalized)
		matched := 0
		for _, token := range aliasTokens {
			if labelTokens[token] {
				matched++
			}
		}

		partial := int(math.Round(float64(matched) / float64(len(aliasTokens)) * tokenScoreCap))
		if partial > best {
			best = partial
		}
	}

	return best
}
