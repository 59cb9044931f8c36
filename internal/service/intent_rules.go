package service

import (
	"regexp"
	"strings"

	"github.com/pageza/forkcast/backend/internal/types"
)

// timeBufferMinutes pads an extracted time limit to account for the
// extractor's tendency to under-estimate.
const timeBufferMinutes = 5

var underTimePattern = regexp.MustCompile(`under (\d+)`)

// intentRule is one normalization rule: a predicate over the intent and its
// lowercased query, and the effect applied when the predicate holds.
type intentRule struct {
	name    string
	applies func(intent types.Intent, query string) bool
	apply   func(intent types.Intent, query string) types.Intent
}

// intentRules is the fixed, ordered rule list. Rules are independent; each
// is checked against the intent as left by the previous one.
var intentRules = []intentRule{
	{
		name: "breakfast_type",
		applies: func(intent types.Intent, query string) bool {
			return strings.Contains(query, "breakfast") && intent.RecipeType == ""
		},
		apply: func(intent types.Intent, query string) types.Intent {
			intent.RecipeType = "breakfast"
			return intent
		},
	},
	{
		name: "time_buffer",
		applies: func(intent types.Intent, query string) bool {
			return intent.MaxTimeMinutes != nil || underTimePattern.MatchString(query)
		},
		apply: func(intent types.Intent, query string) types.Intent {
			if intent.MaxTimeMinutes != nil {
				buffered := *intent.MaxTimeMinutes + timeBufferMinutes
				intent.MaxTimeMinutes = &buffered
				return intent
			}
			m := underTimePattern.FindStringSubmatch(query)
			minutes := 0
			for _, c := range m[1] {
				minutes = minutes*10 + int(c-'0')
			}
			minutes += timeBufferMinutes
			intent.MaxTimeMinutes = &minutes
			return intent
		},
	},
	{
		// "healthy" must never synthesize a calorie ceiling. The rule exists
		// so the guard is visible and testable, not because it changes
		// anything.
		name: "healthy_no_calorie_cap",
		applies: func(intent types.Intent, query string) bool {
			return strings.Contains(query, "healthy") && intent.MaxCalories == nil
		},
		apply: func(intent types.Intent, query string) types.Intent {
			return intent
		},
	},
}

// NormalizeIntent applies the rule list in order and returns the corrected
// intent. It never fails. The time buffer is additive, so callers must
// normalize an intent exactly once per request; the search service is the
// only call site.
func NormalizeIntent(intent types.Intent) types.Intent {
	query := strings.ToLower(intent.Query)
	for _, rule := range intentRules {
		if rule.applies(intent, query) {
			intent = rule.apply(intent, query)
		}
	}
	return intent
}
