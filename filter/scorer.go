package filter

import (
	"strings"

	"github.com/codenewsio/codenews/model"
)

const defaultCategory = "general"

// RelevanceScore computes the base keyword-match score of text against the
// configured keyword list. Each keyword counts at most once (presence test,
// not occurrence count). The score is matches/len(keywords) scaled up by 2x
// and capped at 1.0; an empty keyword list always scores 0.
func RelevanceScore(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0.0
	}

	textLower := strings.ToLower(text)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			matches++
		}
	}

	score := float64(matches) / float64(len(keywords)) * 2.0
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Categorize scores a content item against the unified keyword list. The
// scorer never invents a category: a relevant item keeps whatever category
// the feed attached upstream, falling back to "general".
func Categorize(content *model.Content, keywords []string) (string, float64) {
	relevanceScore := RelevanceScore(content.CombinedText(), keywords)

	if relevanceScore > 0 {
		category := content.Category
		if category == "" {
			category = defaultCategory
		}
		return category, relevanceScore
	}

	return "", 0.0
}
