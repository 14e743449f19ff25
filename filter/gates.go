package filter

import (
	"strings"
	"time"

	"github.com/codenewsio/codenews/model"
)

// tutorialMarkers flag content shaped like a how-to rather than news.
// Mixed English/Turkish, same as the stop word list.
var tutorialMarkers = []string{"tutorial", "guide", "how to", "step by step", "nasıl", "rehber"}

// IsNewsContent checks if content is actual news rather than a tutorial or
// guide. A news keyword is a bonus, not a requirement. Only items that both
// lack any news indicator and look clearly tutorial-shaped are rejected.
func IsNewsContent(content *model.Content, newsKeywords []string) bool {
	combinedText := strings.ToLower(content.LearningText())

	hasNewsIndicator := false
	for _, keyword := range newsKeywords {
		if strings.Contains(combinedText, keyword) {
			hasNewsIndicator = true
			break
		}
	}

	isTutorial := false
	for _, marker := range tutorialMarkers {
		if strings.Contains(combinedText, marker) {
			isTutorial = true
			break
		}
	}

	return hasNewsIndicator || !isTutorial
}

// IsFreshContent checks if content is recent enough. An item without a
// published date passes: the feed simply didn't report one.
func IsFreshContent(content *model.Content, maxAge time.Duration, now time.Time) bool {
	if content.PublishedDate == nil {
		return true
	}

	return now.Sub(*content.PublishedDate) <= maxAge
}
