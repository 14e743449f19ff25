package filter

import (
	"testing"

	"github.com/codenewsio/codenews/model"
	"github.com/stretchr/testify/assert"
)

func TestRelevanceScore(t *testing.T) {
	// 1 of 1 keywords matched, 2x scaling caps at 1.0.
	score := RelevanceScore("AI transforms markets", []string{"ai"})
	assert.Equal(t, 1.0, score)

	// 1 of 4 matched: 0.25 * 2 = 0.5.
	score = RelevanceScore("kubernetes release notes", []string{"kubernetes", "docker", "llm", "rust"})
	assert.Equal(t, 0.5, score)

	// No matches.
	score = RelevanceScore("gardening at home", []string{"kubernetes", "docker"})
	assert.Equal(t, 0.0, score)
}

func TestRelevanceScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, RelevanceScore("", []string{"ai"}))
	assert.Equal(t, 0.0, RelevanceScore("AI transforms markets", []string{}))
}

func TestRelevanceScore_PresenceNotOccurrence(t *testing.T) {
	// A keyword repeated in the text still counts once.
	score := RelevanceScore("docker docker docker", []string{"docker", "llm"})
	assert.Equal(t, 1.0, score)
}

func TestCategorize(t *testing.T) {
	content := &model.Content{
		Title:    "OpenAI releases new model",
		Category: "ai",
	}
	category, score := Categorize(content, []string{"openai", "quantum"})
	assert.Equal(t, "ai", category)
	assert.Equal(t, 1.0, score)
}

func TestCategorize_FallbackCategory(t *testing.T) {
	content := &model.Content{Title: "OpenAI releases new model"}
	category, _ := Categorize(content, []string{"openai"})
	assert.Equal(t, "general", category)
}

func TestCategorize_Irrelevant(t *testing.T) {
	content := &model.Content{Title: "Best pasta recipes", Category: "ai"}
	category, score := Categorize(content, []string{"openai", "kubernetes"})
	assert.Equal(t, "", category)
	assert.Equal(t, 0.0, score)
}
