package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Google Announced Gemini Updates")
	assert.Equal(t, []string{"google", "announced", "gemini", "updates"}, keywords)
}

func TestExtractKeywords_ShortAndStopWordsDropped(t *testing.T) {
	keywords := ExtractKeywords("the api is here and being used")
	// "api" is too short, "here" and "used" survive, the rest are stop words.
	assert.Equal(t, []string{"here", "used"}, keywords)
}

func TestExtractKeywords_DuplicatesKept(t *testing.T) {
	keywords := ExtractKeywords("kubernetes kubernetes release")
	assert.Equal(t, []string{"kubernetes", "kubernetes", "release"}, keywords)
}

func TestExtractKeywords_PunctuationTrimmedAfterChecks(t *testing.T) {
	// "go!" is 3 chars raw so it is dropped before trimming, while "rust!"
	// passes the raw length check and is trimmed to "rust".
	keywords := ExtractKeywords("go! rust! releases")
	assert.Equal(t, []string{"rust", "releases"}, keywords)

	// A trailing period keeps "the." from matching the stop word list, so it
	// survives as "the".
	keywords = ExtractKeywords("the. quick brown fox")
	assert.Equal(t, []string{"the", "quick", "brown"}, keywords)
}

func TestExtractKeywords_Empty(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("a an to is"))
}
