package filter

import (
	"strings"
)

// stopWords are articles and conjunctions filtered out of keyword extraction.
// Mixed English/Turkish because the configured feeds span both languages.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "ve": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true,
}

const punctuationCutset = ".,!?;:()[]{}"

// ExtractKeywords turns free text into a list of lowercase tokens: whitespace
// split, punctuation trimmed, filtered to length > 3 and not a stop word.
// Length and stop-word checks run on the raw token, before trimming.
//
// Duplicates are kept on purpose: the preference learner treats every
// occurrence of a keyword as an independent update, so a keyword-dense title
// learns faster.
func ExtractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}

	words := strings.Fields(strings.ToLower(text))

	keywords := []string{}
	for _, word := range words {
		if len(word) <= 3 || stopWords[word] {
			continue
		}
		keywords = append(keywords, strings.Trim(word, punctuationCutset))
	}

	return keywords
}
