package filter

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var sentenceSplit = regexp.MustCompile(`[.!?]\s+`)

// CleanText strips HTML markup and collapses whitespace. Feed summaries and
// bodies routinely arrive as HTML fragments.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err == nil {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(text), " ")
}

// ExtractFirstSentence returns the first sentence of the cleaned text.
func ExtractFirstSentence(text string) string {
	text = CleanText(text)

	sentences := sentenceSplit.Split(text, 2)
	if len(sentences) > 0 {
		return sentences[0]
	}

	return text
}

// TruncateText cuts text down to maxLength, ending at a word boundary.
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	truncated := text[:maxLength]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
