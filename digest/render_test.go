package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "openais-new-model", Slugify("OpenAI's New Model"))

	long := Slugify(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(long), 50)
}

func TestBuildTitle(t *testing.T) {
	// 2026-01-05 falls in ISO week 2 of 2026.
	title := BuildTitle(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Code Report - Hafta 2, 2026", title)
}

func TestGroupByCategory(t *testing.T) {
	items := []Item{
		{Headline: "a1", Category: "ai"},
		{Headline: "s1", Category: "software_dev"},
		{Headline: "a2", Category: "ai"},
		{Headline: "g1"},
	}

	order, grouped := groupByCategory(items)
	assert.Equal(t, []string{"ai", "software_dev", "general"}, order)
	assert.Len(t, grouped["ai"], 2)
	assert.Equal(t, "a1", grouped["ai"][0].Headline)
	assert.Equal(t, "a2", grouped["ai"][1].Headline)
}

func TestBuildMarkdown(t *testing.T) {
	items := []Item{
		{
			Headline:        "OpenAI releases model",
			DetailedSummary: "A short summary.",
			Category:        "ai",
			FeedName:        "TechCrunch AI",
			Url:             "https://example.com/1",
		},
	}

	md := BuildMarkdown(items)

	assert.Contains(t, md, "## 📋 İçindekiler")
	assert.Contains(t, md, "## 🤖 Yapay Zeka")
	assert.Contains(t, md, "[OpenAI releases model](#openai-releases-model)")
	assert.Contains(t, md, "A short summary.")
	assert.Contains(t, md, "[TechCrunch AI](https://example.com/1)")
}

func TestBuildItems_FallbackHeadline(t *testing.T) {
	contentList := []model.Content{
		{
			Id:       7,
			Title:    "Plain title",
			Summary:  "<p>Html summary</p>",
			Category: "ai",
			Url:      "https://example.com/1",
		},
	}

	items := buildItems(contentList, fallbackHeadlineWriter{})
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].Id)
	assert.Equal(t, "Plain title", items[0].Headline)
	assert.Equal(t, "Html summary", items[0].DetailedSummary)
}

func TestMarkdownToTelegraphHTML(t *testing.T) {
	md := "## Section\n\nSome **bold** and *italic* text with a [link](https://example.com).\n\n---\n\n### <a id=\"slug\"></a>Sub heading\n"

	html := MarkdownToTelegraphHTML(md)

	// h1/h2 are not supported by Telegraph, headings collapse to h3.
	assert.Contains(t, html, "<h3>Section</h3>")
	assert.Contains(t, html, "<h3>Sub heading</h3>")
	assert.NotContains(t, html, "<h2>")

	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<em>italic</em>")
	assert.Contains(t, html, `<a href="https://example.com">link</a>`)
	assert.Contains(t, html, "<hr>")

	// Anchor ids are stripped.
	assert.NotContains(t, html, "a id=")
}
