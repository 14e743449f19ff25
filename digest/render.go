package digest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	"github.com/jinzhu/copier"
)

// Item is the presentation view of a selected content item. Decoupled from
// the persisted entity so rendering never touches the DB row.
type Item struct {
	Id       int64
	Url      string
	Title    string
	Summary  string
	Category string
	FeedName string

	// Headline and DetailedSummary come from the headline writer, with the
	// title and cleaned feed summary as fallback.
	Headline        string
	DetailedSummary string
}

// HeadlineWriter produces a display headline and a short summary for one
// item. Implementations wrap external text-generation services and own their
// own timeouts and retries.
type HeadlineWriter interface {
	HeadlineAndSummary(content *model.Content) (headline string, summary string, err error)
}

// fallbackHeadlineWriter derives the headline from the item itself, used when
// no external writer is configured or the external call fails.
type fallbackHeadlineWriter struct{}

func (fallbackHeadlineWriter) HeadlineAndSummary(content *model.Content) (string, string, error) {
	headline := content.Title
	if len(headline) > 100 {
		headline = headline[:100]
	}
	summary := filter.CleanText(content.Summary)
	if summary == "" {
		summary = content.Title
	}
	return headline, summary, nil
}

var slugStrip = regexp.MustCompile(`[^\w\s-]`)
var slugDashes = regexp.MustCompile(`[-\s]+`)

// Slugify converts text to a URL-friendly anchor slug.
func Slugify(text string) string {
	text = strings.ToLower(text)
	text = slugStrip.ReplaceAllString(text, "")
	text = slugDashes.ReplaceAllString(text, "-")
	if len(text) > 50 {
		text = text[:50]
	}
	return text
}

func categoryLabel(key string) string {
	switch key {
	case "ai":
		return "Yapay Zeka"
	case "software_dev":
		return "Yazılım Geliştirme"
	}
	return strings.Title(strings.ReplaceAll(key, "_", " "))
}

func categoryEmoji(key string) string {
	switch key {
	case "ai":
		return "🤖"
	case "software_dev":
		return "💻"
	}
	return "🗞️"
}

// BuildTitle names the digest after the current ISO week.
func BuildTitle(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf("Code Report - Hafta %d, %d", week, year)
}

// buildItems converts selected content into presentation items, asking the
// headline writer once per item.
func buildItems(contentList []model.Content, writer HeadlineWriter) []Item {
	fallback := fallbackHeadlineWriter{}
	items := make([]Item, 0, len(contentList))

	for i := range contentList {
		item := Item{}
		copier.Copy(&item, &contentList[i])

		headline, summary, err := writer.HeadlineAndSummary(&contentList[i])
		if err != nil || headline == "" {
			headline, summary, _ = fallback.HeadlineAndSummary(&contentList[i])
		}
		item.Headline = headline
		item.DetailedSummary = summary

		items = append(items, item)
	}
	return items
}

// groupByCategory buckets items under their category label, preserving the
// selection order inside each bucket and the order of first appearance across
// buckets.
func groupByCategory(items []Item) ([]string, map[string][]Item) {
	order := []string{}
	grouped := map[string][]Item{}

	for _, item := range items {
		key := item.Category
		if key == "" {
			key = "general"
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], item)
	}
	return order, grouped
}

// BuildMarkdown renders the digest body: a table of contents followed by one
// section per category, each entry with headline, summary and source link.
func BuildMarkdown(items []Item) string {
	order, grouped := groupByCategory(items)

	var b strings.Builder

	b.WriteString("## 📋 İçindekiler\n\n")
	for _, key := range order {
		b.WriteString(fmt.Sprintf("**%s %s**\n\n", categoryEmoji(key), categoryLabel(key)))
		for idx, item := range grouped[key] {
			b.WriteString(fmt.Sprintf("%d. [%s](#%s)\n", idx+1, item.Headline, Slugify(item.Headline)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")

	for _, key := range order {
		b.WriteString(fmt.Sprintf("## %s %s\n\n", categoryEmoji(key), categoryLabel(key)))

		for _, item := range grouped[key] {
			slug := Slugify(item.Headline)
			b.WriteString(fmt.Sprintf("### <a id=\"%s\"></a>%s\n\n", slug, item.Headline))
			b.WriteString(item.DetailedSummary + "\n\n")
			b.WriteString(fmt.Sprintf("**🔗 Kaynak:** [%s](%s)\n\n", item.FeedName, item.Url))
			b.WriteString("---\n\n")
		}
	}

	b.WriteString("\n## 💡 Hakkında\n\n")
	b.WriteString("Bu özet, CodeNews botu tarafından otomatik olarak oluşturulmuştur. ")
	b.WriteString("AI ve yazılım geliştirme alanındaki en önemli haberleri her hafta derleyerek sizlerle paylaşıyoruz.\n\n")
	b.WriteString("*Not: Özetler ve yorumlar yapay zeka destekli araçlar kullanılarak oluşturulmuştur. ")
	b.WriteString("Detaylı bilgi için kaynak linkleri ziyaret edebilirsiniz.*\n")

	return b.String()
}

var (
	frontMatter    = regexp.MustCompile(`(?s)^---.*?---\n`)
	mdH4           = regexp.MustCompile(`####\s+(.+)`)
	mdH3           = regexp.MustCompile(`###\s+(.+)`)
	mdH2           = regexp.MustCompile(`##\s+(.+)`)
	mdH1           = regexp.MustCompile(`#\s+(.+)`)
	mdBold         = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalic       = regexp.MustCompile(`\*(.+?)\*`)
	mdLink         = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	anchorTag      = regexp.MustCompile(`<a id="[^"]+"></a>`)
	horizontalRule = regexp.MustCompile(`(?m)^---\s*$`)
	tripleNewline  = regexp.MustCompile(`\n{3,}`)
)

// MarkdownToTelegraphHTML converts the digest markdown into the HTML subset
// Telegraph accepts: a, aside, b, blockquote, br, code, em, figcaption,
// figure, h3, h4, hr, i, iframe, img, li, ol, p, pre, s, strong, u, ul,
// video. Notably h1 and h2 are NOT supported, so every heading collapses to
// h3/h4, and anchor ids are stripped.
func MarkdownToTelegraphHTML(contentMd string) string {
	html := frontMatter.ReplaceAllString(contentMd, "")

	// Headers first, from most to least specific (h1/h2 degrade to h3).
	html = mdH4.ReplaceAllString(html, "<h4>$1</h4>")
	html = mdH3.ReplaceAllString(html, "<h3>$1</h3>")
	html = mdH2.ReplaceAllString(html, "<h3>$1</h3>")
	html = mdH1.ReplaceAllString(html, "<h3>$1</h3>")

	html = mdBold.ReplaceAllString(html, "<strong>$1</strong>")
	html = mdItalic.ReplaceAllString(html, "<em>$1</em>")

	html = mdLink.ReplaceAllString(html, `<a href="$2">$1</a>`)
	html = anchorTag.ReplaceAllString(html, "")

	html = horizontalRule.ReplaceAllString(html, "<hr>")

	paragraphs := strings.Split(html, "\n\n")
	formatted := []string{}
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if !strings.HasPrefix(para, "<") {
			formatted = append(formatted, "<p>"+para+"</p>")
		} else {
			formatted = append(formatted, para)
		}
	}
	html = strings.Join(formatted, "\n")

	return tripleNewline.ReplaceAllString(html, "\n\n")
}
