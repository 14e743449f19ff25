package filter

import (
	"strings"
	"time"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"gorm.io/gorm"
)

// ContentFilter gates newly fetched content by freshness and news-ness, then
// assigns the base relevance score. It owns no scheduling: the pipeline calls
// ProcessNewContent once per ingest cycle.
type ContentFilter struct {
	DB *gorm.DB

	keywords         []string
	newsKeywords     []string
	maxAge           time.Duration
	threshold        float64
	summaryMaxLength int
}

func NewContentFilter(db *gorm.DB, cfg *config.AppConfig) *ContentFilter {
	return &ContentFilter{
		DB:               db,
		keywords:         lowercaseAll(cfg.Keywords),
		newsKeywords:     lowercaseAll(cfg.NewsKeywords),
		maxAge:           time.Duration(cfg.MaxArticleAgeHours) * time.Hour,
		threshold:        cfg.InitialRelevanceThreshold,
		summaryMaxLength: cfg.SummaryMaxLength,
	}
}

func lowercaseAll(list []string) []string {
	lowered := make([]string, 0, len(list))
	for _, s := range list {
		lowered = append(lowered, strings.ToLower(s))
	}
	return lowered
}

// FilterAndScore runs every item through the freshness and news gates, then
// scores the survivors. Items below the relevance threshold are dropped.
// The input slice is not mutated; returned items carry the assigned category
// and score.
func (f *ContentFilter) FilterAndScore(contentList []model.Content) []model.Content {
	now := time.Now().UTC()
	filtered := []model.Content{}

	for _, content := range contentList {
		if !IsNewsContent(&content, f.newsKeywords) {
			Logger.Log.Debugf("filtered out (not news): %.50s", content.Title)
			continue
		}

		if !IsFreshContent(&content, f.maxAge, now) {
			Logger.Log.Debugf("filtered out (too old): %.50s", content.Title)
			continue
		}

		category, score := Categorize(&content, f.keywords)

		if category != "" && score >= f.threshold {
			content.Category = category
			content.RelevanceScore = score
			filtered = append(filtered, content)
		} else {
			Logger.Log.Debugf("filtered out (low score): %.50s (score: %f)", content.Title, score)
		}
	}

	return filtered
}

// ProcessNewContent filters and scores all not-yet-notified content and
// persists category and score for the items that pass. A write failure on one
// item is logged and does not abort the rest of the batch.
func (f *ContentFilter) ProcessNewContent() ([]model.Content, error) {
	var contentList []model.Content
	if err := f.DB.Where("notified = ?", false).Find(&contentList).Error; err != nil {
		return nil, err
	}

	if len(contentList) == 0 {
		Logger.Log.Info("no new content to process")
		return []model.Content{}, nil
	}

	Logger.Log.Infof("processing %d new items", len(contentList))

	filtered := f.FilterAndScore(contentList)

	for i := range filtered {
		err := f.DB.Model(&model.Content{}).
			Where("id = ?", filtered[i].Id).
			Updates(map[string]interface{}{
				"category":        filtered[i].Category,
				"relevance_score": filtered[i].RelevanceScore,
			}).Error
		if err != nil {
			Logger.Log.Errorf("fail to persist score for content %d: %v", filtered[i].Id, err)
		}
	}

	Logger.Log.Infof("processed %d relevant items", len(filtered))
	return filtered, nil
}

// GenerateSummary builds a short display summary for a notification: the
// cleaned feed summary if present, else the first sentence of the body, else
// the title. External summarization services plug in ahead of this fallback.
func (f *ContentFilter) GenerateSummary(content *model.Content) string {
	summary := ""

	if content.Summary != "" {
		summary = CleanText(content.Summary)
	}

	if summary == "" && content.Body != "" {
		summary = ExtractFirstSentence(content.Body)
	}

	if summary == "" {
		summary = content.Title
	}

	return TruncateText(summary, f.summaryMaxLength)
}
