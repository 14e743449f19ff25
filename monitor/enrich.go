package monitor

import (
	"strings"

	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/gocolly/colly"
	"gorm.io/gorm"
)

// Enricher fetches the article page for entries whose feed carried no body, so
// scoring sees the full text instead of a one-line teaser.
type Enricher struct {
	DB *gorm.DB
}

func NewEnricher(db *gorm.DB) *Enricher {
	return &Enricher{DB: db}
}

// EnrichEmptyBodies fills in missing bodies for unnotified entries. Fetch
// failures leave the row untouched; scoring falls back to title+summary.
func (e *Enricher) EnrichEmptyBodies(limit int) error {
	var contentList []model.Content
	err := e.DB.
		Where("notified = ?", false).
		Where("body = ?", "").
		Limit(limit).
		Find(&contentList).Error
	if err != nil {
		return err
	}

	enriched := 0
	for i := range contentList {
		body := e.fetchArticleText(contentList[i].Url)
		if body == "" {
			continue
		}

		err := e.DB.Model(&model.Content{}).
			Where("id = ?", contentList[i].Id).
			Update("body", body).Error
		if err != nil {
			Logger.Log.Errorf("fail to store body for content %d: %v", contentList[i].Id, err)
			continue
		}
		enriched++
	}

	if enriched > 0 {
		Logger.Log.Infof("enriched %d items with full article text", enriched)
	}
	return nil
}

// fetchArticleText scrapes the main textual content of an article page,
// preferring the article element over the whole body.
func (e *Enricher) fetchArticleText(url string) string {
	var text string

	c := colly.NewCollector()
	c.OnHTML("article", func(elem *colly.HTMLElement) {
		if text == "" {
			text = elem.Text
		}
	})
	c.OnHTML("body", func(elem *colly.HTMLElement) {
		if text == "" {
			text = elem.Text
		}
	})

	if err := c.Visit(url); err != nil {
		Logger.Log.Warnf("fail to fetch article %s: %v", url, err)
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}
