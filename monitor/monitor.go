package monitor

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/mmcdole/gofeed"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Monitor polls the configured RSS feeds and stores new entries. The URL is
// the identity of an entry: an item seen twice is inserted once and silently
// skipped afterwards.
type Monitor struct {
	DB     *gorm.DB
	Parser *gofeed.Parser

	feeds           []config.FeedConfig
	maxItemsPerFeed int
}

func NewMonitor(db *gorm.DB, cfg *config.AppConfig) *Monitor {
	return &Monitor{
		DB:              db,
		Parser:          gofeed.NewParser(),
		feeds:           cfg.EnabledFeeds(),
		maxItemsPerFeed: cfg.MaxItemsPerFeed,
	}
}

// FetchAllFeeds polls every enabled feed once. A broken feed is logged and
// skipped so one dead source never blocks the others. Returns the number of
// newly inserted items.
func (m *Monitor) FetchAllFeeds(ctx context.Context) (int, error) {
	total := 0
	for _, feed := range m.feeds {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		inserted, err := m.fetchFeed(ctx, feed)
		if err != nil {
			Logger.Log.Errorf("fail to fetch feed %s: %v", feed.Name, err)
			continue
		}
		total += inserted
	}

	Logger.Log.Infof("fetched %d new items across %d feeds", total, len(m.feeds))
	return total, nil
}

func (m *Monitor) fetchFeed(ctx context.Context, feedCfg config.FeedConfig) (int, error) {
	parsed, err := m.Parser.ParseURLWithContext(feedCfg.Url, ctx)
	if err != nil {
		return 0, err
	}

	items := parsed.Items
	if len(items) > m.maxItemsPerFeed {
		items = items[:m.maxItemsPerFeed]
	}

	inserted := 0
	for _, item := range items {
		content := m.entryToContent(item, feedCfg)
		if content == nil {
			continue
		}

		// ON CONFLICT DO NOTHING on the url unique index makes re-polling a
		// feed idempotent.
		res := m.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(content)
		if res.Error != nil {
			Logger.Log.Errorf("fail to store entry %s: %v", content.Url, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// entryToContent maps one feed entry onto the content row. Published dates in
// feeds come in many formats; anything unparseable is stored as nil rather
// than guessed.
func (m *Monitor) entryToContent(item *gofeed.Item, feedCfg config.FeedConfig) *model.Content {
	if item.Link == "" || item.Title == "" {
		return nil
	}

	var published *time.Time
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		published = &t
	} else if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			t = t.UTC()
			published = &t
		}
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	return &model.Content{
		Url:           item.Link,
		Title:         filter.CleanText(item.Title),
		Summary:       filter.CleanText(item.Description),
		Body:          filter.CleanText(body),
		Category:      feedCfg.Category,
		FeedName:      feedCfg.Name,
		PublishedDate: published,
		FetchedDate:   time.Now().UTC(),
	}
}

// GetUnnotified returns scored items awaiting notification, best first.
func (m *Monitor) GetUnnotified(minScore float64, limit int) ([]model.Content, error) {
	var contentList []model.Content
	err := m.DB.
		Where("notified = ?", false).
		Where("relevance_score >= ?", minScore).
		Order("relevance_score desc").
		Limit(limit).
		Find(&contentList).Error
	return contentList, err
}

// MarkAsNotified flags items as dispatched so they are never pushed twice.
func (m *Monitor) MarkAsNotified(contentIds []int64) error {
	if len(contentIds) == 0 {
		return nil
	}
	return m.DB.Model(&model.Content{}).
		Where("id IN ?", contentIds).
		Update("notified", true).Error
}
