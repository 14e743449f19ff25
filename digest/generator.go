package digest

import (
	"time"

	"github.com/codenewsio/codenews/config"
	Logger "github.com/codenewsio/codenews/utils/log"
	"gorm.io/gorm"
)

// Package is one fully rendered digest, ready to publish.
type Package struct {
	Title      string
	Markdown   string
	Items      []Item
	ContentIds []int64
}

// Announcer tells readers where the published digest lives. Nil means no
// announcement.
type Announcer interface {
	AnnounceDigest(title string, url string) error
}

// Generator orchestrates one digest run: select, render, publish, record.
type Generator struct {
	DB        *gorm.DB
	Selector  *Selector
	Writer    HeadlineWriter
	Publisher Publisher
	Announcer Announcer

	authorName string
}

func NewGenerator(db *gorm.DB, cfg *config.AppConfig, publisher Publisher, announcer Announcer) *Generator {
	return &Generator{
		DB:         db,
		Selector:   NewSelector(db, cfg.BlogMinItems, cfg.BlogMaxItems),
		Writer:     fallbackHeadlineWriter{},
		Publisher:  publisher,
		Announcer:  announcer,
		authorName: cfg.DigestAuthor,
	}
}

// BuildPackage selects and renders a digest. Returns nil when there is not
// enough qualifying content, which the caller treats as a skipped run.
func (g *Generator) BuildPackage() (*Package, error) {
	selected, err := g.Selector.Select()
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, nil
	}

	items := buildItems(selected, g.Writer)

	contentIds := make([]int64, 0, len(selected))
	for _, c := range selected {
		contentIds = append(contentIds, c.Id)
	}

	return &Package{
		Title:      BuildTitle(time.Now().UTC()),
		Markdown:   BuildMarkdown(items),
		Items:      items,
		ContentIds: contentIds,
	}, nil
}

// PublishDigest runs one full digest cycle. Content is only marked consumed
// after the publish succeeds, so a failed publish leaves everything eligible
// for the next run.
func (g *Generator) PublishDigest() (string, error) {
	pkg, err := g.BuildPackage()
	if err != nil {
		return "", err
	}
	if pkg == nil {
		Logger.Log.Info("skipping digest, not enough content")
		return "", nil
	}

	url, err := g.Publisher.Publish(pkg.Title, MarkdownToTelegraphHTML(pkg.Markdown))
	if err != nil {
		return "", err
	}
	Logger.Log.Infof("published digest %q at %s", pkg.Title, url)

	if err := SaveRecord(g.DB, pkg.Title, pkg.ContentIds, true); err != nil {
		Logger.Log.Errorf("fail to save digest record: %v", err)
	}
	if g.Announcer != nil {
		if err := g.Announcer.AnnounceDigest(pkg.Title, url); err != nil {
			Logger.Log.Errorf("fail to announce digest: %v", err)
		}
	}
	if err := MarkContentUsed(g.DB, pkg.ContentIds); err != nil {
		return url, err
	}
	return url, nil
}
