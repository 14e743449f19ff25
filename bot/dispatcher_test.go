package bot

import (
	"testing"
	"time"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/monitor"
	"github.com/codenewsio/codenews/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBudget struct {
	perHour int
	used    int
	refunds int
}

func (b *fakeBudget) Allow() (bool, error) {
	if b.used >= b.perHour {
		return false, nil
	}
	b.used++
	return true, nil
}

func (b *fakeBudget) Refund() error {
	b.used--
	b.refunds++
	return nil
}

func (b *fakeBudget) PerHour() int {
	return b.perHour
}

type failingNotifier struct {
	failUrls map[string]bool
	pushed   []string
}

func (n *failingNotifier) PushContent(content *model.Content, summary string) error {
	if n.failUrls[content.Url] {
		return errors.New("delivery failed")
	}
	n.pushed = append(n.pushed, content.Url)
	return nil
}

func dispatcherTestConfig() *config.AppConfig {
	return &config.AppConfig{
		MaxItemsPerFeed:           50,
		InitialRelevanceThreshold: 0.1,
		SummaryMaxLength:          200,
	}
}

func TestDispatchPending_FailedPushRefundsSlot(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	cfg := dispatcherTestConfig()
	now := time.Now().UTC()

	broken := model.Content{Url: "https://example.com/broken", Title: "broken", RelevanceScore: 0.9, FetchedDate: now}
	fine := model.Content{Url: "https://example.com/fine", Title: "fine", RelevanceScore: 0.8, FetchedDate: now}
	require.Nil(t, db.Create(&broken).Error)
	require.Nil(t, db.Create(&fine).Error)

	budget := &fakeBudget{perHour: 2}
	notifier := &failingNotifier{failUrls: map[string]bool{broken.Url: true}}
	d := NewDispatcher(monitor.NewMonitor(db, cfg), filter.NewContentFilter(db, cfg), notifier, budget, cfg)

	pushed, err := d.DispatchPending()
	require.Nil(t, err)
	assert.Equal(t, 1, pushed)
	assert.Equal(t, []string{fine.Url}, notifier.pushed)

	// The failed push gave its slot back, only the delivered item consumed one.
	assert.Equal(t, 1, budget.refunds)
	assert.Equal(t, 1, budget.used)

	// The failed item stays unnotified and competes again next cycle.
	var undelivered model.Content
	require.Nil(t, db.Where("url = ?", broken.Url).First(&undelivered).Error)
	assert.False(t, undelivered.Notified)
}

func TestDispatchPending_BudgetExhaustionDefersItems(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	cfg := dispatcherTestConfig()
	now := time.Now().UTC()

	first := model.Content{Url: "https://example.com/1", Title: "first", RelevanceScore: 0.9, FetchedDate: now}
	second := model.Content{Url: "https://example.com/2", Title: "second", RelevanceScore: 0.8, FetchedDate: now}
	require.Nil(t, db.Create(&first).Error)
	require.Nil(t, db.Create(&second).Error)

	budget := &fakeBudget{perHour: 1}
	notifier := &failingNotifier{}
	d := NewDispatcher(monitor.NewMonitor(db, cfg), filter.NewContentFilter(db, cfg), notifier, budget, cfg)

	pushed, err := d.DispatchPending()
	require.Nil(t, err)
	assert.Equal(t, 1, pushed)
	assert.Equal(t, []string{first.Url}, notifier.pushed)

	var deferred model.Content
	require.Nil(t, db.Where("url = ?", second.Url).First(&deferred).Error)
	assert.False(t, deferred.Notified)
}
