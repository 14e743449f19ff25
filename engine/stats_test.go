package engine

import (
	"testing"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopPreferences(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	require.Nil(t, db.Create(&[]model.Preference{
		{Keyword: "golang", Weight: 0.8},
		{Keyword: "kubernetes", Weight: 0.3},
		{Keyword: "crypto", Weight: -0.6},
		{Keyword: "nft", Weight: -0.9},
	}).Error)

	positive, negative, err := e.TopPreferences(1)
	require.Nil(t, err)

	require.Len(t, positive, 1)
	assert.Equal(t, "golang", positive[0].Keyword)

	require.Len(t, negative, 1)
	assert.Equal(t, "nft", negative[0].Keyword)
}

func TestStats(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	require.Nil(t, db.Create(&[]model.Preference{
		{Keyword: "golang", Weight: 0.4},
		{Keyword: "crypto", Weight: -0.4},
	}).Error)

	content := model.Content{Url: "https://example.com/1", Title: "t", FetchedDate: time.Now().UTC()}
	require.Nil(t, db.Create(&content).Error)
	require.Nil(t, db.Create(&model.Feedback{
		ContentID:    content.Id,
		Sentiment:    model.SentimentPositive,
		FeedbackDate: time.Now().UTC(),
	}).Error)

	stats, err := e.Stats()
	require.Nil(t, err)

	assert.Equal(t, int64(2), stats.TotalPreferences)
	assert.Equal(t, int64(1), stats.PositivePreferences)
	assert.Equal(t, int64(1), stats.NegativePreferences)
	assert.Equal(t, int64(1), stats.TotalFeedback)
	assert.Equal(t, int64(1), stats.PositiveFeedback)
	assert.Equal(t, int64(0), stats.NegativeFeedback)
	assert.InDelta(t, 0.0, stats.MeanWeight, 1e-9)
}
