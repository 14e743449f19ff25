package digest

import (
	"testing"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRecord_UpsertBySlug(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	require.Nil(t, SaveRecord(db, "Code Report - Hafta 2, 2026", []int64{1, 2}, false))
	require.Nil(t, SaveRecord(db, "Code Report - Hafta 2, 2026", []int64{1, 2, 3}, true))

	var count int64
	db.Model(&model.DigestRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var record model.DigestRecord
	require.Nil(t, db.First(&record).Error)
	assert.True(t, record.Exported)
	assert.JSONEq(t, "[1,2,3]", string(record.ContentIds))
}

func TestMarkContentUsed(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	now := time.Now().UTC()
	published := model.Content{Url: "https://example.com/1", Title: "t1", FetchedDate: now}
	untouched := model.Content{Url: "https://example.com/2", Title: "t2", FetchedDate: now}
	require.Nil(t, db.Create(&published).Error)
	require.Nil(t, db.Create(&untouched).Error)

	require.Nil(t, db.Create(&model.Feedback{
		ContentID:    published.Id,
		Sentiment:    model.SentimentPositive,
		FeedbackDate: now,
	}).Error)
	require.Nil(t, db.Create(&model.Feedback{
		ContentID:    untouched.Id,
		Sentiment:    model.SentimentPositive,
		FeedbackDate: now,
	}).Error)

	require.Nil(t, MarkContentUsed(db, []int64{published.Id}))

	var c model.Content
	require.Nil(t, db.First(&c, published.Id).Error)
	assert.True(t, c.UsedInDigest)

	// The published item's feedback is cleared, the other one survives.
	var feedbackCount int64
	db.Model(&model.Feedback{}).Where("content_id = ?", published.Id).Count(&feedbackCount)
	assert.Equal(t, int64(0), feedbackCount)
	db.Model(&model.Feedback{}).Where("content_id = ?", untouched.Id).Count(&feedbackCount)
	assert.Equal(t, int64(1), feedbackCount)

	var c2 model.Content
	require.Nil(t, db.First(&c2, untouched.Id).Error)
	assert.False(t, c2.UsedInDigest)
}

func TestMarkContentUsed_EmptyList(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	assert.Nil(t, MarkContentUsed(db, nil))
}
