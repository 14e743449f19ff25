package engine

import (
	"context"
	"testing"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/codenewsio/codenews/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateContentScore_NoPreferences(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	content := &model.Content{
		Title:          "Kubernetes update",
		RelevanceScore: 0.6,
	}

	// No learned preferences: base score passes through.
	score, err := e.CalculateContentScore(content)
	require.Nil(t, err)
	assert.Equal(t, 0.6, score)
}

func TestCalculateContentScore_TrustedPreference(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	require.Nil(t, db.Create(&model.Preference{
		Keyword:       "kubernetes",
		Weight:        0.5,
		PositiveCount: 5,
	}).Error)

	content := &model.Content{
		Title:          "Kubernetes update",
		RelevanceScore: 0.6,
	}

	// avg weight 0.5 maps to adjustment (1+0.5)/2 = 0.75.
	score, err := e.CalculateContentScore(content)
	require.Nil(t, err)
	assert.InDelta(t, 0.45, score, 1e-9)
}

func TestCalculateContentScore_LowConfidenceExcluded(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	// 4 feedback events, below the confidence threshold of 5: the preference
	// is excluded entirely and the base score is untouched.
	require.Nil(t, db.Create(&model.Preference{
		Keyword:       "kubernetes",
		Weight:        -0.4,
		NegativeCount: 4,
	}).Error)

	content := &model.Content{
		Title:          "Kubernetes update",
		RelevanceScore: 0.6,
	}

	score, err := e.CalculateContentScore(content)
	require.Nil(t, err)
	assert.Equal(t, 0.6, score)
}

func TestCalculateContentScore_NegativePreferenceLowersScore(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	require.Nil(t, db.Create(&model.Preference{
		Keyword:       "crypto",
		Weight:        -1.0,
		NegativeCount: 10,
	}).Error)

	content := &model.Content{
		Title:          "Crypto markets weekly",
		RelevanceScore: 0.8,
	}

	// avg weight -1 maps to adjustment 0: fully suppressed.
	score, err := e.CalculateContentScore(content)
	require.Nil(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCalculateContentScore_NoKeywords(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	content := &model.Content{
		Title:          "a to is",
		RelevanceScore: 0.4,
	}

	score, err := e.CalculateContentScore(content)
	require.Nil(t, err)
	assert.Equal(t, 0.4, score)
}

func TestRescoreUnnotified(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	e := NewEngine(db, testEngineConfig())

	require.Nil(t, db.Create(&model.Preference{
		Keyword:       "kubernetes",
		Weight:        1.0,
		PositiveCount: 10,
	}).Error)

	content := model.Content{
		Url:            "https://example.com/1",
		Title:          "Kubernetes update",
		RelevanceScore: 0.6,
		FetchedDate:    time.Now().UTC(),
	}
	require.Nil(t, db.Create(&content).Error)

	notified := model.Content{
		Url:            "https://example.com/2",
		Title:          "Kubernetes update again",
		RelevanceScore: 0.6,
		Notified:       true,
		FetchedDate:    time.Now().UTC(),
	}
	require.Nil(t, db.Create(&notified).Error)

	require.Nil(t, e.RescoreUnnotified(context.Background()))

	var rescored model.Content
	require.Nil(t, db.First(&rescored, content.Id).Error)
	// avg weight 1 maps to adjustment 1: base score kept.
	assert.InDelta(t, 0.6, rescored.RelevanceScore, 1e-9)

	// Already notified content is left alone.
	var untouched model.Content
	require.Nil(t, db.First(&untouched, notified.Id).Error)
	assert.InDelta(t, 0.6, untouched.RelevanceScore, 1e-9)

	// Rescoring is idempotent against an unchanged preference store.
	require.Nil(t, e.RescoreUnnotified(context.Background()))
	require.Nil(t, db.First(&rescored, content.Id).Error)
	assert.InDelta(t, 0.6, rescored.RelevanceScore, 1e-9)
}
