package engine

import (
	"time"

	"github.com/codenewsio/codenews/config"
	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Engine is the personalization engine: it learns per-keyword weights from
// feedback events and recombines them into personalized content scores.
type Engine struct {
	DB    *gorm.DB
	Store *PreferenceStore

	learningRate     float64
	minFeedbackCount int
}

func NewEngine(db *gorm.DB, cfg *config.AppConfig) *Engine {
	return &Engine{
		DB:               db,
		Store:            NewPreferenceStore(db),
		learningRate:     cfg.LearningRate,
		minFeedbackCount: cfg.MinFeedbackCount,
	}
}

// ApplyFeedback folds one feedback event into the preference store. Keywords
// come from title+summary only, not the body. Every keyword occurrence is an
// independent update: a word repeated in the title moves its weight twice.
//
// All keyword updates of one event commit atomically. A failure mid-batch
// rolls back the whole event, never a partial set of keywords.
//
// A feedback event referencing unknown content is a logged no-op.
func (e *Engine) ApplyFeedback(contentID int64, sentiment string) error {
	var content model.Content
	res := e.DB.Where("id = ?", contentID).First(&content)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		Logger.Log.Warnf("content %d not found, skipping feedback", contentID)
		return nil
	}
	if res.Error != nil {
		return res.Error
	}

	keywords := filter.ExtractKeywords(content.LearningText())
	if len(keywords) == 0 {
		Logger.Log.Infof("no keywords extracted from content %d", contentID)
		return nil
	}

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		for _, keyword := range keywords {
			pref, err := e.Store.Upsert(tx, keyword, content.Category)
			if err != nil {
				return err
			}

			switch sentiment {
			case model.SentimentPositive:
				pref.PositiveCount++
				pref.Weight += e.learningRate
			case model.SentimentNegative:
				pref.NegativeCount++
				pref.Weight -= e.learningRate
			}

			ClampWeight(pref)
			pref.Category = content.Category
			pref.LastUpdated = time.Now().UTC()

			if err := tx.Save(pref).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		Logger.Log.Errorf("fail to update preferences for content %d: %v", contentID, err)
		return err
	}

	Logger.Log.Infof("updated preferences for %d keywords from content %d", len(keywords), contentID)
	return nil
}
