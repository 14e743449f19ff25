package engine

import (
	"context"

	"github.com/codenewsio/codenews/filter"
	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"gonum.org/v1/gonum/stat"
)

// CalculateContentScore recombines the base relevance score with the learned
// preference weights. The base score is the floor: no keywords, no matching
// preferences, or no preference past the confidence threshold all leave the
// score untouched. Otherwise the average trusted weight in [-1,1] maps to an
// adjustment factor in [0,1] applied to the base score.
func (e *Engine) CalculateContentScore(content *model.Content) (float64, error) {
	keywords := filter.ExtractKeywords(content.LearningText())
	if len(keywords) == 0 {
		return content.RelevanceScore, nil
	}

	prefs, err := e.Store.MatchingPreferences(keywords)
	if err != nil {
		return 0, err
	}
	if len(prefs) == 0 {
		// No learned preferences yet, use base score
		return content.RelevanceScore, nil
	}

	weights := []float64{}
	for _, pref := range prefs {
		// Preferences below the confidence threshold are excluded entirely,
		// not weighted down.
		if pref.FeedbackCount() >= e.minFeedbackCount {
			weights = append(weights, pref.Weight)
		}
	}
	if len(weights) == 0 {
		return content.RelevanceScore, nil
	}

	avgWeight := stat.Mean(weights, nil)

	// Map avg weight [-1,1] onto an adjustment factor [0,1].
	adjustment := (1.0 + avgWeight) / 2.0
	finalScore := content.RelevanceScore * adjustment

	if finalScore > 1.0 {
		finalScore = 1.0
	}
	if finalScore < 0.0 {
		finalScore = 0.0
	}
	return finalScore, nil
}

// RescoreUnnotified recomputes and persists the personalized score of every
// not-yet-notified item. Items are independent: a failure on one is logged and
// the batch continues. Running it twice against an unchanged preference store
// produces identical scores, so it is safe to trigger repeatedly. The context
// is checked between items to support graceful shutdown mid-batch.
func (e *Engine) RescoreUnnotified(ctx context.Context) error {
	var contentList []model.Content
	if err := e.DB.Where("notified = ?", false).Find(&contentList).Error; err != nil {
		return err
	}

	if len(contentList) == 0 {
		Logger.Log.Info("no content to rescore")
		return nil
	}

	Logger.Log.Infof("rescoring %d items", len(contentList))

	for i := range contentList {
		select {
		case <-ctx.Done():
			Logger.Log.Info("rescoring interrupted by shutdown")
			return ctx.Err()
		default:
		}

		newScore, err := e.CalculateContentScore(&contentList[i])
		if err != nil {
			Logger.Log.Errorf("fail to rescore content %d: %v", contentList[i].Id, err)
			continue
		}

		err = e.DB.Model(&model.Content{}).
			Where("id = ?", contentList[i].Id).
			Update("relevance_score", newScore).Error
		if err != nil {
			Logger.Log.Errorf("fail to persist score for content %d: %v", contentList[i].Id, err)
		}
	}

	Logger.Log.Info("rescoring complete")
	return nil
}
