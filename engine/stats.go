package engine

import (
	"github.com/codenewsio/codenews/model"
	"gonum.org/v1/gonum/stat"
)

// KeywordWeight pairs a keyword with its learned weight for display.
type KeywordWeight struct {
	Keyword string
	Weight  float64
}

// PreferenceStats summarizes the learned model for the stats command.
type PreferenceStats struct {
	TotalPreferences    int64
	PositivePreferences int64
	NegativePreferences int64
	TotalFeedback       int64
	PositiveFeedback    int64
	NegativeFeedback    int64
	MeanWeight          float64
	WeightStdDev        float64
}

// TopPreferences returns the strongest positive and negative keyword biases.
func (e *Engine) TopPreferences(limit int) (positive []KeywordWeight, negative []KeywordWeight, err error) {
	var posPrefs, negPrefs []model.Preference

	if err := e.DB.Where("weight > 0").Order("weight desc").Limit(limit).Find(&posPrefs).Error; err != nil {
		return nil, nil, err
	}
	if err := e.DB.Where("weight < 0").Order("weight asc").Limit(limit).Find(&negPrefs).Error; err != nil {
		return nil, nil, err
	}

	for _, p := range posPrefs {
		positive = append(positive, KeywordWeight{Keyword: p.Keyword, Weight: p.Weight})
	}
	for _, p := range negPrefs {
		negative = append(negative, KeywordWeight{Keyword: p.Keyword, Weight: p.Weight})
	}
	return positive, negative, nil
}

// Stats reports aggregate counters about preferences and feedback.
func (e *Engine) Stats() (*PreferenceStats, error) {
	stats := &PreferenceStats{}

	if err := e.DB.Model(&model.Preference{}).Count(&stats.TotalPreferences).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&model.Preference{}).Where("weight > 0").Count(&stats.PositivePreferences).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&model.Preference{}).Where("weight < 0").Count(&stats.NegativePreferences).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&model.Feedback{}).Count(&stats.TotalFeedback).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&model.Feedback{}).Where("sentiment = ?", model.SentimentPositive).Count(&stats.PositiveFeedback).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&model.Feedback{}).Where("sentiment = ?", model.SentimentNegative).Count(&stats.NegativeFeedback).Error; err != nil {
		return nil, err
	}

	var weights []float64
	if err := e.DB.Model(&model.Preference{}).Pluck("weight", &weights).Error; err != nil {
		return nil, err
	}
	if len(weights) > 0 {
		stats.MeanWeight = stat.Mean(weights, nil)
		stats.WeightStdDev = stat.StdDev(weights, nil)
	}

	return stats, nil
}
