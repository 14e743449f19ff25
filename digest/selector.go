package digest

import (
	"time"

	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"gorm.io/gorm"
)

const (
	// Phase-2 fallback pulls from the last two weeks of fetched content.
	fallbackWindow = 14 * 24 * time.Hour
	// Minimum base relevance score for a phase-2 fallback candidate.
	fallbackMinScore = 0.3
)

// Selector picks the content items for one digest. Selection is strictly
// read-only and repeatable: marking items consumed happens in a separate step
// after a successful publish.
type Selector struct {
	DB *gorm.DB

	MinItems int
	MaxItems int
}

func NewSelector(db *gorm.DB, minItems, maxItems int) *Selector {
	return &Selector{DB: db, MinItems: minItems, MaxItems: maxItems}
}

// Select returns the digest items in presentation order, or nil when there is
// not enough qualifying content. Too little content is a defined result, not
// an error: the caller skips the digest build.
//
// Phase 1 takes items with positive feedback not yet used in a digest, newest
// fetched first. Only if phase 1 falls short of MinItems, phase 2 tops up with
// recent high-scoring items. Phase-1 items always precede phase-2 items:
// feedback-validated content outranks score-only content unconditionally.
func (s *Selector) Select() ([]model.Content, error) {
	selected, err := s.positiveFeedbackContent()
	if err != nil {
		return nil, err
	}
	Logger.Log.Infof("found %d items with positive feedback", len(selected))

	if len(selected) < s.MinItems {
		additional, err := s.highScoringFallback(selected)
		if err != nil {
			return nil, err
		}
		selected = append(selected, additional...)
		Logger.Log.Infof("added %d high-scoring items", len(additional))
	}

	if len(selected) < s.MinItems {
		Logger.Log.Warnf("not enough content for digest. Need %d, have %d", s.MinItems, len(selected))
		return nil, nil
	}

	Logger.Log.Infof("selected %d items for digest", len(selected))
	return selected, nil
}

func (s *Selector) positiveFeedbackContent() ([]model.Content, error) {
	var selected []model.Content
	err := s.DB.
		Joins("JOIN feedbacks ON feedbacks.content_id = contents.id").
		Where("feedbacks.sentiment = ?", model.SentimentPositive).
		Where("contents.used_in_digest = ?", false).
		Order("contents.fetched_date desc").
		Limit(s.MaxItems).
		Find(&selected).Error
	return selected, err
}

func (s *Selector) highScoringFallback(alreadySelected []model.Content) ([]model.Content, error) {
	windowStart := time.Now().UTC().Add(-fallbackWindow)

	query := s.DB.
		Where("fetched_date >= ?", windowStart).
		Where("relevance_score >= ?", fallbackMinScore)

	if len(alreadySelected) > 0 {
		selectedIds := make([]int64, 0, len(alreadySelected))
		for _, c := range alreadySelected {
			selectedIds = append(selectedIds, c.Id)
		}
		query = query.Where("id NOT IN ?", selectedIds)
	}

	var additional []model.Content
	err := query.
		Order("relevance_score desc").
		Limit(s.MaxItems - len(alreadySelected)).
		Find(&additional).Error
	return additional, err
}
