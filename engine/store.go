package engine

import (
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceStore is the only owner of Preference rows. The learner and the
// rescorer read and mutate preferences exclusively through it and never hold
// copies across operations.
type PreferenceStore struct {
	DB *gorm.DB
}

func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{DB: db}
}

// Get returns the preference for keyword, or nil when none exists yet.
func (s *PreferenceStore) Get(tx *gorm.DB, keyword string) (*model.Preference, error) {
	var pref model.Preference
	res := tx.Where("keyword = ?", keyword).First(&pref)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &pref, nil
}

// Upsert returns the preference row for keyword, creating it with zero weight
// and counts when absent. Concurrent feedback events race on the unique
// keyword index; the loser's insert affects zero rows and retries exactly once
// as a read of the winner's row. Escalates only if that retry also fails.
func (s *PreferenceStore) Upsert(tx *gorm.DB, keyword string, category string) (*model.Preference, error) {
	pref, err := s.Get(tx, keyword)
	if err != nil {
		return nil, err
	}
	if pref != nil {
		return pref, nil
	}

	return s.createOrRefetch(tx, keyword, category)
}

// createOrRefetch inserts a fresh preference row. When the insert conflicts on
// the unique keyword index because a concurrent event created the row between
// the caller's read and this insert, it retries exactly once as a read of the
// winner's row.
func (s *PreferenceStore) createOrRefetch(tx *gorm.DB, keyword string, category string) (*model.Preference, error) {
	created := model.Preference{
		Keyword:     keyword,
		Category:    category,
		Weight:      0.0,
		LastUpdated: time.Now().UTC(),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&created)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the creation race to a concurrent event, fall back to its row.
		pref, err := s.Get(tx, keyword)
		if err != nil {
			return nil, errors.Wrapf(err, "conflict retry failed for keyword %q", keyword)
		}
		if pref == nil {
			return nil, errors.Errorf("preference %q vanished after creation conflict", keyword)
		}
		return pref, nil
	}

	return &created, nil
}

// MatchingPreferences returns all preferences whose keyword appears in the
// given keyword list. Reads outside any transaction: rescoring tolerates the
// store changing mid-scan.
func (s *PreferenceStore) MatchingPreferences(keywords []string) ([]model.Preference, error) {
	if len(keywords) == 0 {
		return []model.Preference{}, nil
	}
	var prefs []model.Preference
	if err := s.DB.Where("keyword IN ?", keywords).Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

// ClampWeight bounds the learned weight to [-1.0, 1.0]. Called after every
// weight update, never skipped.
func ClampWeight(pref *model.Preference) {
	if pref.Weight > 1.0 {
		pref.Weight = 1.0
	}
	if pref.Weight < -1.0 {
		pref.Weight = -1.0
	}
}
