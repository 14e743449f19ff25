package monitor

import (
	"time"

	"github.com/codenewsio/codenews/model"
	Logger "github.com/codenewsio/codenews/utils/log"
	"gorm.io/gorm"
)

// CleanupOldContent deletes content fetched more than retentionDays ago,
// together with any feedback hanging off it. Preferences survive cleanup: the
// learned weights outlive the articles they were learned from.
func CleanupOldContent(db *gorm.DB, retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	return db.Transaction(func(tx *gorm.DB) error {
		var staleIds []int64
		err := tx.Model(&model.Content{}).
			Where("fetched_date < ?", cutoff).
			Pluck("id", &staleIds).Error
		if err != nil {
			return err
		}
		if len(staleIds) == 0 {
			return nil
		}

		if err := tx.Where("content_id IN ?", staleIds).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", staleIds).Delete(&model.Content{}).Error; err != nil {
			return err
		}

		Logger.Log.Infof("cleaned up %d items older than %d days", len(staleIds), retentionDays)
		return nil
	})
}
