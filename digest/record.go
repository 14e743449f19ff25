package digest

import (
	"encoding/json"
	"time"

	"github.com/codenewsio/codenews/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveRecord persists one digest run keyed by slug so a rerun of the same
// digest overwrites instead of duplicating.
func SaveRecord(db *gorm.DB, title string, contentIds []int64, exported bool) error {
	idsJSON, err := json.Marshal(contentIds)
	if err != nil {
		return errors.Wrap(err, "fail to marshal digest content ids")
	}

	record := model.DigestRecord{
		Id:            uuid.New().String(),
		Slug:          Slugify(title),
		Title:         title,
		GeneratedDate: time.Now().UTC(),
		ContentIds:    datatypes.JSON(idsJSON),
		Exported:      exported,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "generated_date", "content_ids", "exported"}),
	}).Create(&record).Error
}

// MarkContentUsed flags the published items as consumed and clears their
// feedback rows so the next selection starts from a clean slate. Both writes
// commit together: a digest item is either fully consumed or not at all.
func MarkContentUsed(db *gorm.DB, contentIds []int64) error {
	if len(contentIds) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Content{}).
			Where("id IN ?", contentIds).
			Update("used_in_digest", true).Error
		if err != nil {
			return err
		}
		return tx.Where("content_id IN ?", contentIds).
			Delete(&model.Feedback{}).Error
	})
}
