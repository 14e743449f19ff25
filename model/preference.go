package model

import (
	"time"
)

/*

Preference is the learned per-keyword bias of the personalization engine

Keyword: unique key, one row per distinct keyword ever seen in feedback
Category: category of the content the keyword was most recently learned from,
	informational only
Weight: learned bias, always clamped to [-1.0, 1.0] after every update
PositiveCount / NegativeCount: how many feedback occurrences moved this weight
	in each direction. Their sum is the confidence of this preference
LastUpdated: stamp of the latest weight update

Rows are created lazily on first feedback touching the keyword and never
deleted; a stale preference simply stops matching once its content ages out.
*/

type Preference struct {
	Id            int64  `gorm:"primaryKey;autoIncrement"`
	Keyword       string `gorm:"uniqueIndex;size:200;not null"`
	Category      string `gorm:"size:50"`
	Weight        float64 `gorm:"default:0"`
	PositiveCount int     `gorm:"default:0"`
	NegativeCount int     `gorm:"default:0"`
	LastUpdated   time.Time
}

// FeedbackCount is the combined confidence counter of this preference.
func (p *Preference) FeedbackCount() int {
	return p.PositiveCount + p.NegativeCount
}
