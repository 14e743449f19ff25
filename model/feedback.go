package model

import (
	"time"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

/*

Feedback is a single user reaction to a Content item

ContentID: the reacted item, at most one live Feedback per Content. A repeated
	button press overwrites the sentiment (last-write-wins)
Sentiment: "positive", "negative" or "neutral"
Note: optional free text, not used by scoring
FeedbackDate: time of the most recent press

A Feedback row is deleted once the item it references is consumed by a digest,
or when the item ages out of retention.
*/

type Feedback struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	ContentID    int64  `gorm:"uniqueIndex;not null"`
	Sentiment    string `gorm:"size:20"`
	Note         string
	FeedbackDate time.Time
}

// ValidSentiment reports whether s is one of the recognized sentiment values.
func ValidSentiment(s string) bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}
