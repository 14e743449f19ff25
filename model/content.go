package model

import (
	"time"
)

/*

Content is a single RSS feed entry discovered by the monitor

Id: primary key, auto-increment
Url: canonical link to the article, unique. Natural dedup key: inserting an
	existing url is a no-op, not an error
Title: entry title in plain text, required
Summary: short description from the feed, may be empty
Body: full article text when the feed (or the enricher) provides one
Category: free-form label attached by the feed config, defaults to "general"
FeedName: name of the originating feed
PublishedDate: publication time reported by the feed. A nil value means the
	feed did not report one and the item is treated as fresh
FetchedDate: time the monitor stored the entry
Notified: set once a notification for this entry was dispatched
RelevanceScore: keyword-match score in [0, 1], later personalized by the engine
UsedInDigest: set once the entry was consumed by a published digest
*/

type Content struct {
	Id             int64  `gorm:"primaryKey;autoIncrement"`
	Url            string `gorm:"uniqueIndex;size:500;not null"`
	Title          string `gorm:"size:500;not null"`
	Summary        string
	Body           string
	Category       string `gorm:"size:50;default:general"`
	FeedName       string `gorm:"size:200"`
	PublishedDate  *time.Time
	FetchedDate    time.Time
	Notified       bool    `gorm:"default:false"`
	RelevanceScore float64 `gorm:"default:0"`
	UsedInDigest   bool    `gorm:"default:false"`
}

// CombinedText is the text the base scorer operates on. Note that it includes
// the body while the preference learner deliberately only reads title+summary.
func (c *Content) CombinedText() string {
	return c.Title + " " + c.Summary + " " + c.Body
}

// LearningText is the text keyword learning and rescoring operate on.
func (c *Content) LearningText() string {
	return c.Title + " " + c.Summary
}
