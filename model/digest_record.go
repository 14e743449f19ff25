package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

DigestRecord tracks one published digest

Id: uuid assigned at creation
Slug: unique slug derived from the digest title, upsert key
Title: digest title as published
ContentIds: JSON array of Content ids included in the digest
Exported: set once the digest was successfully published
*/

type DigestRecord struct {
	Id            string `gorm:"primaryKey"`
	Slug          string `gorm:"uniqueIndex;size:200;not null"`
	Title         string `gorm:"size:500"`
	GeneratedDate time.Time
	ContentIds    datatypes.JSON
	Exported      bool `gorm:"default:false"`
}
