package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Article is an educational post. Content is Markdown; Excerpt feeds the
// card view on the education page.
type Article struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Category      string         `gorm:"size:100;index" json:"category"`
	Author        string         `gorm:"size:100;default:'RecycleTrack Team'" json:"author"`
	ReadingTime   int            `gorm:"default:3" json:"reading_time"`
	FeaturedImage string         `gorm:"size:500" json:"featured_image"`
	Excerpt       string         `gorm:"size:1000" json:"excerpt"`
	Content       string         `gorm:"type:text" json:"content"`
	Tags          datatypes.JSON `json:"tags"`
	Views         int            `gorm:"default:0" json:"views"`
	PublishedDate time.Time      `json:"published_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
