package models

import "time"

type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:100;not null;uniqueIndex:idx_books_title_authors,priority:1"`
	Authors     string    `json:"authors" gorm:"size:150;not null;uniqueIndex:idx_books_title_authors,priority:2"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	SourceLink  string    `json:"source_link" gorm:"size:255;not null;default:'';index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}
