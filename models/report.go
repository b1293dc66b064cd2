package models

import "time"

// Report is a user-filed issue entry. Category and author are mandatory
// references; description is the only optional field.
type Report struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text"`
	Resolved    bool       `gorm:"not null"`
	Type        ReportType `gorm:"size:255;not null"`
	CategoryID  uint       `gorm:"index;not null"`
	Category    Category   `gorm:"foreignKey:CategoryID;references:ID"`
	AuthorID    uint       `gorm:"index;not null"`
	Author      User       `gorm:"foreignKey:AuthorID;references:ID"`
}
