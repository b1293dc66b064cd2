package models

import "time"

// Category groups reports under a name. The author is the user that
// created it; a category cannot be removed while reports reference it.
type Category struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:255;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User   `gorm:"foreignKey:AuthorID;references:ID"`
}
