package model

import "time"

// MenuDay is one day of the weekly mess menu.
type MenuDay struct {
	Day       string    `gorm:"size:16;primaryKey" json:"day"`
	Morning   string    `gorm:"size:256" json:"morning"`
	Breakfast string    `gorm:"size:512" json:"breakfast"`
	Lunch     string    `gorm:"size:512" json:"lunch"`
	Evening   string    `gorm:"size:256" json:"evening"`
	Dinner    string    `gorm:"size:512" json:"dinner"`
	UpdatedAt time.Time `json:"updated_at"`
}
