package models

import (
	"time"

	"github.com/google/uuid"
)

// One analyzed food photo. Rows are written once by the analyze endpoint
// and never updated; the store assigns both the id and the timestamp.
type FoodLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"type:varchar(255);not null;index" json:"user_id"`
	FoodName   string    `json:"food_name"`
	Calories   int       `json:"calories"`
	ProteinG   float64   `gorm:"column:protein_g" json:"protein_g"`
	CarbsG     float64   `gorm:"column:carbs_g" json:"carbs_g"`
	FatG       float64   `gorm:"column:fat_g" json:"fat_g"`
	Confidence string    `gorm:"type:varchar(16)" json:"confidence"` // "high"|"medium"|"low"
	Notes      string    `json:"notes"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	LoggedAt   time.Time `gorm:"autoCreateTime;index" json:"logged_at"`
}

func (FoodLog) TableName() string {
	return "food_logs"
}
