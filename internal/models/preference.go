package models

import "time"

// Preference is a persisted UI setting, e.g. key "theme" with value "dark".
type Preference struct {
	Key       string    `gorm:"primaryKey;type:text" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}
