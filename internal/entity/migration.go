package entity

import "time"

// Migration records the schema versions already applied to the database.
type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}
