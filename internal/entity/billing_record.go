package entity

import (
	"database/sql"
	"time"
)

// BillingRecord is written once per video and language pair the first time
// the pair reaches a billable end state.
type BillingRecord struct {
	Base

	TeamID string `gorm:"index"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	VideoID      string `gorm:"index:idx_billing_record_unit,unique"`
	LanguageCode string `gorm:"index:idx_billing_record_unit,unique"`

	SubtitleVersionID sql.NullString

	MinutesProcessed float64
	WasOriginal      bool

	UserID sql.NullString
	Source string

	ProcessedDate time.Time
}
