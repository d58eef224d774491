package entity

import "database/sql"

// SubtitleLanguage tracks the subtitle track of one video in one language.
type SubtitleLanguage struct {
	Base

	VideoID      string `gorm:"index:idx_subtitle_language,unique"`
	LanguageCode string `gorm:"index:idx_subtitle_language,unique"`

	SubtitlesComplete bool
}

// SubtitleVersion is one revision of a subtitle track.
type SubtitleVersion struct {
	Base

	SubtitleLanguageID string           `gorm:"index"`
	SubtitleLanguage   SubtitleLanguage `gorm:"foreignKey:SubtitleLanguageID"`

	Number   int
	AuthorID sql.NullString

	// Visibility is "public" or "private". Approval flows publish a private
	// version by flipping it to public.
	Visibility string
}
