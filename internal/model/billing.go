package model

type BillingRecord struct {
	ID               string  `json:"id"`
	TeamID           string  `json:"team_id"`
	VideoID          string  `json:"video_id"`
	LanguageCode     string  `json:"language_code"`
	MinutesProcessed float64 `json:"minutes_processed"`
	WasOriginal      bool    `json:"was_original"`
	UserID           string  `json:"user_id,omitempty"`
	Source           string  `json:"source"`
	ProcessedDate    string  `json:"processed_date"`
}

type GetBillingRecordsRequest struct {
	TeamSlug string `json:"team_slug"`
}

type GetBillingRecordsResponse struct {
	Records []BillingRecord `json:"records"`
}
