package model

type SearchVideosRequest struct {
	TeamSlug string `json:"team_slug"`
	Query    string `json:"query"`
}

type SearchVideosResponse struct {
	Videos []TeamVideo `json:"videos"`
}
