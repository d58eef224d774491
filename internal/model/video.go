package model

type AddTeamVideoRequest struct {
	TeamSlug                 string `json:"team_slug"`
	ProjectID                string `json:"project_id"`
	VideoID                  string `json:"video_id"`
	Title                    string `json:"title"`
	PrimaryAudioLanguageCode string `json:"primary_audio_language_code"`
	DurationSeconds          int    `json:"duration_seconds"`
}

type AddTeamVideoResponse struct {
	ID string `json:"id"`
}

type MoveTeamVideoRequest struct {
	TeamVideoID string `json:"team_video_id"`
	TeamSlug    string `json:"team_slug"`
	ProjectID   string `json:"project_id"`
}

type MoveTeamVideoResponse struct{}

type RemoveTeamVideoRequest struct {
	TeamVideoID string `json:"team_video_id"`
}

type RemoveTeamVideoResponse struct{}

type GetTeamVideosRequest struct {
	TeamSlug string `json:"team_slug"`
}

type GetTeamVideosResponse struct {
	Videos []TeamVideo `json:"videos"`
}
