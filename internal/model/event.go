package model

// CollaborationCompleteEvent is published when a collaboration reaches its
// end state, so managers can be notified asynchronously.
type CollaborationCompleteEvent struct {
	CollaborationID string `json:"collaboration_id"`
	TeamID          string `json:"team_id"`
	VideoID         string `json:"video_id"`
	LanguageCode    string `json:"language_code"`
}

// TaskCompleteEvent is published when a task finishes, carrying the verdict
// for review and approve tasks.
type TaskCompleteEvent struct {
	TaskID       string `json:"task_id"`
	TeamID       string `json:"team_id"`
	VideoID      string `json:"video_id"`
	LanguageCode string `json:"language_code"`
	Type         string `json:"type"`
	Approved     string `json:"approved,omitempty"`
}
