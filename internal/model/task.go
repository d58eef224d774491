package model

type Task struct {
	ID             string `json:"id"`
	TeamID         string `json:"team_id"`
	TeamVideoID    string `json:"team_video_id"`
	LanguageCode   string `json:"language_code,omitempty"`
	Type           string `json:"type"`
	AssigneeUserID string `json:"assignee_user_id,omitempty"`
	Approved       string `json:"approved,omitempty"`
	Priority       int    `json:"priority"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	CompletedDate  string `json:"completed_date,omitempty"`
}

type GetTasksRequest struct {
	TeamSlug string `json:"team_slug"`
	Type     string `json:"type"`
}

type GetTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type AssignTaskRequest struct {
	TaskID string `json:"task_id"`
	// UserID is the assignee. Empty assigns the task to the requester.
	UserID string `json:"user_id"`
}

type AssignTaskResponse struct {
	ExpirationDate string `json:"expiration_date,omitempty"`
}

type UnassignTaskRequest struct {
	TaskID string `json:"task_id"`
}

type UnassignTaskResponse struct{}

type CompleteTaskRequest struct {
	TaskID string `json:"task_id"`
	// Approved carries the verdict for review and approve tasks, either
	// "approved" or "rejected". It is ignored for other task types.
	Approved string `json:"approved"`
}

type CompleteTaskResponse struct {
	// FollowupTaskID names the task created to continue the workflow, if
	// any.
	FollowupTaskID string `json:"followup_task_id,omitempty"`
}

type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

type DeleteTaskResponse struct{}
