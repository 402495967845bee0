package model

type Notification struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	ActiveUserID string `json:"active_user_id"`
	QuestionID   string `json:"question_id,omitempty"`
	Watched      bool   `json:"watched"`
	CreatedAt    string `json:"created_at"`
}

type GetNotificationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type WatchNotificationsRequest struct{}

type WatchNotificationsResponse struct{}
