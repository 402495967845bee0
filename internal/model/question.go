package model

type Question struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	User        ShortUser `json:"user"`
	AnswerCount int64     `json:"answer_count"`
	ClosedAt    string    `json:"closed_at"`
	CreatedAt   string    `json:"created_at"`
}

type CreateQuestionRequest struct {
	Content string `json:"content"`
}

type CreateQuestionResponse struct {
	Question Question `json:"question"`
}

type GetQuestionRequest struct {
	ID string `json:"id"`
}

type GetQuestionResponse struct {
	Question Question `json:"question"`
}

type GetQuestionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type GetUserQuestionsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type DeleteQuestionRequest struct {
	ID string `json:"id"`
}

type DeleteQuestionResponse struct{}
