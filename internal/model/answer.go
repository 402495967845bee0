package model

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Option     string `json:"option"`
}

type SubmitAnswerResponse struct {
	Outcome string `json:"outcome"`
	Score   int    `json:"score"`
}
