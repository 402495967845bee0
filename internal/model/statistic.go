package model

// PointStats carries one ranking window of a user. Nil fields mean the user
// is unranked in that window, which is different from holding a zero.
type PointStats struct {
	Rank      *int64 `json:"rank"`
	Point     *int64 `json:"point"`
	Answers   *int64 `json:"answers"`
	Questions *int64 `json:"questions"`
}

type ResponseStats struct {
	Rank     *int64 `json:"rank"`
	Response *int64 `json:"response"`
}

type GetPointStatsRequest struct {
	UserID string `json:"user_id"`
	Window string `json:"window"`
}

type GetPointStatsResponse struct {
	Stats PointStats `json:"stats"`
}

type GetResponseStatsRequest struct {
	UserID string `json:"user_id"`
	Window string `json:"window"`
}

type GetResponseStatsResponse struct {
	Stats ResponseStats `json:"stats"`
}

type UserStatistic struct {
	User  ShortUser `json:"user"`
	Rank  int64     `json:"rank"`
	Value int64     `json:"value"`
}

type GetLeaderBoardRequest struct {
	Window    string `json:"window"`
	OrderedBy string `json:"ordered_by"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`
}
