package model

type ShortUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User        ShortUser `json:"user"`
	Followers   int64     `json:"followers"`
	IsFollowing bool      `json:"is_following"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User ShortUser `json:"user"`
}
