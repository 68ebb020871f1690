package model

type CreateUserRequest struct {
	Name string `json:"name"`
}

type CreateUserResponse struct{}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type DeleteUserRequest struct{}

type DeleteUserResponse struct{}

type User struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalPoints    float64 `json:"total_points"`
	CurrentStreak  int     `json:"current_streak"`
	MaxStreak      int     `json:"max_streak"`
	GraceDaysUsed  int     `json:"grace_days_used"`
	TotalStudyTime int     `json:"total_study_time"`
	Rank           string  `json:"rank"`
	RankProgress   string  `json:"rank_progress"`
	MinutesToday   int     `json:"minutes_today"`
}
