package model

type GetProgressRequest struct {
	Days int `json:"days"`
}

type GetProgressResponse struct {
	Days []DailyProgress `json:"days"`
}

type DailyProgress struct {
	Date           string  `json:"date"`
	MinutesStudied int     `json:"minutes_studied"`
	PointsEarned   float64 `json:"points_earned"`
	TasksCompleted int     `json:"tasks_completed"`
}

type GetLeaderboardRequest struct {
	Limit int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  uint64             `json:"my_rank"`
}

type LeaderboardEntry struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}
