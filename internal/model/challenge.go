package model

type ProposeChallengeRequest struct {
	ChallengedID string `json:"challenged_id"`
	DurationDays int    `json:"duration_days"`
}

type ProposeChallengeResponse struct {
	ID string `json:"id"`
}

type AcceptChallengeRequest struct {
	ID string `json:"id"`
}

type AcceptChallengeResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DeclineChallengeRequest struct {
	ID string `json:"id"`
}

type DeclineChallengeResponse struct{}

type GetChallengesRequest struct{}

type GetChallengesResponse struct {
	Sent     []Challenge `json:"sent"`
	Received []Challenge `json:"received"`
}

type Challenge struct {
	ID               string  `json:"id"`
	ChallengerID     string  `json:"challenger_id"`
	ChallengerName   string  `json:"challenger_name"`
	ChallengedID     string  `json:"challenged_id"`
	ChallengedName   string  `json:"challenged_name"`
	DurationDays     int     `json:"duration_days"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ChallengerPoints float64 `json:"challenger_points"`
	ChallengedPoints float64 `json:"challenged_points"`
	Status           string  `json:"status"`
	WinnerID         string  `json:"winner_id,omitempty"`
	PointsGained     float64 `json:"points_gained"`
}
