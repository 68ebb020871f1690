package model

type CreateTaskRequest struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CreateTaskResponse struct {
	ID string `json:"id"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

type GetTasksRequest struct{}

type GetTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type StartTimerRequest struct {
	ID string `json:"id"`
}

type StartTimerResponse struct {
	ExpectedCompletion string `json:"expected_completion"`
	RemainingSeconds   int    `json:"remaining_seconds"`
}

type PauseTimerRequest struct {
	ID string `json:"id"`
}

type PauseTimerResponse struct {
	RemainingSeconds int `json:"remaining_seconds"`
}

type GetTimerStatusRequest struct {
	ID string `json:"id"`
}

type GetTimerStatusResponse struct {
	IsActive         bool    `json:"is_active"`
	IsCompleted      bool    `json:"is_completed"`
	RemainingSeconds int     `json:"remaining_seconds"`
	PointsEarned     float64 `json:"points_earned"`
}

type CompleteTaskRequest struct {
	ID string `json:"id"`
}

type CompleteTaskResponse struct {
	PointsEarned float64 `json:"points_earned"`
	Message      string  `json:"message"`
}

type Task struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	DurationMinutes  int    `json:"duration_minutes"`
	IsCompleted      bool   `json:"is_completed"`
	IsActive         bool   `json:"is_active"`
	RemainingSeconds int    `json:"remaining_seconds"`
}
