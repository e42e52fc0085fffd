package admin

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLastAdmin    = errors.New("cannot remove the last admin")
)

type ListUsersQuery struct {
	Search string
	Role   string
	Status string
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active banned"`
}

// DayCount is one bucket of a daily time series.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TrendBucket is a DayCount with per-option breakdowns.
type TrendBucket struct {
	Date     string           `json:"date"`
	Count    int64            `json:"count"`
	ByStyle  map[string]int64 `json:"byStyle"`
	ByLength map[string]int64 `json:"byLength"`
}

type UserStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Banned   int64 `json:"banned"`
	Verified int64 `json:"verified"`
}

type SummaryStats struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"byType"`
}

// Metrics is the admin dashboard snapshot.
type Metrics struct {
	Users     UserStats    `json:"users"`
	Summaries SummaryStats `json:"summaries"`
	Last7Days []DayCount   `json:"last7Days"`
}
