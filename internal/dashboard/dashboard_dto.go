package dashboard

import "time"

type Breakdown struct {
	Present int64 `json:"present"`
	Late    int64 `json:"late"`
	Absent  int64 `json:"absent"`
	Total   int64 `json:"total"`
}

type DayAttendance struct {
	Date       string `json:"date"`
	Day        string `json:"day"`
	Percentage int    `json:"percentage"`
}

type StatsResponse struct {
	TotalEmployees       int64           `json:"total_employees"`
	PendingLeaves        int64           `json:"pending_leaves"`
	AttendancePercentage int             `json:"attendance_percentage"`
	ActivePenalties      int64           `json:"active_penalties"`
	Breakdown            Breakdown       `json:"breakdown"`
	History              []DayAttendance `json:"history"`
}

const (
	ActivityLeave      = "leave"
	ActivityAttendance = "attendance"
)

type ActivityItem struct {
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}
