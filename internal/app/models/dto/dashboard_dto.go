package dto

// DashboardResponse aggregates the administrator landing-page counters.
// Served from cache with a short TTL.
type DashboardResponse struct {
	Students         int64   `json:"students"`
	Faculty          int64   `json:"faculty"`
	Departments      int64   `json:"departments"`
	Programs         int64   `json:"programs"`
	ActiveCourses    int64   `json:"activeCourses"`
	UpcomingExams    int64   `json:"upcomingExams"`
	PendingResults   int64   `json:"pendingResults"`
	FeeCollected     float64 `json:"feeCollected"`
	FeeOutstanding   float64 `json:"feeOutstanding"`
	BooksIssued      int64   `json:"booksIssued"`
	OverdueBooks     int64   `json:"overdueBooks"`
	HostelOccupancy  float64 `json:"hostelOccupancy" example:"87.5"`
	OpenDiscipline   int64   `json:"openDiscipline"`
}
