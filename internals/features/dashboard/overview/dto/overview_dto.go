package dto

// Slice is one labelled value of a chart.
type Slice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MonthPoint struct {
	Month        string `json:"month"` // "Oct 2026"
	Key          string `json:"key"`   // "2026-10"
	Applications int64  `json:"applications"`
}

type ApplicantStats struct {
	Total      int64        `json:"total"`
	Pending    int64        `json:"pending"`
	Approved   int64        `json:"approved"`
	Rejected   int64        `json:"rejected"`
	ByState    []Slice      `json:"by_state"`
	ByPosition []Slice      `json:"by_position"`
	Monthly    []MonthPoint `json:"monthly"`
}

type JobStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory []Slice          `json:"by_category"`
	Featured   int64            `json:"featured"`
}

type ApplicationStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type Overview struct {
	Applicants      ApplicantStats   `json:"applicants"`
	Jobs            JobStats         `json:"jobs"`
	JobApplications ApplicationStats `json:"job_applications"`
}
