package models

// ProjectSummary is the list-view projection of a project; it omits the
// description, skills and link.
type ProjectSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	Media     []string `json:"media"`
}

// ProfessionalSummary is the list-view projection of a professional entry.
type ProfessionalSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	Media     []string `json:"media"`
}

// SlideSummary is the list-view projection of a slide.
type SlideSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Media []string `json:"media"`
}
