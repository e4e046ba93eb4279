package dto

import "github.com/beehayv/beehayv-api/internal/models"

// SubjectOverview summarises one subject's tracked behaviors.
type SubjectOverview struct {
	SubjectID       int    `json:"subject_id"`
	SubjectLabel    string `json:"subject_label"`
	DefinitionCount int    `json:"definition_count"`
	ScoreCount      int    `json:"score_count"`
	LastScoreDate   string `json:"last_score_date,omitempty"`
}

// DashboardResponse recovers the overview the original UI rendered: entity
// counts, per-subject activity and current average-table sizes.
type DashboardResponse struct {
	SubjectCount       int                  `json:"subject_count"`
	DefinitionCount    int                  `json:"definition_count"`
	ScoreCount         int                  `json:"score_count"`
	WeeklyAverageRows  int                  `json:"weekly_average_rows"`
	MonthlyAverageRows int                  `json:"monthly_average_rows"`
	SemiAnnualRows     int                  `json:"semi_annual_average_rows"`
	Subjects           []SubjectOverview    `json:"subjects"`
	System             models.SystemMetrics `json:"system"`
}
