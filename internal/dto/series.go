package dto

// SeriesPoint is one chart-ready bucket for a definition's progress line.
// Points are returned in chronological bucket order.
type SeriesPoint struct {
	PeriodLabel  string  `json:"period_label"`
	AverageScore float64 `json:"average_score"`
	DataPoints   int     `json:"data_points"`
}

// SeriesResponse wraps a progress line for one behavior definition.
type SeriesResponse struct {
	DefinitionID int           `json:"definition_id"`
	Period       string        `json:"period"`
	Points       []SeriesPoint `json:"points"`
}
