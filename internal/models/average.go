package models

// AveragePeriod selects one of the three aggregation granularities.
type AveragePeriod string

const (
	PeriodWeekly     AveragePeriod = "weekly"
	PeriodMonthly    AveragePeriod = "monthly"
	PeriodSemiAnnual AveragePeriod = "semi-annual"
)

// Valid reports whether the period is one of the supported granularities.
func (p AveragePeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodSemiAnnual:
		return true
	default:
		return false
	}
}

// WeeklyAverage is the mean score for one (definition, ISO week) bucket.
// Year and WeekOfYear follow ISO-8601 week numbering, so dates near a year
// boundary may land in the adjacent year's week 1 or week 52/53.
type WeeklyAverage struct {
	AverageID       int     `json:"average_id"`
	DefinitionID    int     `json:"definition_id"`
	Year            int     `json:"year"`
	WeekOfYear      int     `json:"week_of_year"`
	AverageScore    float64 `json:"average_score"`
	DataPointsCount int     `json:"data_points_count"`
}

// MonthlyAverage is the mean score for one (definition, calendar month) bucket.
type MonthlyAverage struct {
	AverageID       int     `json:"average_id"`
	DefinitionID    int     `json:"definition_id"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	AverageScore    float64 `json:"average_score"`
	DataPointsCount int     `json:"data_points_count"`
}

// SemiAnnualAverage is the mean score for one (definition, half-year) bucket.
// Months 1-6 map to half 1, months 7-12 to half 2.
type SemiAnnualAverage struct {
	AverageID       int     `json:"average_id"`
	DefinitionID    int     `json:"definition_id"`
	Year            int     `json:"year"`
	Half            int     `json:"half"`
	AverageScore    float64 `json:"average_score"`
	DataPointsCount int     `json:"data_points_count"`
}
