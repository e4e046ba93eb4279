package models

// Logical table names exposed through the generic table endpoint.
const (
	TableSubjects           = "subjects"
	TableDefinitions        = "definitions"
	TableDailyScores        = "daily_scores"
	TableWeeklyAverages     = "weekly_averages"
	TableMonthlyAverages    = "monthly_averages"
	TableSemiAnnualAverages = "semi_annual_averages"
)

// TableNames lists every table in a stable presentation order.
var TableNames = []string{
	TableSubjects,
	TableDefinitions,
	TableDailyScores,
	TableWeeklyAverages,
	TableMonthlyAverages,
	TableSemiAnnualAverages,
}

// KnownTable reports whether name refers to one of the six tables.
func KnownTable(name string) bool {
	for _, n := range TableNames {
		if n == name {
			return true
		}
	}
	return false
}
