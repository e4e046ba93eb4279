// Package tabular implements the delimited flat-file table layout: one CSV
// file per table with a fixed header row, created header-only when absent and
// overwritten wholesale on every save.
package tabular

import (
	"github.com/beehayv/beehayv-api/internal/models"
)

// Schema describes one persisted table: its logical name, the file it lives
// in, and the exact header columns.
type Schema struct {
	Name    string
	File    string
	Columns []string
}

// Schemas lists every table in load order. File names match the original
// storage layout so an existing data directory keeps working.
var Schemas = []Schema{
	{
		Name:    models.TableSubjects,
		File:    "subjects.csv",
		Columns: []string{"SubjectID", "SubjectLabel", "DateCreated"},
	},
	{
		Name:    models.TableDefinitions,
		File:    "behavior_definitions.csv",
		Columns: []string{"DefinitionID", "SubjectID", "BehaviorName", "Description"},
	},
	{
		Name:    models.TableDailyScores,
		File:    "daily_scores_log.csv",
		Columns: []string{"LogID", "DefinitionID", "Date", "Score", "Notes"},
	},
	{
		Name:    models.TableWeeklyAverages,
		File:    "weekly_averages.csv",
		Columns: []string{"AverageID", "DefinitionID", "Year", "WeekOfYear", "AverageScore", "DataPointsCount"},
	},
	{
		Name:    models.TableMonthlyAverages,
		File:    "monthly_averages.csv",
		Columns: []string{"AverageID", "DefinitionID", "Year", "Month", "AverageScore", "DataPointsCount"},
	},
	{
		Name:    models.TableSemiAnnualAverages,
		File:    "semi_annual_averages.csv",
		Columns: []string{"AverageID", "DefinitionID", "Year", "Half", "AverageScore", "DataPointsCount"},
	},
}

// SchemaFor returns the schema for a logical table name.
func SchemaFor(name string) (Schema, bool) {
	for _, s := range Schemas {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}
