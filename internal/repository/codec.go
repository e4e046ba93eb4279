package repository

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beehayv/beehayv-api/internal/models"
)

// timestampFormat matches the original storage layout for DateCreated.
const timestampFormat = "2006-01-02 15:04:05"

func encodeSubject(s models.Subject) []string {
	return []string{
		strconv.Itoa(s.SubjectID),
		s.SubjectLabel,
		s.DateCreated.Format(timestampFormat),
	}
}

func decodeSubjects(rows [][]string) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("subjects row %d: bad SubjectID %q", i+1, row[0])
		}
		created, err := time.Parse(timestampFormat, row[2])
		if err != nil {
			return nil, fmt.Errorf("subjects row %d: bad DateCreated %q", i+1, row[2])
		}
		out = append(out, models.Subject{SubjectID: id, SubjectLabel: row[1], DateCreated: created})
	}
	return out, nil
}

func encodeDefinition(d models.BehaviorDefinition) []string {
	return []string{
		strconv.Itoa(d.DefinitionID),
		strconv.Itoa(d.SubjectID),
		d.BehaviorName,
		d.Description,
	}
}

func decodeDefinitions(rows [][]string) ([]models.BehaviorDefinition, error) {
	out := make([]models.BehaviorDefinition, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("definitions row %d: bad DefinitionID %q", i+1, row[0])
		}
		subjectID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("definitions row %d: bad SubjectID %q", i+1, row[1])
		}
		out = append(out, models.BehaviorDefinition{
			DefinitionID: id,
			SubjectID:    subjectID,
			BehaviorName: row[2],
			Description:  row[3],
		})
	}
	return out, nil
}

func encodeScore(sc models.DailyScore) []string {
	return []string{
		strconv.Itoa(sc.LogID),
		strconv.Itoa(sc.DefinitionID),
		sc.Date.Format(models.DateFormat),
		strconv.Itoa(sc.Score),
		sc.Notes,
	}
}

func decodeScores(rows [][]string) ([]models.DailyScore, error) {
	out := make([]models.DailyScore, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("daily_scores row %d: bad LogID %q", i+1, row[0])
		}
		defID, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("daily_scores row %d: bad DefinitionID %q", i+1, row[1])
		}
		date, err := time.Parse(models.DateFormat, row[2])
		if err != nil {
			return nil, fmt.Errorf("daily_scores row %d: bad Date %q", i+1, row[2])
		}
		score, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("daily_scores row %d: bad Score %q", i+1, row[3])
		}
		out = append(out, models.DailyScore{
			LogID:        id,
			DefinitionID: defID,
			Date:         date,
			Score:        score,
			Notes:        row[4],
		})
	}
	return out, nil
}

func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeWeekly(a models.WeeklyAverage) []string {
	return []string{
		strconv.Itoa(a.AverageID),
		strconv.Itoa(a.DefinitionID),
		strconv.Itoa(a.Year),
		strconv.Itoa(a.WeekOfYear),
		formatAverage(a.AverageScore),
		strconv.Itoa(a.DataPointsCount),
	}
}

func decodeWeekly(rows [][]string) ([]models.WeeklyAverage, error) {
	out := make([]models.WeeklyAverage, 0, len(rows))
	for i, row := range rows {
		vals, score, err := decodeAverageRow("weekly_averages", i, row)
		if err != nil {
			return nil, err
		}
		out = append(out, models.WeeklyAverage{
			AverageID:       vals[0],
			DefinitionID:    vals[1],
			Year:            vals[2],
			WeekOfYear:      vals[3],
			AverageScore:    score,
			DataPointsCount: vals[4],
		})
	}
	return out, nil
}

func encodeMonthly(a models.MonthlyAverage) []string {
	return []string{
		strconv.Itoa(a.AverageID),
		strconv.Itoa(a.DefinitionID),
		strconv.Itoa(a.Year),
		strconv.Itoa(a.Month),
		formatAverage(a.AverageScore),
		strconv.Itoa(a.DataPointsCount),
	}
}

func decodeMonthly(rows [][]string) ([]models.MonthlyAverage, error) {
	out := make([]models.MonthlyAverage, 0, len(rows))
	for i, row := range rows {
		vals, score, err := decodeAverageRow("monthly_averages", i, row)
		if err != nil {
			return nil, err
		}
		out = append(out, models.MonthlyAverage{
			AverageID:       vals[0],
			DefinitionID:    vals[1],
			Year:            vals[2],
			Month:           vals[3],
			AverageScore:    score,
			DataPointsCount: vals[4],
		})
	}
	return out, nil
}

func encodeSemiAnnual(a models.SemiAnnualAverage) []string {
	return []string{
		strconv.Itoa(a.AverageID),
		strconv.Itoa(a.DefinitionID),
		strconv.Itoa(a.Year),
		strconv.Itoa(a.Half),
		formatAverage(a.AverageScore),
		strconv.Itoa(a.DataPointsCount),
	}
}

func decodeSemiAnnual(rows [][]string) ([]models.SemiAnnualAverage, error) {
	out := make([]models.SemiAnnualAverage, 0, len(rows))
	for i, row := range rows {
		vals, score, err := decodeAverageRow("semi_annual_averages", i, row)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SemiAnnualAverage{
			AverageID:       vals[0],
			DefinitionID:    vals[1],
			Year:            vals[2],
			Half:            vals[3],
			AverageScore:    score,
			DataPointsCount: vals[4],
		})
	}
	return out, nil
}

// decodeAverageRow parses the shared average-table layout: four integer
// columns around one float column, returned as [id, defID, year, bucket,
// count] plus the score.
func decodeAverageRow(table string, i int, row []string) ([5]int, float64, error) {
	var vals [5]int
	intCols := []int{0, 1, 2, 3, 5}
	for n, col := range intCols {
		v, err := strconv.Atoi(row[col])
		if err != nil {
			return vals, 0, fmt.Errorf("%s row %d: bad integer %q in column %d", table, i+1, row[col], col)
		}
		vals[n] = v
	}
	score, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return vals, 0, fmt.Errorf("%s row %d: bad AverageScore %q", table, i+1, row[4])
	}
	return vals, score, nil
}
