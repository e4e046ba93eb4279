package models

import "time"

// ScoreMin and ScoreMax bound a daily rating.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// DateFormat is the canonical calendar-date layout for persisted scores.
const DateFormat = "2006-01-02"

// DailyScore is one dated 1-10 rating for a behavior definition. Multiple
// entries per (definition, date) pair are permitted.
type DailyScore struct {
	LogID        int       `json:"log_id"`
	DefinitionID int       `json:"definition_id"`
	Date         time.Time `json:"date"`
	Score        int       `json:"score"`
	Notes        string    `json:"notes"`
}

// ScoreFilter narrows score listings.
type ScoreFilter struct {
	DefinitionID int
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
}
