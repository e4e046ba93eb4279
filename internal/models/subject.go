package models

import "time"

// Subject is a tracked entity (a person or pet) that behaviors belong to.
// Subjects are append-only: they are never mutated or deleted, and their
// labels are unique under case-insensitive comparison.
type Subject struct {
	SubjectID    int       `json:"subject_id"`
	SubjectLabel string    `json:"subject_label"`
	DateCreated  time.Time `json:"date_created"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
