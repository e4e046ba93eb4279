package repository

import (
	"context"
	"strings"
	"time"

	"github.com/beehayv/beehayv-api/internal/models"
)

// SubjectRepository manages persistence for subject records.
type SubjectRepository struct {
	store *Store
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(store *Store) *SubjectRepository {
	return &SubjectRepository{store: store}
}

// List returns a snapshot of all subjects in insertion order.
func (r *SubjectRepository) List(_ context.Context) ([]models.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.Subject(nil), r.store.subjects...), nil
}

// FindByID returns a single subject.
func (r *SubjectRepository) FindByID(_ context.Context, id int) (*models.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.subjects {
		if s.SubjectID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, ErrSubjectNotFound
}

// Create appends a subject with the next sequential ID and a creation
// timestamp, then persists the subjects table. The label must already be
// trimmed; uniqueness is case-insensitive.
func (r *SubjectRepository) Create(_ context.Context, label string) (*models.Subject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lower := strings.ToLower(label)
	for _, s := range r.store.subjects {
		if strings.ToLower(s.SubjectLabel) == lower {
			return nil, ErrDuplicateLabel
		}
	}

	subject := models.Subject{
		SubjectID:    nextSubjectID(r.store.subjects),
		SubjectLabel: label,
		DateCreated:  r.store.clock().Truncate(time.Second),
	}

	rows := make([][]string, 0, len(r.store.subjects)+1)
	for _, s := range r.store.subjects {
		rows = append(rows, encodeSubject(s))
	}
	rows = append(rows, encodeSubject(subject))
	if err := r.store.persist(models.TableSubjects, rows); err != nil {
		return nil, err
	}

	r.store.subjects = append(r.store.subjects, subject)
	return &subject, nil
}

// nextSubjectID is max(existing)+1 so IDs are never reused even if files were
// edited by hand.
func nextSubjectID(subjects []models.Subject) int {
	next := 1
	for _, s := range subjects {
		if s.SubjectID >= next {
			next = s.SubjectID + 1
		}
	}
	return next
}
