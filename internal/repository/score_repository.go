package repository

import (
	"context"

	"github.com/beehayv/beehayv-api/internal/models"
)

// ScoreRepository manages persistence for daily score entries.
type ScoreRepository struct {
	store *Store
}

// NewScoreRepository constructs a ScoreRepository.
func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

// All returns every score row, the aggregation engine's input.
func (r *ScoreRepository) All(_ context.Context) ([]models.DailyScore, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.DailyScore(nil), r.store.scores...), nil
}

// List returns scores matching the filter with pagination, newest first.
func (r *ScoreRepository) List(_ context.Context, filter models.ScoreFilter) ([]models.DailyScore, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]models.DailyScore, 0, len(r.store.scores))
	for _, sc := range r.store.scores {
		if filter.DefinitionID != 0 && sc.DefinitionID != filter.DefinitionID {
			continue
		}
		if filter.DateFrom != nil && sc.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && sc.Date.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, sc)
	}
	total := len(matched)

	// Entries are appended chronologically by LogID; present newest first.
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 50
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return []models.DailyScore{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Create appends a score with the next sequential LogID and persists the
// daily scores table. The referenced definition must exist; the date is
// stored at day precision.
func (r *ScoreRepository) Create(_ context.Context, score *models.DailyScore) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.definitionExists(score.DefinitionID) {
		return ErrDefinitionNotFound
	}

	next := 1
	for _, sc := range r.store.scores {
		if sc.LogID >= next {
			next = sc.LogID + 1
		}
	}
	score.LogID = next

	rows := make([][]string, 0, len(r.store.scores)+1)
	for _, sc := range r.store.scores {
		rows = append(rows, encodeScore(sc))
	}
	rows = append(rows, encodeScore(*score))
	if err := r.store.persist(models.TableDailyScores, rows); err != nil {
		return err
	}

	r.store.scores = append(r.store.scores, *score)
	return nil
}
