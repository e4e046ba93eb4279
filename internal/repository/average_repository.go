package repository

import (
	"context"

	"github.com/beehayv/beehayv-api/internal/models"
)

// AverageRepository manages the three derived average tables. They hold no
// independent state: each recomputation replaces a table wholesale, in memory
// and on disk.
type AverageRepository struct {
	store *Store
}

// NewAverageRepository constructs an AverageRepository.
func NewAverageRepository(store *Store) *AverageRepository {
	return &AverageRepository{store: store}
}

// Weekly returns a snapshot of the weekly averages table.
func (r *AverageRepository) Weekly(_ context.Context) ([]models.WeeklyAverage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.WeeklyAverage(nil), r.store.weekly...), nil
}

// Monthly returns a snapshot of the monthly averages table.
func (r *AverageRepository) Monthly(_ context.Context) ([]models.MonthlyAverage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.MonthlyAverage(nil), r.store.monthly...), nil
}

// SemiAnnual returns a snapshot of the semi-annual averages table.
func (r *AverageRepository) SemiAnnual(_ context.Context) ([]models.SemiAnnualAverage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]models.SemiAnnualAverage(nil), r.store.semiAnnual...), nil
}

// ReplaceWeekly swaps in a freshly computed weekly table and persists it.
func (r *AverageRepository) ReplaceWeekly(_ context.Context, averages []models.WeeklyAverage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, encodeWeekly(a))
	}
	if err := r.store.persist(models.TableWeeklyAverages, rows); err != nil {
		return err
	}
	r.store.weekly = append([]models.WeeklyAverage(nil), averages...)
	return nil
}

// ReplaceMonthly swaps in a freshly computed monthly table and persists it.
func (r *AverageRepository) ReplaceMonthly(_ context.Context, averages []models.MonthlyAverage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, encodeMonthly(a))
	}
	if err := r.store.persist(models.TableMonthlyAverages, rows); err != nil {
		return err
	}
	r.store.monthly = append([]models.MonthlyAverage(nil), averages...)
	return nil
}

// ReplaceSemiAnnual swaps in a freshly computed semi-annual table and persists it.
func (r *AverageRepository) ReplaceSemiAnnual(_ context.Context, averages []models.SemiAnnualAverage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, encodeSemiAnnual(a))
	}
	if err := r.store.persist(models.TableSemiAnnualAverages, rows); err != nil {
		return err
	}
	r.store.semiAnnual = append([]models.SemiAnnualAverage(nil), averages...)
	return nil
}
