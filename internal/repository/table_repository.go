package repository

import (
	"context"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/tabular"
)

// TableRepository exposes read-only string views of any of the six tables,
// encoded exactly as they are persisted. The presentation layer renders these
// without further formatting.
type TableRepository struct {
	store *Store
}

// NewTableRepository constructs a TableRepository.
func NewTableRepository(store *Store) *TableRepository {
	return &TableRepository{store: store}
}

// View returns the header columns and current rows of the named table.
func (r *TableRepository) View(_ context.Context, name string) ([]string, [][]string, error) {
	schema, ok := tabular.SchemaFor(name)
	if !ok {
		return nil, nil, ErrUnknownTable
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rows [][]string
	switch name {
	case models.TableSubjects:
		for _, s := range r.store.subjects {
			rows = append(rows, encodeSubject(s))
		}
	case models.TableDefinitions:
		for _, d := range r.store.definitions {
			rows = append(rows, encodeDefinition(d))
		}
	case models.TableDailyScores:
		for _, sc := range r.store.scores {
			rows = append(rows, encodeScore(sc))
		}
	case models.TableWeeklyAverages:
		for _, a := range r.store.weekly {
			rows = append(rows, encodeWeekly(a))
		}
	case models.TableMonthlyAverages:
		for _, a := range r.store.monthly {
			rows = append(rows, encodeMonthly(a))
		}
	case models.TableSemiAnnualAverages:
		for _, a := range r.store.semiAnnual {
			rows = append(rows, encodeSemiAnnual(a))
		}
	}
	return append([]string(nil), schema.Columns...), rows, nil
}
