package repository

import (
	"context"

	"github.com/beehayv/beehayv-api/internal/models"
)

// DefinitionRepository manages persistence for behavior definitions.
type DefinitionRepository struct {
	store *Store
}

// NewDefinitionRepository constructs a DefinitionRepository.
func NewDefinitionRepository(store *Store) *DefinitionRepository {
	return &DefinitionRepository{store: store}
}

// List returns definitions, optionally narrowed to one subject.
func (r *DefinitionRepository) List(_ context.Context, filter models.DefinitionFilter) ([]models.BehaviorDefinition, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]models.BehaviorDefinition, 0, len(r.store.definitions))
	for _, d := range r.store.definitions {
		if filter.SubjectID != 0 && d.SubjectID != filter.SubjectID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// FindByID returns a single definition.
func (r *DefinitionRepository) FindByID(_ context.Context, id int) (*models.BehaviorDefinition, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.definitions {
		if d.DefinitionID == id {
			copied := d
			return &copied, nil
		}
	}
	return nil, ErrDefinitionNotFound
}

// Create appends a definition with the next sequential ID and persists the
// definitions table. The referenced subject must exist.
func (r *DefinitionRepository) Create(_ context.Context, def *models.BehaviorDefinition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.subjectExists(def.SubjectID) {
		return ErrSubjectNotFound
	}

	next := 1
	for _, d := range r.store.definitions {
		if d.DefinitionID >= next {
			next = d.DefinitionID + 1
		}
	}
	def.DefinitionID = next

	rows := make([][]string, 0, len(r.store.definitions)+1)
	for _, d := range r.store.definitions {
		rows = append(rows, encodeDefinition(d))
	}
	rows = append(rows, encodeDefinition(*def))
	if err := r.store.persist(models.TableDefinitions, rows); err != nil {
		return err
	}

	r.store.definitions = append(r.store.definitions, *def)
	return nil
}
