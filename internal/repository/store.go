package repository

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/tabular"
)

// Sentinel errors surfaced by repositories; services map them onto typed
// application errors.
var (
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrDefinitionNotFound = errors.New("definition not found")
	ErrDuplicateLabel     = errors.New("subject label already exists")
	ErrUnknownTable       = errors.New("unknown table")
)

// Store holds every table in memory and persists the mutated table wholesale
// after each successful write. One Store is constructed at process start; it
// is the single owner of the data directory for this process. Two processes
// sharing a data directory can race and corrupt files; the flat-file layout
// has no locking.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
	clock  func() time.Time

	subjects    []models.Subject
	definitions []models.BehaviorDefinition
	scores      []models.DailyScore
	weekly      []models.WeeklyAverage
	monthly     []models.MonthlyAverage
	semiAnnual  []models.SemiAnnualAverage
}

// Open creates missing table files, loads all six tables into memory and
// returns the store. Any storage-level failure here is fatal for the caller.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := tabular.Init(dir); err != nil {
		return nil, err
	}

	s := &Store{dir: dir, logger: logger, clock: time.Now}
	loaders := []func() error{
		s.loadSubjects,
		s.loadDefinitions,
		s.loadScores,
		s.loadWeekly,
		s.loadMonthly,
		s.loadSemiAnnual,
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return nil, err
		}
	}

	logger.Info("store loaded",
		zap.String("dir", dir),
		zap.Int("subjects", len(s.subjects)),
		zap.Int("definitions", len(s.definitions)),
		zap.Int("scores", len(s.scores)))
	return s, nil
}

// SetClock overrides the timestamp source, used by tests.
func (s *Store) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

func (s *Store) loadSubjects() error {
	rows, err := s.read(models.TableSubjects)
	if err != nil {
		return err
	}
	s.subjects, err = decodeSubjects(rows)
	return err
}

func (s *Store) loadDefinitions() error {
	rows, err := s.read(models.TableDefinitions)
	if err != nil {
		return err
	}
	s.definitions, err = decodeDefinitions(rows)
	return err
}

func (s *Store) loadScores() error {
	rows, err := s.read(models.TableDailyScores)
	if err != nil {
		return err
	}
	s.scores, err = decodeScores(rows)
	return err
}

func (s *Store) loadWeekly() error {
	rows, err := s.read(models.TableWeeklyAverages)
	if err != nil {
		return err
	}
	s.weekly, err = decodeWeekly(rows)
	return err
}

func (s *Store) loadMonthly() error {
	rows, err := s.read(models.TableMonthlyAverages)
	if err != nil {
		return err
	}
	s.monthly, err = decodeMonthly(rows)
	return err
}

func (s *Store) loadSemiAnnual() error {
	rows, err := s.read(models.TableSemiAnnualAverages)
	if err != nil {
		return err
	}
	s.semiAnnual, err = decodeSemiAnnual(rows)
	return err
}

func (s *Store) read(table string) ([][]string, error) {
	schema, ok := tabular.SchemaFor(table)
	if !ok {
		return nil, ErrUnknownTable
	}
	return tabular.Read(s.dir, schema)
}

// persist writes one table back to disk. Callers hold s.mu.
func (s *Store) persist(table string, rows [][]string) error {
	schema, ok := tabular.SchemaFor(table)
	if !ok {
		return ErrUnknownTable
	}
	if err := tabular.Write(s.dir, schema, rows); err != nil {
		s.logger.Error("persist table failed", zap.String("table", table), zap.Error(err))
		return err
	}
	s.logger.Debug("table persisted", zap.String("table", table), zap.Int("rows", len(rows)))
	return nil
}

func (s *Store) subjectExists(id int) bool {
	for _, sub := range s.subjects {
		if sub.SubjectID == id {
			return true
		}
	}
	return false
}

func (s *Store) definitionExists(id int) bool {
	for _, def := range s.definitions {
		if def.DefinitionID == id {
			return true
		}
	}
	return false
}
