package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/dto"
	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/repository"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

type tableSource interface {
	View(ctx context.Context, name string) ([]string, [][]string, error)
}

// TableService exposes raw table projections for inspection, the equivalent
// of opening one of the data files directly.
type TableService struct {
	repo   tableSource
	logger *zap.Logger
}

// NewTableService creates a new table service.
func NewTableService(repo tableSource, logger *zap.Logger) *TableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TableService{repo: repo, logger: logger}
}

// View returns the named table exactly as persisted.
func (s *TableService) View(ctx context.Context, name string) (*dto.TableView, error) {
	if !models.KnownTable(name) {
		return nil, unknownTableError()
	}

	columns, rows, err := s.repo.View(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownTable) {
			return nil, unknownTableError()
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read table")
	}
	return &dto.TableView{Name: name, Columns: columns, Rows: rows}, nil
}

func unknownTableError() *appErrors.Error {
	message := "unknown table, expected one of: " + strings.Join(models.TableNames, ", ")
	return appErrors.Clone(appErrors.ErrUnknownTable, message)
}

// Names lists every table that can be viewed or exported.
func (s *TableService) Names() []string {
	names := make([]string, len(models.TableNames))
	copy(names, models.TableNames)
	return names
}
