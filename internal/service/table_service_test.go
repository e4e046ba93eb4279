package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/repository"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

func TestTableViewProjectsRows(t *testing.T) {
	tables := &fakeTableSource{
		columns: []string{"SubjectID", "SubjectLabel", "DateCreated"},
		rows:    [][]string{{"1", "Rex", "2026-08-01 10:00:00"}},
	}
	svc := NewTableService(tables, zap.NewNop())

	view, err := svc.View(context.Background(), models.TableSubjects)
	require.NoError(t, err)
	assert.Equal(t, models.TableSubjects, view.Name)
	assert.Equal(t, tables.columns, view.Columns)
	assert.Equal(t, tables.rows, view.Rows)
}

func TestTableViewUnknownName(t *testing.T) {
	svc := NewTableService(&fakeTableSource{err: repository.ErrUnknownTable}, zap.NewNop())

	_, err := svc.View(context.Background(), "bogus")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnknownTable.Code, appErr.Code)
}

func TestTableNamesIsStableCopy(t *testing.T) {
	svc := NewTableService(&fakeTableSource{}, zap.NewNop())

	names := svc.Names()
	require.Equal(t, models.TableNames, names)
	names[0] = "mutated"
	assert.Equal(t, models.TableSubjects, models.TableNames[0])
}
