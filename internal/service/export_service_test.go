package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/repository"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
	"github.com/beehayv/beehayv-api/pkg/storage"
)

type fakeTableSource struct {
	columns []string
	rows    [][]string
	err     error
}

func (f *fakeTableSource) View(context.Context, string) ([]string, [][]string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.columns, f.rows, nil
}

func newExportService(t *testing.T, tables tableSource) *ExportService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(tables, files, signer, ExportConfig{APIPrefix: "/api/v1"}, nil, zap.NewNop(), nil, nil)
}

func TestExportGenerateCSV(t *testing.T) {
	tables := &fakeTableSource{
		columns: []string{"SubjectID", "SubjectLabel", "DateCreated"},
		rows: [][]string{
			{"1", "Rex", "2026-08-01 10:00:00"},
			{"2", "Milo", "2026-08-02 11:30:00"},
		},
	}
	svc := newExportService(t, tables)

	result, err := svc.Generate(context.Background(), ExportRequest{Table: "subjects", Format: "csv"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ExportID)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/export/"))
	assert.True(t, strings.HasSuffix(result.RelativePath, ".csv"))

	exportID, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, result.ExportID, exportID)
	assert.Equal(t, result.RelativePath, relPath)

	file, err := svc.Open(relPath)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "SubjectID,SubjectLabel,DateCreated")
	assert.Contains(t, text, "1,Rex,2026-08-01 10:00:00")
}

func TestExportGeneratePDF(t *testing.T) {
	tables := &fakeTableSource{
		columns: []string{"AverageID", "DefinitionID", "Year", "Month", "AverageScore", "DataPointsCount"},
		rows:    [][]string{{"1", "1", "2024", "1", "5", "2"}},
	}
	svc := newExportService(t, tables)

	result, err := svc.Generate(context.Background(), ExportRequest{Table: "monthly_averages", Format: "pdf"})
	require.NoError(t, err)

	file, err := svc.Open(result.RelativePath)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	header := make([]byte, 4)
	_, err = io.ReadFull(file, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(header))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newExportService(t, &fakeTableSource{columns: []string{"A"}})

	_, err := svc.Generate(context.Background(), ExportRequest{Table: "subjects", Format: "xlsx"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportMapsUnknownTable(t *testing.T) {
	svc := newExportService(t, &fakeTableSource{err: repository.ErrUnknownTable})

	_, err := svc.Generate(context.Background(), ExportRequest{Table: "nope", Format: "csv"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnknownTable.Code, appErr.Code)
}

func TestExportTokenTamperRejected(t *testing.T) {
	svc := newExportService(t, &fakeTableSource{columns: []string{"A"}, rows: [][]string{{"1"}}})

	result, err := svc.Generate(context.Background(), ExportRequest{Table: "subjects", Format: "csv"})
	require.NoError(t, err)

	_, _, _, err = svc.ParseToken(result.Token+"0", false)
	require.Error(t, err)
}
