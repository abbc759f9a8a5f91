package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrolyzer-analyzer/internal/dataset"
	"electrolyzer-analyzer/internal/fs"
	"electrolyzer-analyzer/internal/logger"
	"electrolyzer-analyzer/internal/models"
)

const exportPreamble = "#group,false,false\n#datatype,string,long\n#default,_result,\n"

func writeExportFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(exportPreamble+body), 0o644))
}

func newTestService(t *testing.T) (*DatasetService, *models.SessionRepository) {
	t.Helper()
	session := models.NewSessionRepository("")
	lister := fs.NewLister(logger.Nop{})
	loader := dataset.NewLoader(logger.Nop{}, dataset.PolicySkip)
	return NewDatasetService(lister, loader, session, logger.Nop{}), session
}

func TestScanDirectoryUpdatesSession(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "b.csv", "a,b\n1,2\n")
	writeExportFile(t, dir, "a.csv", "a,b\n3,4\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	svc, session := newTestService(t)

	files, err := svc.ScanDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, files)
	assert.Equal(t, dir, session.Directory())
	assert.Equal(t, files, session.Listing())
}

func TestScanDirectoryMissing(t *testing.T) {
	svc, session := newTestService(t)

	_, err := svc.ScanDirectory(filepath.Join(t.TempDir(), "gone"))
	require.ErrorIs(t, err, fs.ErrDirectoryNotFound)
	// A failed scan leaves the session untouched.
	assert.Equal(t, "", session.Directory())
}

func TestLoadSelectionStoresSuccessesOnly(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "good1.csv", "a,b\n1,2\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("two\nlines\n"), 0o644))
	writeExportFile(t, dir, "good2.csv", "a,b\n3,4\n5,6\n")

	svc, session := newTestService(t)
	_, err := svc.ScanDirectory(dir)
	require.NoError(t, err)

	results := svc.LoadSelection(context.Background(), []string{"good1.csv", "bad.csv", "good2.csv"}, nil)
	require.Len(t, results, 3)

	summary := Summarize(results)
	assert.Equal(t, 2, summary.Loaded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, "2 file(s) loaded, 1 failed, 3 total rows", summary.String())

	_, ok := session.Dataset("good1.csv")
	assert.True(t, ok)
	_, ok = session.Dataset("bad.csv")
	assert.False(t, ok, "failed files are not stored")

	stats := session.Stats()
	assert.Equal(t, 2, stats.DatasetCount)
	assert.Equal(t, 3, stats.TotalRows)
}

func TestLoadSelectionReloadReplaces(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "run.csv", "a,b\n1,2\n")

	svc, session := newTestService(t)
	_, err := svc.ScanDirectory(dir)
	require.NoError(t, err)

	svc.LoadSelection(context.Background(), []string{"run.csv"}, nil)
	writeExportFile(t, dir, "run.csv", "a,b\n1,2\n3,4\n5,6\n")
	svc.LoadSelection(context.Background(), []string{"run.csv"}, nil)

	ds, ok := session.Dataset("run.csv")
	require.True(t, ok)
	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, 1, session.Stats().DatasetCount)
}
