package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrolyzer-analyzer/internal/logger"
)

const testPreamble = "#group,false,false\n#datatype,string,long\n#default,_result,\n"

// writeExport writes a file with the standard 3-line metadata preamble
// followed by the given body lines.
func writeExport(t *testing.T, dir, name string, bodyLines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := testPreamble + strings.Join(bodyLines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileWellFormed(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "run.csv",
		"a, b ,c",
		"1,2,3",
		`"x,y", 4 ,5`,
	)

	loader := NewLoader(logger.Nop{}, PolicySkip)
	ds, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "run.csv", ds.Name)
	// Header cells are trimmed, data values are kept verbatim.
	assert.Equal(t, []string{"a", "b", "c"}, ds.Columns)
	require.Equal(t, 2, ds.NumRows())
	assert.Equal(t, []string{"1", "2", "3"}, ds.Rows[0])
	assert.Equal(t, []string{"x,y", " 4 ", "5"}, ds.Rows[1])
	assert.Equal(t, 0, ds.SkippedRows)
}

func TestLoadFileHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "empty.csv", "time,current,voltage")

	loader := NewLoader(logger.Nop{}, PolicySkip)
	ds, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "current", "voltage"}, ds.Columns)
	assert.Equal(t, 0, ds.NumRows())
}

func TestLoadFileTooFewLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("#group,false\n#datatype,string\n"), 0o644))

	loader := NewLoader(logger.Nop{}, PolicySkip)
	_, err := loader.LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidFileFormat)
	assert.Contains(t, err.Error(), "fewer than 4 lines")
}

func TestLoadFilePreambleOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nometa.csv")
	require.NoError(t, os.WriteFile(path, []byte(testPreamble+"\n  \n"), 0o644))

	loader := NewLoader(logger.Nop{}, PolicySkip)
	_, err := loader.LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidFileFormat)
}

func TestLoadFileBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.csv")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 'a', 'b'}, 0o644))

	loader := NewLoader(logger.Nop{}, PolicySkip)
	_, err := loader.LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidFileFormat)
	assert.Contains(t, err.Error(), "binary")
}

func TestLoadFileInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.csv")
	content := append([]byte(testPreamble+"a,b\n"), 0xFF, 0xFE, '\n')
	require.NoError(t, os.WriteFile(path, content, 0o644))

	loader := NewLoader(logger.Nop{}, PolicySkip)
	_, err := loader.LoadFile(path)
	require.ErrorIs(t, err, ErrInvalidFileFormat)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestLoadFileMissing(t *testing.T) {
	loader := NewLoader(logger.Nop{}, PolicySkip)
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileSkipPolicyCountsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "ragged.csv",
		"a,b,c",
		"1,2,3",
		"4,5",
		"6,7,8,9",
		"10,11,12",
	)

	loader := NewLoader(logger.Nop{}, PolicySkip)
	ds, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NumRows())
	assert.Equal(t, 2, ds.SkippedRows)
	assert.Equal(t, []string{"1", "2", "3"}, ds.Rows[0])
	assert.Equal(t, []string{"10", "11", "12"}, ds.Rows[1])
}

func TestLoadFileStrictPolicyReportsLine(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "ragged.csv",
		"a,b,c",
		"1,2,3",
		"4,5",
	)

	loader := NewLoader(logger.Nop{}, PolicyStrict)
	_, err := loader.LoadFile(path)
	require.Error(t, err)

	var rowErr *RowParseError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "ragged.csv", rowErr.File)
	// Preamble (3) + header (1) + one good row (1) put the bad row on
	// physical line 6.
	assert.Equal(t, 6, rowErr.Line)
}

func TestLoadBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good1 := writeExport(t, dir, "one.csv", "a,b", "1,2")
	bad := filepath.Join(dir, "two.csv")
	require.NoError(t, os.WriteFile(bad, []byte("only\ntwo lines\n"), 0o644))
	good2 := writeExport(t, dir, "three.csv", "a,b", "3,4", "5,6")

	var calls []int
	progress := func(done, total int, file string) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	}

	loader := NewLoader(logger.Nop{}, PolicySkip)
	results := loader.LoadBatch(context.Background(), []string{good1, bad, good2}, progress)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Dataset.NumRows())
	assert.ErrorIs(t, results[1].Err, ErrInvalidFileFormat)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].Dataset.NumRows())
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestLoadBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "one.csv", "a,b", "1,2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(logger.Nop{}, PolicySkip)
	results := loader.LoadBatch(ctx, []string{path, path}, nil)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Nil(t, res.Dataset)
	}
}

func TestParseRowPolicy(t *testing.T) {
	assert.Equal(t, PolicyStrict, ParseRowPolicy("strict"))
	assert.Equal(t, PolicyStrict, ParseRowPolicy("STRICT"))
	assert.Equal(t, PolicySkip, ParseRowPolicy("skip"))
	assert.Equal(t, PolicySkip, ParseRowPolicy(""))
	assert.Equal(t, "skip", PolicySkip.String())
	assert.Equal(t, "strict", PolicyStrict.String())
}
