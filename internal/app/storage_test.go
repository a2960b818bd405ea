package app

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSheetStripsBOM(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("rok,2024\n")...)
	require.NoError(t, afero.WriteFile(fsys, "sheet.csv", content, 0644))

	file, err := OpenSheet(fsys, "sheet.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "rok,2024\n", string(data))
}

func TestOpenSheetWithoutBOM(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "sheet.csv", []byte("rok,2024\n"), 0644))

	file, err := OpenSheet(fsys, "sheet.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "rok,2024\n", string(data))
}

func TestOpenSheetShortFile(t *testing.T) {
	// Shorter than a BOM
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "sheet.csv", []byte("ab"), 0644))

	file, err := OpenSheet(fsys, "sheet.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}

func TestOpenSheetMissing(t *testing.T) {
	_, err := OpenSheet(afero.NewMemMapFs(), "absent.csv")
	assert.Error(t, err)
}

func TestNewSheetCSVReaderRaggedRows(t *testing.T) {
	reader := NewSheetCSVReader(strings.NewReader("a,b,c\nd\ne,f\n"))

	widths := []int{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		widths = append(widths, len(record))
	}

	assert.Equal(t, []int{3, 1, 2}, widths)
}

func TestWriteFileAtomic(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteFileAtomic(fsys, "out.ics", []byte("BEGIN:VCALENDAR")))

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(data))

	// No temp file left behind
	exists, err := afero.Exists(fsys, "out.ics"+TmpSuffix)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "out.ics", []byte("old"), 0644))

	require.NoError(t, WriteFileAtomic(fsys, "out.ics", []byte("new")))

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileAtomicReadOnlyFs(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	assert.Error(t, WriteFileAtomic(fsys, "out.ics", []byte("data")))
}
