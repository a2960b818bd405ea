package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/harmonogram/internal/schedule"
)

// testSheet mirrors the layout of the real PUK exports: a year row, a
// names row with one name per column group, day rules per month, an
// empty terminator and the override section.
const testSheet = `rok,2024
dzień,Zmieszane,,,Metale i tworzywa,,,Papier,,,Szkło,,,Bio,,,Gabaryty,,,Choinki
3,15,,,4,,,sobota,,,11,,,czwartek,,,20,,,
4,poniedziałek,,,2,,,,,,9,,,,,,18,,,
,
dzień,za
24/12,23/12
`

// March 2024 has 5 Saturdays and 4 Thursdays, April 2024 has 5 Mondays.
const testSheetEvents = 21

const tinySheet = `rok,2024
dzień,Zmieszane
3,15
`

func writeSheet(t *testing.T, content string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "sheet.csv", []byte(content), 0644))
	return fsys
}

func TestConvertICS(t *testing.T) {
	fsys := writeSheet(t, testSheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), testSheetEvents)

	body := string(data)
	assert.Contains(t, body, "X-WR-CALNAME:Harmonogram wywozu odpadów 2024")
	assert.Contains(t, body, "SUMMARY:Zmieszane")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240315")
	assert.NotContains(t, body, "BEGIN:VALARM")
}

func TestConvertCSVKeepsSheetOrder(t *testing.T) {
	fsys := writeSheet(t, testSheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.csv",
		Format:     FormatCSV,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, testSheetEvents+1)

	assert.Equal(t, "Data,Rodzaj,Opis", lines[0])

	// Events come out in the order their rules appear in the sheet
	assert.Equal(t, "2024-03-15,zmieszane,Zmieszane", lines[1])
	assert.Equal(t, "2024-03-04,metale_tworzywa,Metale i tworzywa", lines[2])
	assert.Equal(t, "2024-03-02,papier,Papier", lines[3])
}

func TestConvertJSON(t *testing.T) {
	fsys := writeSheet(t, testSheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.json",
		Format:     FormatJSON,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.json")
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"year": 2024`)
	assert.Contains(t, body, `"type": "zmieszane"`)
}

func TestConvertAppliesOverride(t *testing.T) {
	sheet := `rok,2024
dzień,Zmieszane
12,24
,
dzień,za
24/12,23/12
`
	fsys := writeSheet(t, sheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20241223")
	assert.NotContains(t, body, "DTSTART;VALUE=DATE:20241224")
}

func TestConvertRemindersAndCalendarName(t *testing.T) {
	fsys := writeSheet(t, tinySheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:    "sheet.csv",
		OutputPath:   "out.ics",
		Format:       FormatICS,
		CalendarName: "Mój harmonogram",
		Reminders:    mustReminders(t, "18h"),
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "X-WR-CALNAME:Mój harmonogram 2024")
	assert.Contains(t, body, "BEGIN:VALARM")
	assert.Contains(t, body, "TRIGGER:-P0DT18H0M")
}

func TestConvertBOMSheet(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(tinySheet)...)
	require.NoError(t, afero.WriteFile(fsys, "sheet.csv", content, 0644))

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out.ics")
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20240315")
}

func TestConvertUnnamedTypeWritesNothing(t *testing.T) {
	// The second rule column group belongs to a type the names row
	// never named, so the whole conversion fails.
	sheet := `rok,2024
dzień,Zmieszane
3,15,,,4
`
	fsys := writeSheet(t, sheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrUnnamedType)

	assertNoOutput(t, fsys, "out.ics")
}

func TestConvertParseErrorWritesNothing(t *testing.T) {
	fsys := writeSheet(t, "zła wartość\n")

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrBadYear)

	assertNoOutput(t, fsys, "out.ics")
}

func TestConvertInvalidFormatWritesNothing(t *testing.T) {
	fsys := writeSheet(t, tinySheet)

	err := Convert(fsys, ConvertOptions{
		InputPath:  "sheet.csv",
		OutputPath: "out.xml",
		Format:     "xml",
	})
	require.Error(t, err)

	assertNoOutput(t, fsys, "out.xml")
}

func TestConvertMissingInput(t *testing.T) {
	err := Convert(afero.NewMemMapFs(), ConvertOptions{
		InputPath:  "absent.csv",
		OutputPath: "out.ics",
		Format:     FormatICS,
	})
	assert.Error(t, err)
}

func mustReminders(t *testing.T, values ...string) []time.Duration {
	t.Helper()
	reminders, err := ParseReminders(values)
	require.NoError(t, err)
	return reminders
}

func assertNoOutput(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()

	exists, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	assert.False(t, exists, "no output file expected on failure")

	exists, err = afero.Exists(fsys, path+TmpSuffix)
	require.NoError(t, err)
	assert.False(t, exists, "no temp file expected on failure")
}
