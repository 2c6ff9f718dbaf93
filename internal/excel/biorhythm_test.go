package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"biobot/internal/biorhythm"
)

func openWorkbook(t *testing.T, res biorhythm.MultiResult) *excelize.File {
	t.Helper()
	buf, err := BiorhythmWorkbook(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBiorhythmWorkbook(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	profiles := []biorhythm.Profile{
		{ID: "a", Name: "Анна", BirthDate: "2026-10-04"},
		{ID: "b", Name: "Борис", BirthDate: "02.11.1988"},
	}
	res, err := biorhythm.CalculateMulti(profiles, now, now, biorhythm.Physical)
	require.NoError(t, err)

	f := openWorkbook(t, res)
	assert.Equal(t, []string{CompareSheet, "1. Анна", "2. Борис"}, f.GetSheetList())

	title, err := f.GetCellValue(CompareSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Сравнение: физический цикл", title)

	header, err := f.GetCellValue(CompareSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Борис", header)

	// строка 4: 3 октября, сегодня в строке 19
	first, err := f.GetCellValue(CompareSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "03.10.2026", first)

	today, err := f.GetCellValue(CompareSheet, "B19")
	require.NoError(t, err)
	assert.Equal(t, "-63", today)

	rows, err := f.GetRows(CompareSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 34)

	intellectual, err := f.GetCellValue("1. Анна", "D19")
	require.NoError(t, err)
	assert.Equal(t, "46", intellectual)
}

func TestBiorhythmWorkbookEmpty(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	res, err := biorhythm.CalculateMulti(nil, now, now, biorhythm.Emotional)
	require.NoError(t, err)

	f := openWorkbook(t, res)
	assert.Equal(t, []string{CompareSheet}, f.GetSheetList())

	v, err := f.GetCellValue(CompareSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Нет активных людей", v)
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		index int
		name  string
		want  string
	}{
		{0, "Анна", "1. Анна"},
		{1, "A/B: test?", "2. A_B_ test_"},
		{2, "O'Neil [jr]", "3. O_Neil _jr_"},
		{9, "Александра Константиновна Ивановна", "10. Александра Константиновна И"},
	}

	for _, tt := range tests {
		got := SheetName(tt.index, tt.name)
		assert.Equal(t, tt.want, got)
		assert.LessOrEqual(t, len([]rune(got)), maxSheetName)
	}
}

func TestWorkbookFilename(t *testing.T) {
	assert.Equal(t, "biorhythm-20261018.xlsx", WorkbookFilename(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}
