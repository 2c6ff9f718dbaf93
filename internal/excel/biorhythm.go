package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"biobot/internal/analysis"
	"biobot/internal/biorhythm"
)

// CompareSheet имя листа со сравнением группы
const CompareSheet = "Сравнение"

const maxSheetName = 31

// styles стили книги
type styles struct {
	title  int
	header int
	marked int
	high   int
	low    int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"5B9BD5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "1F4E79", Style: 2},
		},
	}); err != nil {
		return st, err
	}
	// Сегодня или выбранный день
	if st.marked, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	if st.high, err = f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	if st.low, err = f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	return st, nil
}

// BiorhythmWorkbook строит книгу: лист сравнения по выбранному циклу
// и отдельный лист с тремя циклами для каждого человека.
func BiorhythmWorkbook(res biorhythm.MultiResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CompareSheet); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стилей: %w", err)
	}

	if err := writeCompareSheet(f, res, st); err != nil {
		return nil, fmt.Errorf("ошибка листа сравнения: %w", err)
	}
	for i, person := range res.People {
		sheet := SheetName(i, person.Profile.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writePersonSheet(f, sheet, person, st); err != nil {
			return nil, fmt.Errorf("ошибка листа %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	return f.WriteToBuffer()
}

// SheetName возвращает допустимое имя листа для человека
func SheetName(index int, name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			return '_'
		}
		return r
	}, name)
	full := []rune(fmt.Sprintf("%d. %s", index+1, clean))
	if len(full) > maxSheetName {
		full = full[:maxSheetName]
	}
	return string(full)
}

// WorkbookFilename возвращает имя файла выгрузки
func WorkbookFilename(ref time.Time) string {
	return fmt.Sprintf("biorhythm-%s.xlsx", ref.Format("20060102"))
}

func cell(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name + strconv.Itoa(row)
}

func writeCompareSheet(f *excelize.File, res biorhythm.MultiResult, st styles) error {
	sheet := CompareSheet
	lastCol := max(2, len(res.People)+1)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Сравнение: %s цикл", res.Dimension.Title()))
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", cell(lastCol, 1), st.title)
	f.SetRowHeight(sheet, 1, 24)

	f.SetCellValue(sheet, "A3", "Дата")
	for i, person := range res.People {
		f.SetCellValue(sheet, cell(i+2, 3), person.Profile.Name)
	}
	f.SetCellStyle(sheet, "A3", cell(lastCol, 3), st.header)

	if len(res.People) == 0 {
		f.SetCellValue(sheet, "A4", "Нет активных людей")
		return nil
	}

	row := 4
	for _, point := range res.Combined {
		f.SetCellValue(sheet, cell(1, row), point.Date.Format(biorhythm.UserDateLayout))
		for i, person := range res.People {
			f.SetCellValue(sheet, cell(i+2, row), point.People[person.Profile.ID].Value)
		}
		if point.IsSelected || (point.IsToday && !hasSelected(res)) {
			f.SetCellStyle(sheet, cell(1, row), cell(lastCol, row), st.marked)
		}
		row++
	}
	lastRow := row - 1

	if err := addValueFormatting(f, sheet, fmt.Sprintf("B4:%s", cell(lastCol, lastRow)), st); err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "A", 14)
	colName, _ := excelize.ColumnNumberToName(lastCol)
	f.SetColWidth(sheet, "B", colName, 14)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 3, TopLeftCell: "B4", ActivePane: "bottomRight"})

	series := make([]excelize.ChartSeries, 0, len(res.People))
	for i := range res.People {
		col, _ := excelize.ColumnNumberToName(i + 2)
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$3", sheet, col),
			Categories: fmt.Sprintf("'%s'!$A$4:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$4:$%s$%d", sheet, col, col, lastRow),
			Line:       excelize.ChartLine{Smooth: true, Width: 2},
		})
	}
	return f.AddChart(sheet, cell(lastCol+2, 3), lineChart(fmt.Sprintf("%s цикл", capitalize(res.Dimension.Title())), series))
}

func writePersonSheet(f *excelize.File, sheet string, person biorhythm.PersonData, st styles) error {
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s, дата рождения %s", person.Profile.Name, person.Profile.BirthDate))
	f.MergeCell(sheet, "A1", "D1")
	f.SetCellStyle(sheet, "A1", "D1", st.title)
	f.SetRowHeight(sheet, 1, 24)

	f.SetCellValue(sheet, "A3", "Дата")
	for i, dim := range biorhythm.Dimensions {
		f.SetCellValue(sheet, cell(i+2, 3), capitalize(dim.Title()))
	}
	f.SetCellStyle(sheet, "A3", "D3", st.header)

	row := 4
	for _, point := range person.Series {
		f.SetCellValue(sheet, cell(1, row), point.Date.Format(biorhythm.UserDateLayout))
		for i, dim := range biorhythm.Dimensions {
			f.SetCellValue(sheet, cell(i+2, row), point.Get(dim))
		}
		if point.IsSelected || (point.IsToday && person.Selected == nil) {
			f.SetCellStyle(sheet, cell(1, row), cell(4, row), st.marked)
		}
		row++
	}
	lastRow := row - 1

	if err := addValueFormatting(f, sheet, fmt.Sprintf("B4:D%d", lastRow), st); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "D", 18)

	series := make([]excelize.ChartSeries, 0, len(biorhythm.Dimensions))
	for i := range biorhythm.Dimensions {
		col, _ := excelize.ColumnNumberToName(i + 2)
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$3", sheet, col),
			Categories: fmt.Sprintf("'%s'!$A$4:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$4:$%s$%d", sheet, col, col, lastRow),
			Line:       excelize.ChartLine{Smooth: true, Width: 2},
		})
	}
	return f.AddChart(sheet, "F3", lineChart(person.Profile.Name, series))
}

// addValueFormatting подсвечивает пики и спады
func addValueFormatting(f *excelize.File, sheet, cellRange string, st styles) error {
	limit := analysis.DefaultThresholds.High
	return f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">=", Format: &st.high, Value: strconv.Itoa(limit)},
		{Type: "cell", Criteria: "<=", Format: &st.low, Value: strconv.Itoa(-limit)},
	})
}

func lineChart(title string, series []excelize.ChartSeries) *excelize.Chart {
	return &excelize.Chart{
		Type:      excelize.Line,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: title}},
		PlotArea:  excelize.ChartPlotArea{ShowVal: false},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 640, Height: 320},
	}
}

func hasSelected(res biorhythm.MultiResult) bool {
	for _, point := range res.Combined {
		if point.IsSelected {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
