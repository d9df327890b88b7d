package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"construction-planner-api/internal/models"
	"construction-planner-api/internal/schedule"
)

// SheetName is the workbook sheet holding the task table.
const SheetName = "Tasks"

// Column headers of the task table. Task and Duration are required on
// import; every other column defaults when absent.
const (
	colTask         = "Task"
	colDuration     = "Duration"
	colStartDate    = "Start Date"
	colDependsOn    = "Depends On"
	colProgress     = "Progress"
	colActualStart  = "Actual Start"
	colActualFinish = "Actual Finish"
	colDelay        = "Delay"
)

var exportColumns = []string{
	colTask, colDuration, colStartDate, colDependsOn,
	colProgress, colActualStart, colActualFinish, colDelay,
}

// ErrInvalidFormat is returned when a workbook lacks the required columns.
var ErrInvalidFormat = errors.New("invalid spreadsheet format: Task and Duration columns are required")

// Read parses the first sheet of an .xlsx workbook into task records.
// Dates are normalized to the storage format and each row's delay is
// recomputed from its own dates; whatever the Delay column carries is
// ignored. Row order becomes store position.
func Read(r io.Reader) ([]models.Task, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrInvalidFormat
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols[colTask]; !ok {
		return nil, ErrInvalidFormat
	}
	if _, ok := cols[colDuration]; !ok {
		return nil, ErrInvalidFormat
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	tasks := make([]models.Task, 0, len(rows)-1)
	for n, row := range rows[1:] {
		name := cell(row, colTask)
		if name == "" {
			// Trailing blank rows are common in hand-edited sheets.
			continue
		}

		duration, err := parseIntCell(cell(row, colDuration))
		if err != nil {
			return nil, fmt.Errorf("row %d: duration: %w", n+2, err)
		}

		progress := 0
		if p := cell(row, colProgress); p != "" {
			if progress, err = parseIntCell(p); err != nil {
				return nil, fmt.Errorf("row %d: progress: %w", n+2, err)
			}
		}

		startDate, err := parseDateCell(cell(row, colStartDate))
		if err != nil {
			return nil, fmt.Errorf("row %d: start date: %w", n+2, err)
		}
		actualStart, err := parseDateCell(cell(row, colActualStart))
		if err != nil {
			return nil, fmt.Errorf("row %d: actual start: %w", n+2, err)
		}
		actualFinish, err := parseDateCell(cell(row, colActualFinish))
		if err != nil {
			return nil, fmt.Errorf("row %d: actual finish: %w", n+2, err)
		}

		task := models.Task{
			Name:         name,
			Duration:     duration,
			StartDate:    startDate,
			DependsOn:    cell(row, colDependsOn),
			Progress:     progress,
			ActualStart:  actualStart,
			ActualFinish: actualFinish,
			Position:     len(tasks),
		}
		task.Delay, err = schedule.Delay(task.StartDate, task.Duration, task.ActualFinish)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Write builds an .xlsx workbook with the full task table, including the
// derived Delay column. The caller owns closing the returned file.
func Write(tasks []models.Task) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportColumns))
	for i, h := range exportColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, t := range tasks {
		var delay interface{}
		if t.Delay != nil {
			delay = *t.Delay
		}
		row := []interface{}{
			t.Name, t.Duration, t.StartDate, t.DependsOn,
			t.Progress, t.ActualStart, t.ActualFinish, delay,
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, addr, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// parseIntCell accepts both integer and float-formatted cells; spreadsheet
// tools often store whole numbers as "5.0".
func parseIntCell(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int(v), nil
}

// parseDateCell normalizes a date cell to the storage format. An empty cell
// stays empty; an unparseable non-empty cell is a format error.
func parseDateCell(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	day, ok := schedule.ParseDay(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", schedule.ErrInvalidDate, s)
	}
	return schedule.FormatDay(day), nil
}
