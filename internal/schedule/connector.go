package schedule

import (
	"fmt"
	"strings"

	"construction-planner-api/internal/models"
)

// arrowGapMillis keeps the horizontal segment short of the successor's start
// so the arrowhead stays visible.
const arrowGapMillis int64 = 100_000

// Connector describes the elbow-and-arrow link from a predecessor's end to a
// successor's start: a vertical segment at ViaX between the two rows, a
// horizontal segment from ViaX to TailX along the successor's row, and an
// arrowhead pointing into HeadX.
type Connector struct {
	FromRow int   `json:"fromRow"`
	ToRow   int   `json:"toRow"`
	ViaX    int64 `json:"viaX"`
	TailX   int64 `json:"tailX"`
	HeadX   int64 `json:"headX"`
}

// ResolveConnector matches a task's DependsOn against the task list by
// case-insensitive exact name and, on a hit, routes a connector from the
// predecessor's end boundary to the task's start. It returns nil when the
// dependency is empty, names no known task, or names the task itself; none
// of those is an error, the chart just draws no arrow for that row.
func ResolveConnector(t models.Task, row int, tasks []models.Task) (*Connector, error) {
	dep := strings.TrimSpace(t.DependsOn)
	if dep == "" {
		return nil, nil
	}

	predRow := -1
	for i := range tasks {
		if strings.EqualFold(tasks[i].Name, dep) {
			predRow = i
			break
		}
	}
	if predRow == -1 || predRow == row {
		// Unknown name or self-dependency: nothing to draw.
		return nil, nil
	}

	pred := tasks[predRow]
	if pred.Duration < 1 {
		return nil, ErrInvalidDuration
	}
	predStart, ok := ParseDay(pred.StartDate)
	if !ok {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidDate, pred.StartDate)
	}
	start, ok := ParseDay(t.StartDate)
	if !ok {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidDate, t.StartDate)
	}

	headX := dayMillis(start)
	return &Connector{
		FromRow: predRow,
		ToRow:   row,
		// End boundary: the day after the predecessor's planned finish.
		ViaX:  dayMillis(PlannedFinish(predStart, pred.Duration)) + DayMillis,
		TailX: headX - arrowGapMillis,
		HeadX: headX,
	}, nil
}
