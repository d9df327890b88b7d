package schedule

import (
	"fmt"

	"construction-planner-api/internal/models"
)

// Row is one task line of the chart: its disambiguated label, its bars, and
// the connector to its predecessor if one resolved.
type Row struct {
	Label     string     `json:"label"`
	Task      string     `json:"task"`
	Bars      []Bar      `json:"bars"`
	Connector *Connector `json:"connector,omitempty"`
}

// Chart is the complete renderable model: one row per task in store order,
// plus time-axis bounds covering every bar.
type Chart struct {
	Rows    []Row `json:"rows"`
	AxisMin int64 `json:"axisMin"`
	AxisMax int64 `json:"axisMax"`
}

// BuildChart assembles the chart model for the full task set. Row order and
// count mirror the input exactly; labels carry an index suffix so imported
// duplicate names still get distinct rows. Any malformed record aborts the
// build, so the caller reports a render error instead of a partial chart.
func BuildChart(tasks []models.Task) (*Chart, error) {
	chart := &Chart{Rows: make([]Row, 0, len(tasks))}

	haveBounds := false
	for i, t := range tasks {
		bars, err := ProjectBars(t)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Name, err)
		}
		conn, err := ResolveConnector(t, i, tasks)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Name, err)
		}

		for _, b := range bars {
			if !haveBounds || b.Start < chart.AxisMin {
				chart.AxisMin = b.Start
			}
			if end := b.Start + b.Length; !haveBounds || end > chart.AxisMax {
				chart.AxisMax = end
			}
			haveBounds = true
		}

		chart.Rows = append(chart.Rows, Row{
			Label:     fmt.Sprintf("%s #%d", t.Name, i),
			Task:      t.Name,
			Bars:      bars,
			Connector: conn,
		})
	}

	return chart, nil
}
