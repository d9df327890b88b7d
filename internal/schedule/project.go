package schedule

import (
	"fmt"

	"construction-planner-api/internal/models"
)

// Bar series names, matched by the renderer's legend.
const (
	SeriesPlanned       = "planned"
	SeriesProgress      = "progress"
	SeriesActualOnTime  = "actual-on-time"
	SeriesActualDelayed = "actual-delayed"
	SeriesActualAhead   = "actual-ahead"
)

const (
	colorPlanned  = "lightgray"
	colorProgress = "green"
	colorOnTime   = "#ffa500"
	colorDelayed  = "#ff4c4c"
	colorAhead    = "#ffd700"
)

// Half-row geometry: planned and progress share the upper lane, the actual
// bar sits in the lower lane so the two lanes never overlap.
const (
	barWidth        = 0.4
	upperLaneOffset = -0.2
	lowerLaneOffset = 0.2
)

// Bar is one renderable span on the shared time axis. Start and Length are
// milliseconds; Offset and Width are in row units.
type Bar struct {
	Series  string  `json:"series"`
	Start   int64   `json:"start"`
	Length  int64   `json:"length"`
	Offset  float64 `json:"offset"`
	Width   float64 `json:"width"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

// ProjectBars maps one task onto its timeline bars. The planned bar is
// always emitted; the progress overlay only when progress > 0 (drawn after
// the planned bar so it covers it proportionally); the actual bar only when
// both actual dates are recorded, styled by the sign of the delay. The
// actual span includes the finish day itself.
func ProjectBars(t models.Task) ([]Bar, error) {
	if t.Duration < 1 {
		return nil, ErrInvalidDuration
	}
	start, ok := ParseDay(t.StartDate)
	if !ok {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidDate, t.StartDate)
	}
	startMs := dayMillis(start)
	end := PlannedFinish(start, t.Duration)

	bars := []Bar{{
		Series:  SeriesPlanned,
		Start:   startMs,
		Length:  int64(t.Duration) * DayMillis,
		Offset:  upperLaneOffset,
		Width:   barWidth,
		Color:   colorPlanned,
		Tooltip: fmt.Sprintf("%s: %s to %s", t.Name, FormatDay(start), FormatDay(end)),
	}}

	if t.Progress > 0 {
		bars = append(bars, Bar{
			Series:  SeriesProgress,
			Start:   startMs,
			Length:  int64(float64(t.Duration) * float64(t.Progress) / 100 * float64(DayMillis)),
			Offset:  upperLaneOffset,
			Width:   barWidth,
			Color:   colorProgress,
			Tooltip: fmt.Sprintf("%s: %d%% complete", t.Name, t.Progress),
		})
	}

	if t.HasActuals() {
		actualStart, ok := ParseDay(t.ActualStart)
		if !ok {
			return nil, fmt.Errorf("%w: actual start %q", ErrInvalidDate, t.ActualStart)
		}
		actualFinish, ok := ParseDay(t.ActualFinish)
		if !ok {
			return nil, fmt.Errorf("%w: actual finish %q", ErrInvalidDate, t.ActualFinish)
		}

		// Prefer the delay cached on the record; compute it only when the
		// record predates the cache (e.g. raw import rows).
		delay := t.Delay
		if delay == nil {
			var err error
			delay, err = Delay(t.StartDate, t.Duration, t.ActualFinish)
			if err != nil {
				return nil, err
			}
		}

		series, color := SeriesActualOnTime, colorOnTime
		tip := fmt.Sprintf("%s actual: %s to %s", t.Name, FormatDay(actualStart), FormatDay(actualFinish))
		if delay != nil {
			switch {
			case *delay > 0:
				series, color = SeriesActualDelayed, colorDelayed
			case *delay < 0:
				series, color = SeriesActualAhead, colorAhead
			}
			tip = fmt.Sprintf("%s, delay: %d day(s)", tip, *delay)
		}

		bars = append(bars, Bar{
			Series:  series,
			Start:   dayMillis(actualStart),
			Length:  dayMillis(actualFinish) - dayMillis(actualStart) + DayMillis,
			Offset:  lowerLaneOffset,
			Width:   barWidth,
			Color:   color,
			Tooltip: tip,
		})
	}

	return bars, nil
}
