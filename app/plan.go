package app

import (
	"fmt"
	"io"
	"time"

	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
	"github.com/ayoisaiah/ultradian/internal/ui"
)

// formatLength renders a segment length such as "20m", "1h30m" or "2h".
func formatLength(minutes int) string {
	hrs, mins := timeutil.MinsToHoursAndMins(minutes)

	switch {
	case hrs == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hrs)
	}

	return fmt.Sprintf("%dh%02dm", hrs, mins)
}

// planRows lays out the schedule of plan on the day of now as table rows,
// header first.
func planRows(plan session.Plan, now time.Time, layout string) ([][]string, error) {
	a, err := session.NewAnchor(plan, now)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"CYCLE", "PHASE", "START", "END", "LENGTH"}}

	for i, seg := range a.Segments() {
		if seg.Minutes == 0 {
			continue
		}

		start, end := a.Bounds(i)

		cycle := "-"
		if seg.Cycle > 0 {
			cycle = fmt.Sprintf("%d/%d", seg.Cycle, plan.Cycles)
		}

		p := phase.Phase(seg.Kind)

		rows = append(rows, []string{
			cycle,
			ui.Phase(p, p.Label()),
			start.Format(layout),
			end.Format(layout),
			formatLength(seg.Minutes),
		})
	}

	return rows, nil
}

func printPlan(w io.Writer, plan session.Plan, now time.Time, layout string) error {
	rows, err := planRows(plan, now, layout)
	if err != nil {
		return err
	}

	ui.PrintTable(rows, w)

	return nil
}
