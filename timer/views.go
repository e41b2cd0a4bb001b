package timer

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func formatTimeRemaining(secs int) string {
	m, s := timeutil.SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%02d:%02d", m, s)
}

func (t *Timer) headerView() string {
	var s strings.Builder

	s.WriteString(t.style.Phase(t.state.Phase).Render())

	s.WriteString(
		t.style.Hint.Render(
			"until " + t.state.SegmentEnd.Format(t.Opts.ClockLayout()),
		),
	)

	if t.state.Cycle > 0 {
		s.WriteString(
			t.style.Hint.Render(
				fmt.Sprintf(" (cycle %d of %d)", t.state.Cycle, t.state.Cycles),
			),
		)
	}

	return s.String()
}

func (t *Timer) timerView() string {
	var s strings.Builder

	s.WriteString(t.headerView())
	s.WriteString("\n\n")
	s.WriteString(t.style.Main.Render(formatTimeRemaining(t.state.Remaining)))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(t.state.Progress()))
	s.WriteString("\n\n")
	s.WriteString(t.help.ShortHelpView(defaultKeymap.ShortHelp()))

	return s.String()
}

func (t *Timer) completeView() string {
	title := phase.Complete.Label()
	msg := fmt.Sprintf("All %d cycles are done for today.", t.state.Cycles)

	if t.ended {
		title = "Session ended"
		msg = "Today's session was ended early."
	}

	return t.style.Main.Render(title) + "\n\n" + t.style.Secondary.Render(msg)
}

func (t *Timer) View() string {
	switch {
	case t.ended || t.state.Phase == phase.Complete:
		return t.style.Base.Render(t.completeView())
	case t.err != nil:
		return t.style.Base.Render(t.style.Secondary.Render(t.err.Error()))
	case t.state.Phase == phase.Idle:
		return ""
	}

	return t.style.Base.Render(t.timerView())
}
