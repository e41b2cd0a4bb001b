package timer

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
)

// handleTick re-derives the schedule position and schedules the next tick.
func (t *Timer) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	prev := t.state.Phase

	t.state = t.clock.Tick(t.ctx, msg.time())

	if err := t.writeStatusFile(); err != nil {
		slog.DebugContext(t.ctx, "writing status file failed",
			slog.Any("error", err),
		)
	}

	if t.state.Phase != prev {
		t.progress = newProgress(t.style, t.state.Phase)
	}

	if t.clock.Done() {
		return t, tea.Quit
	}

	return t, t.tick()
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.end):
		t.err = t.ender.End(t.ctx)
		t.ended = t.err == nil

		return t, tea.Quit

	case key.Matches(msg, defaultKeymap.quit):
		return t, tea.Quit
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case tea.KeyMsg:
		slog.DebugContext(t.ctx, "key press", slog.String("msg", spew.Sdump(msg)))

		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	return t, nil
}
