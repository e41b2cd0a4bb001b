// Package timer renders the running session in the terminal and keeps the
// status file of the running instance up to date
package timer

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/ultradian/internal/config"
	"github.com/ayoisaiah/ultradian/internal/phase"
)

const (
	padding  = 2
	maxWidth = 80
)

// Ender ends the running session.
type Ender interface {
	End(ctx context.Context) error
}

type keymap struct {
	end  key.Binding
	quit key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.end, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeymap = keymap{
	end: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end session"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit (session keeps running)"),
	),
}

// Timer is the bubbletea model of a running session. Every tick re-derives
// the position in the schedule through the phase clock.
type Timer struct {
	ctx        context.Context
	clock      *phase.Clock
	ender      Ender
	Opts       *config.Config
	now        func() time.Time
	err        error
	style      *Style
	help       help.Model
	progress   progress.Model
	statusPath string
	state      phase.State
	interval   time.Duration
	ended      bool
}

type tickMsg time.Time

// New returns a timer for clock. statusPath is rewritten on every tick so
// that other processes can report the running session.
func New(
	ctx context.Context,
	clock *phase.Clock,
	ender Ender,
	cfg *config.Config,
	statusPath string,
) *Timer {
	style := NewStyle(cfg.Display)

	return &Timer{
		ctx:        ctx,
		clock:      clock,
		ender:      ender,
		Opts:       cfg,
		now:        time.Now,
		style:      style,
		help:       help.New(),
		progress:   newProgress(style, phase.Grog),
		statusPath: statusPath,
		state:      clock.State(),
		interval:   phase.DefaultInterval,
	}
}

// Err returns the error of the last manual end, if any.
func (t *Timer) Err() error {
	return t.err
}

func (t *Timer) tickNow() tea.Msg {
	return tickMsg(t.now())
}

func (t *Timer) tick() tea.Cmd {
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func (t *Timer) Init() tea.Cmd {
	return t.tickNow
}

// Run blocks until the schedule completes, the session is ended or the
// user quits the view. In headless mode a line is printed to w on every
// phase change instead.
func (t *Timer) Run(w io.Writer) error {
	defer os.Remove(t.statusPath)

	if t.Opts.CLI.Headless {
		return t.runHeadless(w)
	}

	_, err := tea.NewProgram(t, tea.WithContext(t.ctx)).Run()
	if err != nil {
		return err
	}

	return t.err
}

func (t *Timer) runHeadless(w io.Writer) error {
	last := -2

	return t.clock.Run(t.ctx, func(s phase.State) {
		t.state = s
		_ = t.writeStatusFile()

		if s.Index != last {
			last = s.Index
			_, _ = io.WriteString(w, FormatStatus(s, t.Opts.ClockLayout())+"\n")
		}
	})
}
