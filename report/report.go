// Package report prints user-facing outcomes of CLI commands
package report

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ultradian/internal/osutil"
	"github.com/ayoisaiah/ultradian/internal/session"
)

// SessionStarted announces the session that was created or resumed.
func SessionStarted(a *session.Anchor, layout string) {
	pterm.Info.Printfln(
		"today's session: %d cycles from %s until %s",
		a.Cycles,
		a.StartTime.Format(layout),
		a.EndOfSchedule().Format(layout),
	)
}

func SessionEnded() {
	pterm.Success.Println("today's session has ended")
}

func BaselineLogged() {
	pterm.Success.Println("baseline logged successfully")
}

func Warn(err error) {
	pterm.Warning.Println(err)
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
