package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ultradian/internal/config"
	"github.com/ayoisaiah/ultradian/internal/lifecycle"
	"github.com/ayoisaiah/ultradian/internal/osutil"
	"github.com/ayoisaiah/ultradian/internal/pathutil"
	"github.com/ayoisaiah/ultradian/internal/phase"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/ui"
	"github.com/ayoisaiah/ultradian/report"
	"github.com/ayoisaiah/ultradian/store"
	"github.com/ayoisaiah/ultradian/timer"
)

const (
	envNoColor          = "NO_COLOR"
	envUltradianNoColor = "ULTRADIAN_NO_COLOR"
	envDebug            = "ULTRADIAN_DEBUG"
)

// logCloser is the rotating log file opened in beforeAction.
var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// startAction handles the default command which starts or resumes today's
// session and runs the countdown until it completes or is ended.
func startAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := openStore(cfg)
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return errAlreadyRunning.Fmt("run 'ultradian status' to follow it")
		}

		return err
	}

	defer db.Close()

	client := newRecordClient(cfg)

	plan := todaysPlan(ctx.Context, cfg, db, client, time.Now())

	ctrl := lifecycle.New(
		db,
		client,
		cfg.Credentials(),
		lifecycle.WithNotifier(newNotifier(cfg, pathutil.Dir())),
	)

	a, err := ctrl.Start(ctx.Context, plan, cfg.CLI.Reset)
	if err != nil {
		return err
	}

	report.SessionStarted(a, cfg.ClockLayout())

	runCtx, stop := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	t := timer.New(runCtx, ctrl.Clock(), ctrl, cfg, pathutil.StatusFilePath())

	err = t.Run(config.Stdout)

	// in-flight cycle events and the end-of-session call finish before the
	// store is closed
	ctrl.Wait()

	if errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled) {
		slog.InfoContext(ctx.Context, "session view interrupted")

		return nil
	}

	return err
}

// endAction handles the end command which ends today's session early from
// another terminal.
func endAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return errAlreadyRunning.Fmt("press 'e' in the session view to end it")
		}

		return err
	}

	defer db.Close()

	ctrl := lifecycle.New(db, newRecordClient(cfg), cfg.Credentials())

	err = ctrl.End(ctx.Context)

	ctrl.Wait()

	if err != nil {
		return err
	}

	report.SessionEnded()

	return nil
}

// statusLine describes the anchor's position at now. It is empty when there
// is no session today.
func statusLine(a *session.Anchor, now time.Time, layout string) string {
	if a == nil || !a.SameDay(now) {
		return ""
	}

	if a.Ended() {
		return fmt.Sprintf("[Ended at %s]", a.EndTime.Format(layout))
	}

	return timer.FormatStatus(phase.Compute(a, now), layout)
}

// statusAction handles the status command and prints the position of today's
// session. A running session view holds the database, so its status file is
// read instead.
func statusAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	now := time.Now()

	var line string

	db, err := openStore(cfg)

	switch {
	case errors.Is(err, store.ErrLocked):
		s, err := timer.ReadStatus(pathutil.StatusFilePath(), now)
		if err != nil {
			return err
		}

		line = timer.FormatStatus(s, cfg.ClockLayout())
	case err != nil:
		return err
	default:
		defer db.Close()

		a, err := db.Anchor()
		if err != nil && !errors.Is(err, store.ErrCorruptAnchor) {
			return err
		}

		line = statusLine(a, now, cfg.ClockLayout())
	}

	if line != "" {
		pterm.Println(line)
	}

	return nil
}

// planAction handles the plan command which prints today's schedule without
// starting a session.
func planAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	var baselines store.BaselineStore

	db, err := openStore(cfg)
	if err != nil && !errors.Is(err, store.ErrLocked) {
		return err
	}

	if err == nil {
		defer db.Close()

		baselines = db
	}

	now := time.Now()

	plan := todaysPlan(ctx.Context, cfg, baselines, newRecordClient(cfg), now)

	return printPlan(config.Stdout, plan, now, cfg.ClockLayout())
}

// logAction handles the log command which records today's physiological
// baseline locally and sends it to the record service.
func logAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	var in baselineInput

	if hasBaselineFlags(ctx) {
		in = baselineFromFlags(ctx, cfg.Settings.WakeTime)
	} else {
		in, err = promptBaseline(cfg.Settings.WakeTime)
		if err != nil {
			return err
		}
	}

	b, err := in.parse(time.Now())
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return errAlreadyRunning.Fmt("log the baseline before starting it")
		}

		return err
	}

	defer db.Close()

	if err = db.SaveBaseline(b); err != nil {
		return err
	}

	err = newRecordClient(cfg).LogBaseline(ctx.Context, b)
	if err != nil {
		slog.WarnContext(ctx.Context, "sending baseline failed",
			slog.Any("error", err),
		)

		report.Warn(errLogBaseline.Wrap(err))

		return nil
	}

	report.BaselineLogged()

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	path := pathutil.ConfigFilePath()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		_, err = config.New(
			config.WithPromptConfig(path),
			config.WithViperConfig(path),
		)
		if err != nil {
			return err
		}
	}

	cmd := exec.Command(editor, path)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/ultradian/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if ULTRADIAN_NO_COLOR is set
	if _, exists := os.LookupEnv(envUltradianNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	_, debug := os.LookupEnv(envDebug)

	closer, err := setupLogger(pathutil.LogFilePath(), debug || ctx.Bool("debug"))
	if err != nil {
		return err
	}

	logCloser = closer

	slog.DebugContext(ctx.Context, "starting ultradian",
		slog.Any("args", os.Args),
	)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting ultradian")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
