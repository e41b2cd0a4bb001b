package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug records to the log file",
	}

	grogFlag = &cli.IntFlag{
		Name:    "grog",
		Aliases: []string{"g"},
		Usage:   "Morning grog length in minutes (default: 20)",
	}

	peakFlag = &cli.IntFlag{
		Name:    "peak",
		Aliases: []string{"p"},
		Usage:   "Peak focus length in minutes (default: 90)",
	}

	troughFlag = &cli.IntFlag{
		Name:    "trough",
		Aliases: []string{"t"},
		Usage:   "Trough recovery length in minutes (default: 20)",
	}

	cyclesFlag = &cli.IntFlag{
		Name:    "cycles",
		Aliases: []string{"c"},
		Usage:   "Number of peak and trough cycles (default: 3)",
	}

	wakeFlag = &cli.StringFlag{
		Name:    "wake",
		Aliases: []string{"w"},
		Usage:   "Wake time as HH:MM or a phrase like '6:30am' or '2 hours ago'",
	}

	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Bearer token for the record service (or set ULTRADIAN_TOKEN)",
	}

	apiFlag = &cli.StringFlag{
		Name:  "api",
		Usage: "Base URL of the record service",
	}

	headlessFlag = &cli.BoolFlag{
		Name:  "headless",
		Usage: "Print a line on every phase change instead of the interactive view",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears on every phase change",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Path to an mp3, ogg, flac or wav file played on every phase change. Disable with 'off'",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command on every phase change",
	}

	resetFlag = &cli.BoolFlag{
		Name:    "reset",
		Aliases: []string{"r"},
		Usage:   "Discard today's session and start a new one",
	}

	hrvFlag = &cli.IntFlag{
		Name:  "hrv",
		Usage: "Heart rate variability in milliseconds",
	}

	rhrFlag = &cli.IntFlag{
		Name:  "rhr",
		Usage: "Resting heart rate in beats per minute",
	}

	sleepFlag = &cli.Float64Flag{
		Name:  "sleep",
		Usage: "Hours slept last night",
	}

	moodFlag = &cli.StringFlag{
		Name:  "mood",
		Usage: "One of great, good, neutral, tired or stressed",
	}
)

func startFlags() []cli.Flag {
	return []cli.Flag{
		grogFlag,
		peakFlag,
		troughFlag,
		cyclesFlag,
		wakeFlag,
		tokenFlag,
		apiFlag,
		headlessFlag,
		disableNotificationFlag,
		soundFlag,
		sessionCmdFlag,
		resetFlag,
	}
}

func planFlags() []cli.Flag {
	return []cli.Flag{grogFlag, peakFlag, troughFlag, cyclesFlag, wakeFlag}
}

func baselineFlags() []cli.Flag {
	return []cli.Flag{wakeFlag, hrvFlag, rhrFlag, sleepFlag, moodFlag, tokenFlag, apiFlag}
}
