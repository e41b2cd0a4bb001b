package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ultradian/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the ultradian app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "ultradian",
		Usage: `
		Ultradian paces your day in ultradian rhythm cycles: a morning grog
		followed by alternating peak focus and trough recovery periods.
		Each peak and trough is logged to your record service.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start or resume today's session (default command)",
				Flags:  startFlags(),
				Action: startAction,
			},
			{
				Name:   "end",
				Usage:  "End today's session early",
				Flags:  []cli.Flag{tokenFlag, apiFlag},
				Action: endAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of today's session",
				Action: statusAction,
			},
			{
				Name:   "plan",
				Usage:  "Print today's schedule",
				Flags:  planFlags(),
				Action: planAction,
			},
			{
				Name:   "log",
				Usage:  "Log today's physiological baseline",
				Flags:  baselineFlags(),
				Action: logAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  append(startFlags(), noColorFlag, debugFlag),
		Action: startAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
