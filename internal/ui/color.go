package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/ultradian/internal/phase"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Gray(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Gray(a)
}

func Magenta(a any) string {
	if DarkTheme {
		return pterm.LightMagenta(a)
	}

	return pterm.Magenta(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// Phase colours a by the phase it describes.
func Phase(p phase.Phase, a any) string {
	switch p {
	case phase.Grog:
		return Gray(a)
	case phase.Peak:
		return Green(a)
	case phase.Trough:
		return Blue(a)
	case phase.Complete:
		return Magenta(a)
	}

	return pterm.Sprint(a)
}
