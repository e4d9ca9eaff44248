package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All renderers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
}

var current = classic()

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
	}
}

func Current() Theme { return current }
