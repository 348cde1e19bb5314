package ui

import "strings"

// Theme bundles palette, symbols and box borders.
type Theme struct {
	Name                                         string
	Title, Muted, Accent, Success, Error, Pending string
	High, Medium, Low                            string
	CornerTL, CornerTR, CornerBL, CornerBR       string
	H, V                                         string
	BarFull, BarEmpty                            string
	SymDone, SymOpen, SymOverdue                 string
	SymOK, SymFail                               string
	// Plain themes never emit color.
	Plain bool
}

var ThemeNames = []string{"classic", "neon", "mono"}

// ThemeByName falls back to classic for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			High: "\033[91m", Medium: "\033[93m", Low: "\033[92m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
			SymDone: "✔", SymOpen: "•", SymOverdue: "⚠",
			SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		return Theme{
			Name:     "mono",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			BarFull: "#", BarEmpty: ".",
			SymDone: "x", SymOpen: "-", SymOverdue: "!",
			SymOK: "ok:", SymFail: "error:",
			Plain: true,
		}
	default:
		return Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			High: fgRed, Medium: fgYellow, Low: fgGreen,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
			SymDone: "✔", SymOpen: "•", SymOverdue: "!",
			SymOK: "✔", SymFail: "✖",
		}
	}
}
