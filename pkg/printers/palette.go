package printers

import (
	"github.com/fatih/color"

	"tableflip.dev/lineup/pkg/conflict"
)

// terminal colors for each conflict palette entry.
var terminal = map[conflict.Color]*color.Color{
	conflict.Blue:      color.New(color.FgBlue),
	conflict.Purple:    color.New(color.FgMagenta),
	conflict.Yellow:    color.New(color.FgYellow),
	conflict.Brown:     color.New(color.FgRed, color.Faint),
	conflict.Black:     color.New(color.FgHiBlack),
	conflict.NeonGreen: color.New(color.FgHiGreen),
}

// hex colors for each conflict palette entry, used by the card renderer.
var hex = map[conflict.Color]string{
	conflict.Blue:      "#3b82f6",
	conflict.Purple:    "#8b5cf6",
	conflict.Yellow:    "#eab308",
	conflict.Brown:     "#92400e",
	conflict.Black:     "#4b5563",
	conflict.NeonGreen: "#39ff14",
}

func colorFor(c conflict.Color) *color.Color {
	if tc, ok := terminal[c]; ok {
		return tc
	}
	return color.New()
}
