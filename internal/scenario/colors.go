package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %q", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// Palette maps lowercased category names to display colors.
type Palette map[string]tcell.Color

// Palette builds the category palette. Invalid colors are reported together.
func (sc *Scenario) Palette() (Palette, error) {
	p := make(Palette, len(sc.Categories))
	var bad []string
	for _, c := range sc.Categories {
		color, err := ParseHexColor(c.Color)
		if err != nil {
			bad = append(bad, c.Name)
			continue
		}
		p[strings.ToLower(strings.TrimSpace(c.Name))] = color
	}
	if len(bad) > 0 {
		return p, fmt.Errorf("invalid colors for categories: %s", strings.Join(bad, ", "))
	}
	return p, nil
}

// Color returns the color for category, or tcell.ColorWhite if it has none.
func (p Palette) Color(category string) tcell.Color {
	if c, ok := p[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return tcell.ColorWhite
}
