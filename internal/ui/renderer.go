package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/sim"
)

// Board is the market snapshot the renderer draws.
type Board struct {
	Title  string
	Giants []*entity.TechGiant
	Wild   []*entity.Startup
	Last   *sim.QuarterReport // Most recent quarter; nil before the first
	Footer string
}

// BoardFrom captures the current state of s.
func BoardFrom(title string, s *sim.Simulation, reports []sim.QuarterReport) Board {
	b := Board{
		Title:  title,
		Giants: s.TechGiants(),
		Wild:   s.WildStartups(),
		Footer: "Press any key to exit",
	}
	if len(reports) > 0 {
		b.Last = &reports[len(reports)-1]
	}
	return b
}

// Renderer handles drawing the market board to the screen.
type Renderer struct {
	screen   *Screen
	colorFor func(category string) tcell.Color
}

// NewRenderer creates a new renderer for the given screen. colorFor picks the
// color of each category label; nil draws every label white.
func NewRenderer(screen *Screen, colorFor func(category string) tcell.Color) *Renderer {
	if colorFor == nil {
		colorFor = func(string) tcell.Color { return tcell.ColorWhite }
	}
	return &Renderer{screen: screen, colorFor: colorFor}
}

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	giantStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	wildStyle  = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	downStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Render draws the board. Rows past the bottom of the screen are dropped.
func (r *Renderer) Render(b Board) {
	r.screen.Clear()
	_, height := r.screen.Size()

	y := 0
	line := func(draw func(y int)) {
		if y < height {
			draw(y)
		}
		y++
	}

	line(func(y int) { r.screen.DrawText(0, y, b.Title, titleStyle) })
	if b.Last != nil {
		line(func(y int) { r.screen.DrawText(0, y, b.Last.Summary(), textStyle) })
	}
	y++

	for _, g := range b.Giants {
		line(func(y int) {
			r.screen.DrawText(0, y, fmt.Sprintf("%s  funds %.2f  startups %d", g.GetName(), g.GetFunds(), g.StartupCount()), giantStyle)
		})
		for _, s := range g.Startups() {
			line(func(y int) { r.renderStartup(2, y, s) })
		}
	}

	if len(b.Wild) > 0 {
		y++
		line(func(y int) { r.screen.DrawText(0, y, fmt.Sprintf("Wild startups (%d)", len(b.Wild)), wildStyle) })
		for _, s := range b.Wild {
			line(func(y int) { r.renderStartup(2, y, s) })
		}
	}

	if b.Footer != "" && height > 0 {
		r.screen.DrawText(0, height-1, b.Footer, textStyle)
	}
	r.screen.Show()
}

// renderStartup draws one startup row: name, colored category, figures.
func (r *Renderer) renderStartup(x, y int, s *entity.Startup) {
	style := textStyle
	if s.IsDefeated() {
		style = downStyle
	}
	x = r.screen.DrawText(x, y, s.GetName()+" ", style)
	x = r.screen.DrawText(x, y, "["+s.GetCategory()+"]", tcell.StyleDefault.Foreground(r.colorFor(s.GetCategory())))
	r.screen.DrawText(x, y, fmt.Sprintf(" %s  rev %.2f  share %.2f  income %.2f  xp %d",
		s.GetStage().DisplayName(), s.GetRevenue(), s.GetMarketShare(), s.GetNetIncome(), s.GetExperience()), style)
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}
