package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/event"
	"github.com/samdwyer/valleysim/internal/sim"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(w io.Writer, msg string) {
	success.Fprintln(w, msg)
}

func printSummary(w io.Writer, out outcome) {
	accent.Fprintf(w, "== %s (seed %d) ==\n", out.scenario.Name, out.sim.Seed())

	for _, r := range out.reports {
		switch {
		case len(r.Removed) > 0:
			danger.Fprintln(w, r.Summary())
		case len(r.Acquisitions) > 0:
			warn.Fprintln(w, r.Summary())
		default:
			neutral.Fprintln(w, r.Summary())
		}
		for _, a := range r.Acquisitions {
			paid := "paid"
			if !a.Paid {
				paid = "unpaid"
			}
			fmt.Fprintf(w, "    %s acquired %s (%s)\n", a.Giant, a.Startup, paid)
		}
	}

	duels, acquisitions := reportTotals(out.reports)
	neutral.Fprintf(w, "%d quarters, %d duels, %d acquisitions\n", len(out.reports), duels, acquisitions)

	accent.Fprintln(w, "\n== Final market ==")
	giants := out.sim.TechGiants()
	if len(giants) == 0 {
		warn.Fprintln(w, "No tech giants remain.")
	}
	registry := out.sim.Registry()
	for _, g := range giants {
		facilities := 0
		if registry != nil {
			facilities = registry.CountByOwner(g.GetID())
		}
		success.Fprintf(w, "%s", g.GetName())
		fmt.Fprintf(w, "  funds %.2f  startups %d  facilities %d\n", g.GetFunds(), g.StartupCount(), facilities)
		for _, s := range g.Startups() {
			printStartup(w, s)
		}
	}

	if wild := out.sim.WildStartups(); len(wild) > 0 {
		accent.Fprintf(w, "Wild startups (%d)\n", len(wild))
		for _, s := range wild {
			printStartup(w, s)
		}
	}
}

func printStartup(w io.Writer, s *entity.Startup) {
	fmt.Fprintf(w, "  %-22s %-14s %-15s rev %9.2f  share %6.2f  income %7.2f  xp %d\n",
		s.GetName(), s.GetCategory(), s.GetStage().DisplayName(),
		s.GetRevenue(), s.GetMarketShare(), s.GetNetIncome(), s.GetExperience())
}

func printEvents(w io.Writer, name string, events []*event.Event) {
	accent.Fprintf(w, "== %s events ==\n", name)
	if len(events) == 0 {
		neutral.Fprintln(w, "No events scheduled.")
		return
	}
	for _, q := range event.Quarters {
		for _, e := range events {
			if !e.Matches(q) {
				continue
			}
			warn.Fprintf(w, "%s  %s", q, e.GetName())
			fmt.Fprintf(w, " [%s]\n    %s\n", e.Effect(), e.GetDescription())
		}
	}
}

// reportTotals counts duels and acquisitions across reports.
func reportTotals(reports []sim.QuarterReport) (duels, acquisitions int) {
	for _, r := range reports {
		duels += len(r.Duels)
		acquisitions += len(r.Acquisitions)
	}
	return duels, acquisitions
}
