package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/samdwyer/valleysim/internal/config"
	"github.com/samdwyer/valleysim/internal/sim"
)

func testConfig() config.Config {
	return config.Config{Years: 1, Seed: 42, Facility: "office"}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := newRootCmd(testConfig())
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--years", "2")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	for _, want := range []string{
		"== Silicon Valley (seed 42) ==",
		"Y1 Q1:",
		"Y2 Q4:",
		"8 quarters",
		"== Final market ==",
		"Simulation complete.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative years", []string{"run", "--years=-1"}},
		{"unknown facility", []string{"run", "--facility", "castle"}},
		{"missing scenario", []string{"run", "--scenario", "/nonexistent/scenario.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEventsCommand(t *testing.T) {
	out, err := execute(t, "events")
	if err != nil {
		t.Fatalf("events error = %v", err)
	}

	// Listed in quarter order with their effect.
	tax := strings.Index(out, "Q1  Corporate Tax Cuts [tax-cut]")
	downturn := strings.Index(out, "Q2  Economic Downturn [downturn]")
	scrutiny := strings.Index(out, "Q3  Regulatory Scrutiny [scrutiny]")
	if tax < 0 || downturn < 0 || scrutiny < 0 {
		t.Fatalf("events output missing entries:\n%s", out)
	}
	if !(tax < downturn && downturn < scrutiny) {
		t.Errorf("events out of quarter order:\n%s", out)
	}
}

func TestSimulateRegistersFacilities(t *testing.T) {
	opts := runOptions{years: 1, seed: 3, facility: "store"}
	out, err := simulate(context.Background(), &opts, newLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	built := 0
	for _, r := range out.reports {
		built += len(r.Built)
	}
	if got := out.sim.Registry().Len(); got != built {
		t.Errorf("registry has %d facilities, want one per built startup (%d)", got, built)
	}
	if len(out.reports) != 4 {
		t.Errorf("got %d reports, want 4", len(out.reports))
	}
}

func TestReportTotals(t *testing.T) {
	reports := []sim.QuarterReport{
		{Duels: make([]sim.DuelReport, 2), Acquisitions: make([]sim.Acquisition, 1)},
		{Duels: make([]sim.DuelReport, 1)},
	}
	duels, acquisitions := reportTotals(reports)
	if duels != 3 || acquisitions != 1 {
		t.Errorf("reportTotals() = %d, %d; want 3, 1", duels, acquisitions)
	}
}
