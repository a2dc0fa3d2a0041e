package sim

import (
	"fmt"
	"strings"

	"github.com/samdwyer/valleysim/internal/event"
)

// DuelKind tells wild duels apart from giant battles.
type DuelKind int

const (
	DuelWild DuelKind = iota
	DuelBattle
)

// String returns a human-readable duel kind.
func (k DuelKind) String() string {
	switch k {
	case DuelWild:
		return "wild"
	case DuelBattle:
		return "battle"
	default:
		return "unknown"
	}
}

// EventReport lists what one event did this quarter.
type EventReport struct {
	Name    string
	Effect  event.EffectKind
	Impacts []event.Impact
}

// DuelReport summarizes one duel or giant battle.
type DuelReport struct {
	Kind        DuelKind
	Giant       string // Giant that initiated the duel
	Opponent    string // Wild startup or opposing giant
	Winner      string // Winning startup
	Rounds      int
	Forfeit     bool
	Transferred string // Startup that changed hands; empty if none
}

// Acquisition records a wild startup taken by a giant.
type Acquisition struct {
	Giant   string
	Startup string
	Paid    bool // False when the giant could not afford AcquisitionCost
}

// QuarterReport records everything that happened in one quarter.
type QuarterReport struct {
	Year         int
	Quarter      event.Quarter
	Events       []EventReport
	Built        []string
	Duels        []DuelReport
	Acquisitions []Acquisition
	Removed      []string // Giants dropped for owning nothing
	Recovered    []string // Owned startups whose revenue was restored
}

// Empty reports whether nothing happened.
func (r QuarterReport) Empty() bool {
	return len(r.Events) == 0 && len(r.Built) == 0 && len(r.Duels) == 0 &&
		len(r.Acquisitions) == 0 && len(r.Removed) == 0 && len(r.Recovered) == 0
}

// Label returns "Y<year> <quarter>".
func (r QuarterReport) Label() string {
	return fmt.Sprintf("Y%d %s", r.Year, r.Quarter)
}

// Summary returns a one-line description of the quarter.
func (r QuarterReport) Summary() string {
	var parts []string
	for _, e := range r.Events {
		parts = append(parts, "event "+e.Name)
	}
	if n := len(r.Built); n > 0 {
		parts = append(parts, fmt.Sprintf("%d built", n))
	}
	if n := len(r.Duels); n > 0 {
		parts = append(parts, fmt.Sprintf("%d duels", n))
	}
	if n := len(r.Acquisitions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d acquired", n))
	}
	if n := len(r.Removed); n > 0 {
		parts = append(parts, "removed "+strings.Join(r.Removed, ", "))
	}
	if n := len(r.Recovered); n > 0 {
		parts = append(parts, fmt.Sprintf("%d recovered", n))
	}
	if len(parts) == 0 {
		return r.Label() + ": quiet"
	}
	return r.Label() + ": " + strings.Join(parts, "; ")
}
