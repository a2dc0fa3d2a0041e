package scenario

import (
	"errors"
	"fmt"

	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/event"
	"github.com/samdwyer/valleysim/internal/sim"
)

// DefaultFile is the embedded scenario used when no path is given.
const DefaultFile = "default.yaml"

// StartupDef defines a startup loaded from YAML.
type StartupDef struct {
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`     // Market category (e.g., "FinTech")
	Revenue     float64 `yaml:"revenue"`      // Starting revenue
	MarketShare float64 `yaml:"market_share"` // Starting market share, percent
	NetIncome   float64 `yaml:"net_income"`   // Starting net income
}

// GiantDef defines a tech giant and the startups it starts with.
type GiantDef struct {
	Name     string       `yaml:"name"`
	Funds    *float64     `yaml:"funds"` // Omitted means entity.DefaultFunds
	Startups []StartupDef `yaml:"startups"`
}

// StartingFunds returns the configured funds or entity.DefaultFunds.
func (g *GiantDef) StartingFunds() float64 {
	if g.Funds == nil {
		return entity.DefaultFunds
	}
	return *g.Funds
}

// EventDef defines a scheduled market event.
type EventDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Quarter     string `yaml:"quarter"` // Q1 through Q4
}

// CategoryDef assigns a display color to a market category.
type CategoryDef struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // Hex, e.g. "#4CAF50"
}

// Scenario is a complete starting market.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Giants      []GiantDef    `yaml:"giants"`
	Wild        []StartupDef  `yaml:"wild"`
	Events      []EventDef    `yaml:"events"`
	Categories  []CategoryDef `yaml:"categories"`
}

// LoadDefault loads the embedded default scenario.
func LoadDefault() (*Scenario, error) {
	sc, err := Load[Scenario](DefaultFile)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// MustLoadDefault loads the default scenario, panicking on error.
func MustLoadDefault() *Scenario {
	sc, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return sc
}

// LoadPath loads a scenario from disk, or the default scenario when path is
// empty.
func LoadPath(path string) (*Scenario, error) {
	if path == "" {
		return LoadDefault()
	}
	sc, err := LoadFile[Scenario](path)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// BuildEvents creates the scheduled events in file order.
func (sc *Scenario) BuildEvents() ([]*event.Event, error) {
	events := make([]*event.Event, 0, len(sc.Events))
	for i, def := range sc.Events {
		e, err := event.New(def.Name, def.Description, def.Quarter)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Populate adds the scenario's giants, wild startups, and events to s.
// Startups are created through s so they share its random source.
func (sc *Scenario) Populate(s *sim.Simulation) error {
	if s == nil {
		return errors.New("populate: nil simulation")
	}

	for i, def := range sc.Giants {
		g, err := entity.NewTechGiant(def.Name, def.StartingFunds())
		if err != nil {
			return fmt.Errorf("giants[%d]: %w", i, err)
		}
		for j, sd := range def.Startups {
			st, err := s.NewStartup(sd.Name, sd.Category, sd.Revenue, sd.MarketShare, sd.NetIncome, false)
			if err != nil {
				return fmt.Errorf("giants[%d].startups[%d]: %w", i, j, err)
			}
			g.AddStartup(st)
		}
		if err := s.AddTechGiant(g); err != nil {
			return err
		}
	}

	for i, sd := range sc.Wild {
		st, err := s.NewStartup(sd.Name, sd.Category, sd.Revenue, sd.MarketShare, sd.NetIncome, true)
		if err != nil {
			return fmt.Errorf("wild[%d]: %w", i, err)
		}
		if err := s.AddWildStartup(st); err != nil {
			return err
		}
	}

	events, err := sc.BuildEvents()
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := s.AddEvent(e); err != nil {
			return err
		}
	}
	return nil
}
