// Package sim provides the quarterly simulation engine that drives events,
// giant actions, duels, and end of quarter cleanup.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valleysim/internal/combat"
	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/event"
	"github.com/samdwyer/valleysim/internal/facility"
	"github.com/samdwyer/valleysim/internal/telemetry"
)

var (
	ErrAlreadyRunning = errors.New("simulation is already running")
	ErrInvalidYears   = errors.New("years must not be negative")
	ErrNilParticipant = errors.New("participant must not be nil")
	ErrNotWild        = errors.New("startup is owned")
)

// Simulation owns the roster of giants, wild startups, and scheduled events.
// It is not safe for concurrent use.
type Simulation struct {
	cfg      Config
	seed     int64
	rng      combat.Rand
	log      *slog.Logger
	registry *facility.Registry
	resolver *combat.Resolver

	giants []*entity.TechGiant
	wild   []*entity.Startup
	events []*event.Event

	state   State
	year    int
	quarter event.Quarter
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand replaces the seeded random source.
func WithRand(rng combat.Rand) Option {
	return func(s *Simulation) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithRegistry attaches a registry that receives a facility for every built
// startup.
func WithRegistry(r *facility.Registry) Option {
	return func(s *Simulation) { s.registry = r }
}

// WithResolver replaces the duel resolver.
func WithResolver(r *combat.Resolver) Option {
	return func(s *Simulation) {
		if r != nil {
			s.resolver = r
		}
	}
}

// New creates an idle simulation with an empty roster.
func New(cfg Config, opts ...Option) *Simulation {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cfg:      cfg,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		log:      slog.Default(),
		resolver: combat.NewResolver(cfg.MaxDuelRounds),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed returns the seed of the default random source.
func (s *Simulation) Seed() int64 { return s.seed }

// State returns the run state.
func (s *Simulation) State() State { return s.state }

// Year returns the year being run, or the last year run.
func (s *Simulation) Year() int { return s.year }

// Quarter returns the quarter being processed, or the last one processed.
func (s *Simulation) Quarter() event.Quarter { return s.quarter }

// Registry returns the attached facility registry, or nil.
func (s *Simulation) Registry() *facility.Registry { return s.registry }

// =============================================================================
// Roster
// =============================================================================

// AddTechGiant appends g to the roster.
func (s *Simulation) AddTechGiant(g *entity.TechGiant) error {
	if g == nil {
		return fmt.Errorf("add tech giant: %w", ErrNilParticipant)
	}
	s.giants = append(s.giants, g)
	return nil
}

// AddEvent schedules e.
func (s *Simulation) AddEvent(e *event.Event) error {
	if e == nil {
		return fmt.Errorf("add event: %w", ErrNilParticipant)
	}
	s.events = append(s.events, e)
	return nil
}

// AddWildStartup adds an unowned startup to the wild pool.
func (s *Simulation) AddWildStartup(st *entity.Startup) error {
	if st == nil {
		return fmt.Errorf("add wild startup: %w", ErrNilParticipant)
	}
	if !st.IsWild() {
		return fmt.Errorf("add wild startup %s: %w", st.GetName(), ErrNotWild)
	}
	s.wild = append(s.wild, st)
	return nil
}

// NewStartup creates a startup that draws attacks from the simulation's
// random source.
func (s *Simulation) NewStartup(name, category string, revenue, marketShare, netIncome float64, wild bool) (*entity.Startup, error) {
	return entity.NewStartup(name, category, revenue, marketShare, netIncome, wild, s.rng)
}

// TechGiants returns a copy of the roster.
func (s *Simulation) TechGiants() []*entity.TechGiant {
	out := make([]*entity.TechGiant, len(s.giants))
	copy(out, s.giants)
	return out
}

// Events returns a copy of the scheduled events.
func (s *Simulation) Events() []*event.Event {
	out := make([]*event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// WildStartups returns a copy of the wild pool.
func (s *Simulation) WildStartups() []*entity.Startup {
	out := make([]*entity.Startup, len(s.wild))
	copy(out, s.wild)
	return out
}

// =============================================================================
// Run loop
// =============================================================================

// Run simulates the given number of years, four quarters each, and returns a
// report per processed quarter. Cancellation is checked between quarters.
func (s *Simulation) Run(ctx context.Context, years int) ([]QuarterReport, error) {
	if years < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYears, years)
	}
	if s.state == StateRunning {
		return nil, ErrAlreadyRunning
	}
	s.state = StateRunning
	defer func() { s.state = StateIdle }()

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.run")
	span.SetAttributes(
		attribute.Int("years", years),
		attribute.Int64("seed", s.seed),
		attribute.Int("giants", len(s.giants)),
		attribute.Int("wild_startups", len(s.wild)),
	)
	defer span.End()

	s.log.Info("simulation started", "years", years, "giants", len(s.giants), "wild", len(s.wild))

	reports := make([]QuarterReport, 0, years*len(event.Quarters))
	for year := 1; year <= years; year++ {
		s.year = year
		for _, q := range event.Quarters {
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				return reports, err
			}
			report, err := s.processQuarter(ctx, q)
			reports = append(reports, report)
			if err != nil {
				span.RecordError(err)
				return reports, fmt.Errorf("year %d %s: %w", year, q, err)
			}
		}
	}

	span.SetAttributes(attribute.Int("giants_remaining", len(s.giants)))
	s.log.Info("simulation completed", "years", years, "giants", len(s.giants), "wild", len(s.wild))
	return reports, nil
}

// ProcessQuarter runs a single quarter outside of Run. It fails with
// ErrAlreadyRunning while a run is in progress. Before any run the quarter is
// counted as year 1.
func (s *Simulation) ProcessQuarter(ctx context.Context, q event.Quarter) (QuarterReport, error) {
	if s.state == StateRunning {
		return QuarterReport{Year: s.year, Quarter: q}, ErrAlreadyRunning
	}
	s.state = StateRunning
	defer func() { s.state = StateIdle }()

	if s.year == 0 {
		s.year = 1
	}
	return s.processQuarter(ctx, q)
}

// processQuarter runs one quarter: events, odd quarter giant actions and wild
// duels, fourth quarter battles, removal of empty giants, then recovery.
func (s *Simulation) processQuarter(ctx context.Context, q event.Quarter) (QuarterReport, error) {
	report := QuarterReport{Year: s.year, Quarter: q}
	if !q.Valid() {
		return report, fmt.Errorf("process quarter: %w", event.ErrInvalidQuarter)
	}
	s.quarter = q

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.quarter")
	span.SetAttributes(
		attribute.Int("year", s.year),
		attribute.String("quarter", q.String()),
	)
	defer span.End()

	s.log.Debug("quarter started", "year", s.year, "quarter", q.String())

	if err := s.applyEvents(ctx, q, &report); err != nil {
		span.RecordError(err)
		return report, err
	}

	if q == event.Q1 || q == event.Q3 {
		for _, g := range s.giants {
			if err := s.giantActions(g, &report); err != nil {
				span.RecordError(err)
				return report, err
			}
		}
		if err := s.wildDuels(ctx, &report); err != nil {
			span.RecordError(err)
			return report, err
		}
	}

	if q == event.Q4 {
		if err := s.giantBattles(ctx, &report); err != nil {
			span.RecordError(err)
			return report, err
		}
	}

	report.Removed = s.removeEmptyGiants()
	recovered, err := s.recoverDefeated()
	report.Recovered = recovered
	if err != nil {
		span.RecordError(err)
		return report, err
	}

	span.SetAttributes(
		attribute.Int("duels", len(report.Duels)),
		attribute.Int("acquisitions", len(report.Acquisitions)),
		attribute.Int("removed", len(report.Removed)),
	)
	return report, nil
}

// applyEvents runs every event scheduled for q on the wild pool, then on each
// giant's startups.
func (s *Simulation) applyEvents(ctx context.Context, q event.Quarter, report *QuarterReport) error {
	for _, e := range s.events {
		if !e.Matches(q) {
			continue
		}

		if e.Effect() == event.EffectNeutral {
			s.log.Info("event has no specific effect", "event", e.GetName())
		}

		er := EventReport{Name: e.GetName(), Effect: e.Effect()}
		impacts, err := e.Apply(ctx, s.wild)
		er.Impacts = append(er.Impacts, impacts...)
		if err != nil {
			return err
		}
		for _, g := range s.giants {
			impacts, err := e.Apply(ctx, g.Startups())
			er.Impacts = append(er.Impacts, impacts...)
			if err != nil {
				return err
			}
		}

		for _, impact := range er.Impacts {
			if impact.Changed() {
				s.log.Debug("event impact",
					"event", e.GetName(),
					"startup", impact.Startup,
					"field", impact.Field,
					"before", impact.Before,
					"after", impact.After,
				)
			}
		}
		report.Events = append(report.Events, er)
	}
	return nil
}

// wildDuels pits each giant's first startup against the next unresolved wild
// startup, in roster order. A defeated wild startup leaves the pool and joins
// the giant; a wild startup that wins stays in the pool and the next giant
// faces the one after it.
func (s *Simulation) wildDuels(ctx context.Context, report *QuarterReport) error {
	cursor := 0
	for _, g := range s.giants {
		if cursor >= len(s.wild) {
			return nil
		}
		champion := g.FirstStartup()
		if champion == nil {
			continue
		}
		target := s.wild[cursor]

		out, err := s.resolver.Resolve(ctx, champion, target, g)
		if err != nil {
			return fmt.Errorf("%s vs wild %s: %w", g.GetName(), target.GetName(), err)
		}

		dr := DuelReport{
			Kind:     DuelWild,
			Giant:    g.GetName(),
			Opponent: target.GetName(),
			Winner:   out.Winner.GetName(),
			Rounds:   out.Rounds,
			Forfeit:  out.Forfeit,
		}

		if out.Loser != combat.Combatant(target) {
			cursor++
			report.Duels = append(report.Duels, dr)
			s.log.Debug("wild startup held out", "giant", g.GetName(), "startup", target.GetName())
			continue
		}

		s.wild = append(s.wild[:cursor], s.wild[cursor+1:]...)
		g.AddStartup(target)
		dr.Transferred = target.GetName()
		report.Duels = append(report.Duels, dr)
		report.Acquisitions = append(report.Acquisitions, Acquisition{
			Giant:   g.GetName(),
			Startup: target.GetName(),
			Paid:    s.chargeAcquisition(g, target),
		})
	}
	return nil
}

// chargeAcquisition deducts AcquisitionCost if g can afford it. The
// acquisition stands either way.
func (s *Simulation) chargeAcquisition(g *entity.TechGiant, st *entity.Startup) bool {
	if err := g.Spend(AcquisitionCost); err != nil {
		s.log.Info("acquisition cost skipped", "giant", g.GetName(), "startup", st.GetName(), "err", err)
		return false
	}
	s.log.Info("startup acquired", "giant", g.GetName(), "startup", st.GetName(), "cost", AcquisitionCost)
	return true
}

// giantBattles runs one battle for every unordered pair of giants.
func (s *Simulation) giantBattles(ctx context.Context, report *QuarterReport) error {
	for i := 0; i < len(s.giants)-1; i++ {
		for j := i + 1; j < len(s.giants); j++ {
			a, b := s.giants[i], s.giants[j]
			result, err := a.Battle(ctx, b, s.resolver)
			if err != nil {
				return err
			}
			if result.Winner == nil {
				s.log.Debug("battle skipped", "giant", a.GetName(), "opponent", b.GetName())
				continue
			}

			report.Duels = append(report.Duels, DuelReport{
				Kind:        DuelBattle,
				Giant:       a.GetName(),
				Opponent:    b.GetName(),
				Winner:      result.Winner.GetName(),
				Rounds:      result.Duel.Rounds,
				Forfeit:     result.Duel.Forfeit,
				Transferred: result.Transferred.GetName(),
			})
			s.log.Info("battle won",
				"winner", result.To,
				"loser", result.From,
				"startup", result.Winner.GetName(),
				"transferred", result.Transferred.GetName(),
			)
		}
	}
	return nil
}

// removeEmptyGiants drops giants that own nothing and returns their names.
func (s *Simulation) removeEmptyGiants() []string {
	var removed []string
	kept := s.giants[:0]
	for _, g := range s.giants {
		if g.StartupCount() == 0 {
			removed = append(removed, g.GetName())
			s.log.Info("tech giant removed", "giant", g.GetName())
			continue
		}
		kept = append(kept, g)
	}
	clear(s.giants[len(kept):])
	s.giants = kept
	return removed
}

// recoverDefeated restores the revenue of every owned startup at zero to its
// market share times RecoveryFactor.
func (s *Simulation) recoverDefeated() ([]string, error) {
	var recovered []string
	for _, g := range s.giants {
		for _, st := range g.Startups() {
			if !st.IsDefeated() {
				continue
			}
			if err := st.SetRevenue(st.GetMarketShare() * RecoveryFactor); err != nil {
				return recovered, err
			}
			recovered = append(recovered, st.GetName())
		}
	}
	if len(recovered) > 0 {
		s.log.Debug("recovered defeated startups", "count", len(recovered))
	}
	return recovered, nil
}
