package entity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valleysim/internal/combat"
	"github.com/samdwyer/valleysim/internal/telemetry"
)

// DefaultFunds is the starting balance for a giant created without one.
const DefaultFunds = 5000.0

// FundsPerExperience converts invested funds into experience points.
const FundsPerExperience = 100.0

// TechGiant owns startups and spends funds on investments and enhancements.
type TechGiant struct {
	ID uuid.UUID

	name         string
	funds        float64
	startups     []*Startup
	enhancements []Enhancement
}

// NewTechGiant creates a giant with the given starting funds.
func NewTechGiant(name string, funds float64) (*TechGiant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if funds < 0 {
		return nil, fmt.Errorf("tech giant %q funds %.2f: %w", name, funds, ErrNegativeValue)
	}
	return &TechGiant{
		ID:    uuid.New(),
		name:  name,
		funds: funds,
	}, nil
}

// MustNewTechGiant creates a giant, panicking on invalid input.
func MustNewTechGiant(name string, funds float64) *TechGiant {
	g, err := NewTechGiant(name, funds)
	if err != nil {
		panic(err)
	}
	return g
}

// GetID returns the giant's unique ID.
func (g *TechGiant) GetID() uuid.UUID { return g.ID }

// GetName returns the giant's name.
func (g *TechGiant) GetName() string { return g.name }

// GetFunds returns available funds.
func (g *TechGiant) GetFunds() float64 { return g.funds }

// SetFunds replaces the balance. Negative values are rejected.
func (g *TechGiant) SetFunds(funds float64) error {
	if funds < 0 {
		return fmt.Errorf("%s funds %.2f: %w", g.name, funds, ErrNegativeValue)
	}
	g.funds = funds
	return nil
}

// Spend deducts amount if the giant can afford it.
func (g *TechGiant) Spend(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%s spend %.2f: %w", g.name, amount, ErrNegativeValue)
	}
	if g.funds < amount {
		return fmt.Errorf("%s needs %.2f, has %.2f: %w", g.name, amount, g.funds, ErrInsufficientFunds)
	}
	g.funds -= amount
	return nil
}

// Startups returns a copy of the owned startups, in acquisition order.
func (g *TechGiant) Startups() []*Startup {
	out := make([]*Startup, len(g.startups))
	copy(out, g.startups)
	return out
}

// StartupCount returns the number of owned startups.
func (g *TechGiant) StartupCount() int { return len(g.startups) }

// FirstStartup returns the first-listed startup, or nil.
func (g *TechGiant) FirstStartup() *Startup {
	if len(g.startups) == 0 {
		return nil
	}
	return g.startups[0]
}

// Owns reports whether s is in the giant's portfolio.
func (g *TechGiant) Owns(s *Startup) bool {
	for _, owned := range g.startups {
		if owned == s {
			return true
		}
	}
	return false
}

// AddStartup takes custody of s. The startup stops being wild.
// Returns false if s is nil or already owned.
func (g *TechGiant) AddStartup(s *Startup) bool {
	if s == nil || g.Owns(s) {
		return false
	}
	s.wild = false
	g.startups = append(g.startups, s)
	return true
}

// RemoveStartup releases s. Returns false if it was not owned.
func (g *TechGiant) RemoveStartup(s *Startup) bool {
	for i, owned := range g.startups {
		if owned == s {
			g.startups = append(g.startups[:i], g.startups[i+1:]...)
			return true
		}
	}
	return false
}

// removeFirstStartup detaches and returns the first-listed startup.
func (g *TechGiant) removeFirstStartup() *Startup {
	first := g.FirstStartup()
	if first != nil {
		g.startups = g.startups[1:]
	}
	return first
}

// Acquire implements combat.Acquirer for startups won in duels.
func (g *TechGiant) Acquire(c combat.Combatant) bool {
	s, ok := c.(*Startup)
	if !ok {
		return false
	}
	return g.AddStartup(s)
}

// InvestInStartup spends amount on s and grants one experience point per
// FundsPerExperience invested, rounded down.
func (g *TechGiant) InvestInStartup(s *Startup, amount float64) error {
	if s == nil {
		return fmt.Errorf("%s invest: %w", g.name, combat.ErrNilCombatant)
	}
	if err := g.Spend(amount); err != nil {
		return err
	}
	return s.GainExperience(int(math.Floor(amount / FundsPerExperience)))
}

// =============================================================================
// Enhancements
// =============================================================================

// ActiveEnhancements returns a copy of purchased, not yet consumed enhancements.
func (g *TechGiant) ActiveEnhancements() []Enhancement {
	out := make([]Enhancement, len(g.enhancements))
	copy(out, g.enhancements)
	return out
}

// PurchaseEnhancement pays for e and queues it as active.
func (g *TechGiant) PurchaseEnhancement(e Enhancement) error {
	if err := g.Spend(e.Cost); err != nil {
		return fmt.Errorf("purchase %s: %w", e.Name, err)
	}
	g.enhancements = append(g.enhancements, e)
	return nil
}

// ApplyEnhancements applies every active enhancement of a known kind once and
// consumes it, whatever its Duration. Unknown kinds stay active and are
// returned so the caller can report them.
func (g *TechGiant) ApplyEnhancements() ([]Enhancement, error) {
	var (
		unknown []Enhancement
		errs    []error
	)
	remaining := g.enhancements[:0]

	for _, e := range g.enhancements {
		if !e.Kind.Known() {
			unknown = append(unknown, e)
			remaining = append(remaining, e)
			continue
		}

		switch e.Kind {
		case KindFundingGrant:
			g.funds += e.Magnitude
		case KindRevenueMultiplier:
			for _, s := range g.startups {
				if err := s.SetRevenue(s.revenue + s.revenue*e.Magnitude); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	g.enhancements = remaining
	return unknown, errors.Join(errs...)
}

// =============================================================================
// Battles
// =============================================================================

// SelectStartupForBattle returns the owned startup with the highest revenue.
// Ties go to the first-listed startup. Returns nil if nothing is owned.
func (g *TechGiant) SelectStartupForBattle() *Startup {
	var best *Startup
	for _, s := range g.startups {
		if best == nil || s.revenue > best.revenue {
			best = s
		}
	}
	return best
}

// BattleResult describes a giant-versus-giant battle.
type BattleResult struct {
	Winner      *Startup // Startup that won the duel; nil if no battle was fought
	Transferred *Startup // First-listed startup of the losing giant
	From, To    string   // Names of the losing and winning giants
	Duel        combat.Outcome
}

// Battle pits the giant's strongest startup against the opponent's. The losing
// giant gives its first-listed startup, not necessarily the one that fought,
// to the winner. If either giant owns nothing, no battle happens. A nil
// resolver uses combat.NewResolver(0).
func (g *TechGiant) Battle(ctx context.Context, opponent *TechGiant, resolver *combat.Resolver) (BattleResult, error) {
	if opponent == nil || len(g.startups) == 0 || len(opponent.startups) == 0 {
		return BattleResult{}, nil
	}
	if resolver == nil {
		resolver = combat.NewResolver(0)
	}

	tracer := telemetry.Tracer("entity")
	ctx, span := tracer.Start(ctx, "giant.battle")
	span.SetAttributes(
		attribute.String("giant", g.name),
		attribute.String("giant.id", g.ID.String()),
		attribute.String("opponent", opponent.name),
		attribute.String("opponent.id", opponent.ID.String()),
	)
	defer span.End()

	mine := g.SelectStartupForBattle()
	theirs := opponent.SelectStartupForBattle()

	duel, err := resolver.Resolve(ctx, mine, theirs, nil)
	if err != nil {
		return BattleResult{}, fmt.Errorf("%s vs %s: %w", g.name, opponent.name, err)
	}

	result := BattleResult{Duel: duel}
	winner, loser := g, opponent
	if duel.Winner == theirs {
		winner, loser = opponent, g
		result.Winner = theirs
	} else {
		result.Winner = mine
	}

	result.Transferred = loser.removeFirstStartup()
	winner.AddStartup(result.Transferred)
	result.From, result.To = loser.name, winner.name

	span.SetAttributes(
		attribute.String("winner", winner.name),
		attribute.String("transferred", result.Transferred.name),
	)
	return result, nil
}

// String returns a one-line summary.
func (g *TechGiant) String() string {
	return fmt.Sprintf("%s funds=%.2f startups=%d", g.name, g.funds, len(g.startups))
}

// Ensure TechGiant implements combat.Acquirer
var _ combat.Acquirer = (*TechGiant)(nil)
