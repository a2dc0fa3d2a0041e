// Package entity provides the market participants: startups, tech giants, and
// the enhancements giants can buy.
package entity

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/valleysim/internal/combat"
)

var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrNegativeValue     = errors.New("value must not be negative")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Experience thresholds for evolution.
const (
	RisingThreshold = 5
	ApexThreshold   = 10
)

// Stage is a startup's evolution stage. Stages only advance.
type Stage int

const (
	StageSeed Stage = iota
	StageRising
	StageApex
)

// String returns the stage identifier.
func (s Stage) String() string {
	switch s {
	case StageSeed:
		return "seed"
	case StageRising:
		return "rising"
	case StageApex:
		return "apex"
	default:
		return "unknown"
	}
}

// DisplayName returns the stage title shown to players.
func (s Stage) DisplayName() string {
	switch s {
	case StageSeed:
		return "Garage Startup"
	case StageRising:
		return "Tech Star"
	case StageApex:
		return "Unicorn"
	default:
		return "Unknown"
	}
}

// Startup is a business unit that earns revenue and fights duels.
type Startup struct {
	ID uuid.UUID

	name     string
	category string

	revenue     float64 // Monetary units, never negative
	marketShare float64 // Percentage, never negative
	netIncome   float64 // Monetary units, never negative
	experience  int
	stage       Stage
	wild        bool

	rng combat.Rand
}

// NewStartup creates a startup. Negative financial values are clamped to zero.
// A nil rng falls back to a time-seeded generator.
func NewStartup(name, category string, revenue, marketShare, netIncome float64, wild bool, rng combat.Rand) (*Startup, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, ErrEmptyName
	}
	if category == "" {
		return nil, fmt.Errorf("startup %q: %w", name, ErrEmptyCategory)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Startup{
		ID:          uuid.New(),
		name:        name,
		category:    category,
		revenue:     max(revenue, 0),
		marketShare: max(marketShare, 0),
		netIncome:   max(netIncome, 0),
		stage:       StageSeed,
		wild:        wild,
		rng:         rng,
	}, nil
}

// MustNewStartup creates a startup, panicking on invalid input.
func MustNewStartup(name, category string, revenue, marketShare, netIncome float64, wild bool, rng combat.Rand) *Startup {
	s, err := NewStartup(name, category, revenue, marketShare, netIncome, wild, rng)
	if err != nil {
		panic(err)
	}
	return s
}

// IsNil reports whether s is a nil pointer, so a nil *Startup stored in a
// combat.Combatant is still recognized as missing.
func (s *Startup) IsNil() bool { return s == nil }

// GetID returns the startup's unique ID.
func (s *Startup) GetID() uuid.UUID { return s.ID }

// GetName returns the startup's name.
func (s *Startup) GetName() string { return s.name }

// GetCategory returns the market category (e.g. "FinTech").
func (s *Startup) GetCategory() string { return s.category }

// GetRevenue returns current revenue.
func (s *Startup) GetRevenue() float64 { return s.revenue }

// GetMarketShare returns current market share.
func (s *Startup) GetMarketShare() float64 { return s.marketShare }

// GetNetIncome returns current net income.
func (s *Startup) GetNetIncome() float64 { return s.netIncome }

// GetExperience returns accumulated experience points.
func (s *Startup) GetExperience() int { return s.experience }

// GetStage returns the evolution stage.
func (s *Startup) GetStage() Stage { return s.stage }

// IsWild returns true if no tech giant owns the startup.
func (s *Startup) IsWild() bool { return s.wild }

// IsDefeated returns true once revenue has hit zero.
func (s *Startup) IsDefeated() bool { return s.revenue <= 0 }

// SetRevenue sets revenue. Negative values are rejected.
func (s *Startup) SetRevenue(v float64) error {
	if v < 0 {
		return fmt.Errorf("%s revenue %.2f: %w", s.name, v, ErrNegativeValue)
	}
	s.revenue = v
	return nil
}

// SetMarketShare sets market share. Negative values are rejected.
func (s *Startup) SetMarketShare(v float64) error {
	if v < 0 {
		return fmt.Errorf("%s market share %.2f: %w", s.name, v, ErrNegativeValue)
	}
	s.marketShare = v
	return nil
}

// SetNetIncome sets net income. Negative values are rejected.
func (s *Startup) SetNetIncome(v float64) error {
	if v < 0 {
		return fmt.Errorf("%s net income %.2f: %w", s.name, v, ErrNegativeValue)
	}
	s.netIncome = v
	return nil
}

// GainExperience adds experience and evolves the startup if a threshold is met.
func (s *Startup) GainExperience(points int) error {
	if points < 0 {
		return fmt.Errorf("%s experience %d: %w", s.name, points, ErrNegativeValue)
	}
	s.experience += points
	s.evolve()
	return nil
}

// evolve advances the stage until it matches the experience total.
func (s *Startup) evolve() {
	for {
		switch {
		case s.stage == StageSeed && s.experience >= RisingThreshold:
			s.stage = StageRising
		case s.stage == StageRising && s.experience >= ApexThreshold:
			s.stage = StageApex
		default:
			return
		}
	}
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// Attack rolls one attack against the opponent and applies the damage.
func (s *Startup) Attack(opponent combat.Combatant) (combat.AttackResult, error) {
	if s == nil || combat.IsNil(opponent) {
		return combat.AttackResult{}, combat.ErrNilCombatant
	}

	result := combat.RollAttack(s.rng, s.category, opponent.GetCategory())
	result.Attacker = s.name
	result.Defender = opponent.GetName()
	if result.Missed {
		return result, nil
	}

	dealt, err := opponent.TakeDamage(result.Kind, result.Damage)
	if err != nil {
		return result, err
	}
	result.Dealt = dealt
	return result, nil
}

// TakeDamage reduces the attribute targeted by kind, clamped at zero.
func (s *Startup) TakeDamage(kind combat.AttackKind, amount float64) (float64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%s damage %.2f: %w", s.name, amount, ErrNegativeValue)
	}
	switch kind {
	case combat.AttackTalentDrain:
		return drain(&s.marketShare, amount), nil
	case combat.AttackTradeSecretTheft:
		return drain(&s.netIncome, amount), nil
	case combat.AttackPriceUndercutting:
		return drain(&s.revenue, amount), nil
	default:
		return 0, fmt.Errorf("%w: %d", combat.ErrUnknownAttackKind, kind)
	}
}

// drain subtracts up to amount from v without going below zero.
func drain(v *float64, amount float64) float64 {
	actual := min(amount, *v)
	*v -= actual
	return actual
}

// String returns a one-line summary.
func (s *Startup) String() string {
	return fmt.Sprintf("%s [%s, %s] revenue=%.2f share=%.2f income=%.2f xp=%d",
		s.name, s.category, s.stage.DisplayName(), s.revenue, s.marketShare, s.netIncome, s.experience)
}

// Ensure Startup implements combat.Combatant
var _ combat.Combatant = (*Startup)(nil)
