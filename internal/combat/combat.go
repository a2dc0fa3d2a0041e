// Package combat provides the turn-based duel system for ValleySim.
package combat

import (
	"errors"
	"fmt"
	"strings"
)

// Damage model constants.
const (
	BaseDamage          = 10.0
	AdvantageMultiplier = 1.5
	CriticalMultiplier  = 2.0
	MissChance          = 0.10
	CriticalChance      = 0.20

	// ExperiencePerWin is awarded to the winner of a fought duel.
	ExperiencePerWin = 5
)

var (
	ErrNilCombatant      = errors.New("combatant must not be nil")
	ErrDuelStalled       = errors.New("duel exceeded round limit")
	ErrUnknownAttackKind = errors.New("unknown attack kind")
)

// Rand is the source of randomness for attacks and duels.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// AttackKind is the category of damage an attack deals.
type AttackKind int

const (
	// AttackTalentDrain drains market share.
	AttackTalentDrain AttackKind = iota
	// AttackTradeSecretTheft drains net income.
	AttackTradeSecretTheft
	// AttackPriceUndercutting drains revenue.
	AttackPriceUndercutting
)

// attackKinds is the pool an attacker draws from, uniformly.
var attackKinds = []AttackKind{
	AttackTalentDrain,
	AttackTradeSecretTheft,
	AttackPriceUndercutting,
}

// String returns the attack name.
func (k AttackKind) String() string {
	switch k {
	case AttackTalentDrain:
		return "Talent Drain"
	case AttackTradeSecretTheft:
		return "Trade Secret Theft"
	case AttackPriceUndercutting:
		return "Price Undercutting"
	default:
		return "Unknown"
	}
}

// Target returns the attribute the attack reduces.
func (k AttackKind) Target() string {
	switch k {
	case AttackTalentDrain:
		return "market_share"
	case AttackTradeSecretTheft:
		return "net_income"
	case AttackPriceUndercutting:
		return "revenue"
	default:
		return "none"
	}
}

// Combatant is anything that can fight a duel. Startups implement it.
type Combatant interface {
	GetName() string
	GetCategory() string
	GetRevenue() float64
	IsWild() bool

	// Attack rolls and applies one attack against the opponent.
	Attack(opponent Combatant) (AttackResult, error)
	// TakeDamage reduces the attribute matching kind, clamped at zero,
	// and returns the amount actually removed.
	TakeDamage(kind AttackKind, amount float64) (float64, error)
	GainExperience(points int) error
}

// IsNil reports whether c is missing. Besides a nil interface it catches a
// typed nil pointer whose type implements IsNil() bool.
func IsNil(c Combatant) bool {
	if c == nil {
		return true
	}
	n, ok := c.(interface{ IsNil() bool })
	return ok && n.IsNil()
}

// Acquirer takes custody of a wild combatant that lost a duel.
type Acquirer interface {
	GetName() string
	Acquire(c Combatant) bool
}

// AttackResult summarizes one attack for logging and verification.
type AttackResult struct {
	Attacker  string
	Defender  string
	Kind      AttackKind
	Damage    float64 // Rolled damage
	Dealt     float64 // Damage actually removed after clamping
	Missed    bool
	Critical  bool
	Advantage bool
}

// Message returns a human-readable description of the attack.
func (r AttackResult) Message() string {
	if r.Missed {
		return r.Attacker + " missed the attack!"
	}
	msg := fmt.Sprintf("%s uses %s on %s for %.1f", r.Attacker, r.Kind, r.Defender, r.Damage)
	if r.Critical {
		msg += " (critical)"
	}
	return msg
}

// advantage is an (attacker, defender) category pair with bonus damage.
type advantage struct {
	attacker string
	defender string
}

var typeAdvantages = []advantage{
	{attacker: "operating systems", defender: "social media"},
	{attacker: "fintech", defender: "real estate"},
}

// HasAdvantage reports whether the attacker category deals bonus damage to
// the defender category. Comparison ignores case.
func HasAdvantage(attackerCategory, defenderCategory string) bool {
	a := strings.ToLower(strings.TrimSpace(attackerCategory))
	d := strings.ToLower(strings.TrimSpace(defenderCategory))
	for _, adv := range typeAdvantages {
		if adv.attacker == a && adv.defender == d {
			return true
		}
	}
	return false
}

// RollAttack picks an attack kind and computes its damage without applying it.
// Draw order: kind, miss check, critical check (skipped on a miss).
func RollAttack(rng Rand, attackerCategory, defenderCategory string) AttackResult {
	result := AttackResult{Kind: attackKinds[rng.Intn(len(attackKinds))]}

	if rng.Float64() < MissChance {
		result.Missed = true
		return result
	}

	damage := BaseDamage
	if HasAdvantage(attackerCategory, defenderCategory) {
		damage *= AdvantageMultiplier
		result.Advantage = true
	}
	if rng.Float64() < CriticalChance {
		damage *= CriticalMultiplier
		result.Critical = true
	}
	result.Damage = damage
	return result
}
