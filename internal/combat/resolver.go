package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/valleysim/internal/telemetry"
)

// DefaultMaxRounds bounds a duel. Every attack has a nonzero chance of
// landing, so hitting this limit means something is broken.
const DefaultMaxRounds = 10_000

// Outcome is the result of a resolved duel.
type Outcome struct {
	Winner   Combatant
	Loser    Combatant
	Rounds   int            // Full or partial rounds played
	Attacks  []AttackResult // Every attack in order
	Forfeit  bool           // True if a side started at zero revenue
	Acquired bool           // True if the acquirer took custody of a wild loser
}

// Resolver runs duels between two combatants.
type Resolver struct {
	maxRounds int
}

// NewResolver creates a resolver. A non-positive maxRounds uses DefaultMaxRounds.
func NewResolver(maxRounds int) *Resolver {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Resolver{maxRounds: maxRounds}
}

// MaxRounds returns the round limit.
func (r *Resolver) MaxRounds() int {
	return r.maxRounds
}

// Resolve fights a duel between a and b until one side's revenue reaches zero.
// a attacks first each round. The winner gains ExperiencePerWin. If the loser is
// wild and acquirer is non-nil, the acquirer takes custody of it.
//
// A combatant that starts at zero revenue forfeits: no round is played and
// nobody gains experience.
func (r *Resolver) Resolve(ctx context.Context, a, b Combatant, acquirer Acquirer) (Outcome, error) {
	if IsNil(a) || IsNil(b) {
		return Outcome{}, ErrNilCombatant
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.duel")
	span.SetAttributes(
		attribute.String("combatant_a", a.GetName()),
		attribute.String("combatant_b", b.GetName()),
	)
	defer span.End()

	var out Outcome
	switch {
	case a.GetRevenue() <= 0:
		out = Outcome{Winner: b, Loser: a, Forfeit: true}
	case b.GetRevenue() <= 0:
		out = Outcome{Winner: a, Loser: b, Forfeit: true}
	}
	if out.Forfeit {
		span.SetAttributes(
			attribute.String("winner", out.Winner.GetName()),
			attribute.Bool("forfeit", true),
		)
		return out, nil
	}

	for out.Rounds < r.maxRounds {
		out.Rounds++

		done, err := r.strike(a, b, acquirer, &out)
		if err != nil || done {
			r.annotate(span, out)
			return out, err
		}
		done, err = r.strike(b, a, acquirer, &out)
		if err != nil || done {
			r.annotate(span, out)
			return out, err
		}
	}

	span.SetAttributes(attribute.Bool("stalled", true))
	return out, fmt.Errorf("%w: %s vs %s after %d rounds",
		ErrDuelStalled, a.GetName(), b.GetName(), out.Rounds)
}

// strike performs one attack and settles the duel if the defender is defeated.
func (r *Resolver) strike(attacker, defender Combatant, acquirer Acquirer, out *Outcome) (bool, error) {
	result, err := attacker.Attack(defender)
	if err != nil {
		return false, fmt.Errorf("%s attacking %s: %w", attacker.GetName(), defender.GetName(), err)
	}
	out.Attacks = append(out.Attacks, result)

	if defender.GetRevenue() > 0 {
		return false, nil
	}

	out.Winner = attacker
	out.Loser = defender
	if err := attacker.GainExperience(ExperiencePerWin); err != nil {
		return true, err
	}
	if acquirer != nil && defender.IsWild() {
		out.Acquired = acquirer.Acquire(defender)
	}
	return true, nil
}

func (r *Resolver) annotate(span trace.Span, out Outcome) {
	span.SetAttributes(
		attribute.Int("rounds", out.Rounds),
		attribute.Int("attacks", len(out.Attacks)),
		attribute.Bool("acquired", out.Acquired),
	)
	if out.Winner != nil {
		span.SetAttributes(attribute.String("winner", out.Winner.GetName()))
	}
}
