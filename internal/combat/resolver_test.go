package combat

import (
	"context"
	"errors"
	"testing"
)

// mockCombatant is a test implementation of the Combatant interface. Every
// attack deals a fixed amount of revenue damage; zero damage counts as a miss.
type mockCombatant struct {
	name       string
	category   string
	revenue    float64
	wild       bool
	damage     float64
	experience int
	attacks    int
	attackErr  error
}

func newMockCombatant(name string, revenue, damage float64) *mockCombatant {
	return &mockCombatant{
		name:     name,
		category: "General",
		revenue:  revenue,
		damage:   damage,
	}
}

func (m *mockCombatant) GetName() string     { return m.name }
func (m *mockCombatant) GetCategory() string { return m.category }
func (m *mockCombatant) GetRevenue() float64 { return m.revenue }
func (m *mockCombatant) IsWild() bool        { return m.wild }

func (m *mockCombatant) Attack(opponent Combatant) (AttackResult, error) {
	m.attacks++
	if m.attackErr != nil {
		return AttackResult{}, m.attackErr
	}
	result := AttackResult{
		Attacker: m.name,
		Defender: opponent.GetName(),
		Kind:     AttackPriceUndercutting,
		Damage:   m.damage,
		Missed:   m.damage == 0,
	}
	dealt, err := opponent.TakeDamage(result.Kind, m.damage)
	result.Dealt = dealt
	return result, err
}

func (m *mockCombatant) TakeDamage(kind AttackKind, amount float64) (float64, error) {
	if kind != AttackPriceUndercutting {
		return 0, nil
	}
	actual := min(amount, m.revenue)
	m.revenue -= actual
	return actual, nil
}

func (m *mockCombatant) GainExperience(points int) error {
	m.experience += points
	return nil
}

// mockAcquirer records every acquisition.
type mockAcquirer struct {
	acquired []Combatant
}

func (a *mockAcquirer) GetName() string { return "Acquirer" }

func (a *mockAcquirer) Acquire(c Combatant) bool {
	a.acquired = append(a.acquired, c)
	return true
}

func TestNewResolverDefaults(t *testing.T) {
	if got := NewResolver(0).MaxRounds(); got != DefaultMaxRounds {
		t.Errorf("NewResolver(0).MaxRounds() = %d, want %d", got, DefaultMaxRounds)
	}
	if got := NewResolver(-5).MaxRounds(); got != DefaultMaxRounds {
		t.Errorf("NewResolver(-5).MaxRounds() = %d, want %d", got, DefaultMaxRounds)
	}
	if got := NewResolver(42).MaxRounds(); got != 42 {
		t.Errorf("NewResolver(42).MaxRounds() = %d, want 42", got)
	}
}

func TestResolveFirstAttackerWins(t *testing.T) {
	a := newMockCombatant("A", 30, 10)
	b := newMockCombatant("B", 25, 10)

	out, err := NewResolver(0).Resolve(context.Background(), a, b, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// b: 25 -> 15 -> 5 -> 0 on A's third hit; a took two hits.
	if out.Winner != a || out.Loser != b {
		t.Fatalf("Winner = %v, want A", out.Winner)
	}
	if out.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3", out.Rounds)
	}
	if len(out.Attacks) != 5 {
		t.Errorf("len(Attacks) = %d, want 5", len(out.Attacks))
	}
	if a.revenue != 10 {
		t.Errorf("A revenue = %v, want 10", a.revenue)
	}
	if a.experience != ExperiencePerWin || b.experience != 0 {
		t.Errorf("experience A=%d B=%d, want %d and 0", a.experience, b.experience, ExperiencePerWin)
	}
	if out.Forfeit || out.Acquired {
		t.Errorf("Forfeit=%v Acquired=%v, want both false", out.Forfeit, out.Acquired)
	}
}

func TestResolveSecondAttackerWins(t *testing.T) {
	a := newMockCombatant("A", 10, 5)
	b := newMockCombatant("B", 100, 10)

	out, err := NewResolver(0).Resolve(context.Background(), a, b, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Winner != b {
		t.Fatalf("Winner = %v, want B", out.Winner)
	}
	if out.Rounds != 1 || len(out.Attacks) != 2 {
		t.Errorf("Rounds = %d, attacks = %d; want 1 and 2", out.Rounds, len(out.Attacks))
	}
	if b.experience != ExperiencePerWin {
		t.Errorf("B experience = %d, want %d", b.experience, ExperiencePerWin)
	}
}

func TestResolveForfeit(t *testing.T) {
	tests := []struct {
		name       string
		revA, revB float64
		wantWinner string
	}{
		{"a broke", 0, 50, "B"},
		{"b broke", 50, 0, "A"},
		{"both broke", 0, 0, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newMockCombatant("A", tt.revA, 10)
			b := newMockCombatant("B", tt.revB, 10)
			b.wild = true
			acq := &mockAcquirer{}

			out, err := NewResolver(0).Resolve(context.Background(), a, b, acq)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if out.Winner.GetName() != tt.wantWinner {
				t.Errorf("Winner = %s, want %s", out.Winner.GetName(), tt.wantWinner)
			}
			if !out.Forfeit || out.Rounds != 0 {
				t.Errorf("Forfeit = %v, Rounds = %d; want true and 0", out.Forfeit, out.Rounds)
			}
			if a.attacks+b.attacks != 0 {
				t.Errorf("attacks made = %d, want 0", a.attacks+b.attacks)
			}
			if a.experience != 0 || b.experience != 0 {
				t.Errorf("experience changed on forfeit: A=%d B=%d", a.experience, b.experience)
			}
			if len(acq.acquired) != 0 {
				t.Errorf("forfeit triggered acquisition")
			}
		})
	}
}

func TestResolveNilCombatant(t *testing.T) {
	a := newMockCombatant("A", 10, 10)
	r := NewResolver(0)

	if _, err := r.Resolve(context.Background(), nil, a, nil); !errors.Is(err, ErrNilCombatant) {
		t.Errorf("Resolve(nil, a) error = %v, want ErrNilCombatant", err)
	}
	if _, err := r.Resolve(context.Background(), a, nil, nil); !errors.Is(err, ErrNilCombatant) {
		t.Errorf("Resolve(a, nil) error = %v, want ErrNilCombatant", err)
	}
}

// nilableCombatant reports itself missing when its pointer is nil.
type nilableCombatant struct{ mockCombatant }

func (n *nilableCombatant) IsNil() bool { return n == nil }

func TestResolveTypedNilCombatant(t *testing.T) {
	a := newMockCombatant("A", 10, 10)
	var missing *nilableCombatant
	r := NewResolver(0)

	if !IsNil(missing) {
		t.Fatal("IsNil() = false for a nil pointer that implements IsNil")
	}
	if IsNil(a) {
		t.Error("IsNil() = true for a live combatant")
	}
	if _, err := r.Resolve(context.Background(), missing, a, nil); !errors.Is(err, ErrNilCombatant) {
		t.Errorf("Resolve(typed nil, a) error = %v, want ErrNilCombatant", err)
	}
	if _, err := r.Resolve(context.Background(), a, missing, nil); !errors.Is(err, ErrNilCombatant) {
		t.Errorf("Resolve(a, typed nil) error = %v, want ErrNilCombatant", err)
	}
}

func TestResolveAcquisition(t *testing.T) {
	tests := []struct {
		name     string
		wild     bool
		acquirer bool
		want     bool
	}{
		{"wild loser with acquirer", true, true, true},
		{"owned loser", false, true, false},
		{"no acquirer", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owned := newMockCombatant("Owned", 100, 10)
			loser := newMockCombatant("Loser", 20, 10)
			loser.wild = tt.wild

			acq := &mockAcquirer{}
			var acquirer Acquirer
			if tt.acquirer {
				acquirer = acq
			}

			out, err := NewResolver(0).Resolve(context.Background(), owned, loser, acquirer)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if out.Acquired != tt.want {
				t.Errorf("Acquired = %v, want %v", out.Acquired, tt.want)
			}
			if tt.want && (len(acq.acquired) != 1 || acq.acquired[0] != loser) {
				t.Errorf("acquired = %v, want [Loser]", acq.acquired)
			}
			if !tt.want && len(acq.acquired) != 0 {
				t.Errorf("acquired = %v, want none", acq.acquired)
			}
		})
	}
}

func TestResolveWildWinnerNotAcquired(t *testing.T) {
	owned := newMockCombatant("Owned", 10, 1)
	wild := newMockCombatant("Wild", 100, 10)
	wild.wild = true
	acq := &mockAcquirer{}

	out, err := NewResolver(0).Resolve(context.Background(), owned, wild, acq)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Winner != wild || out.Acquired || len(acq.acquired) != 0 {
		t.Errorf("wild winner was acquired: %+v", out)
	}
}

func TestResolveStalled(t *testing.T) {
	a := newMockCombatant("A", 10, 0)
	b := newMockCombatant("B", 10, 0)

	out, err := NewResolver(50).Resolve(context.Background(), a, b, nil)
	if !errors.Is(err, ErrDuelStalled) {
		t.Fatalf("Resolve() error = %v, want ErrDuelStalled", err)
	}
	if out.Rounds != 50 || out.Winner != nil {
		t.Errorf("Rounds = %d, Winner = %v; want 50 and nil", out.Rounds, out.Winner)
	}
	if a.experience != 0 || b.experience != 0 {
		t.Error("stalled duel awarded experience")
	}
}

func TestResolveAttackError(t *testing.T) {
	boom := errors.New("boom")
	a := newMockCombatant("A", 10, 10)
	a.attackErr = boom
	b := newMockCombatant("B", 10, 10)

	if _, err := NewResolver(0).Resolve(context.Background(), a, b, nil); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want wrapped boom", err)
	}
}
