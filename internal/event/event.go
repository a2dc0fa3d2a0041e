// Package event provides scheduled market events and the effects they have on
// startups.
package event

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/telemetry"
)

// ErrInvalidEvent is returned when an event is built from missing fields.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a scripted market event that fires in one quarter of every year.
// Events are immutable once created.
type Event struct {
	name        string
	description string
	quarter     Quarter
	effect      EffectKind
}

// New creates an event from a quarter tag such as "Q2".
func New(name, description, quarter string) (*Event, error) {
	q, err := ParseQuarter(quarter)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidEvent, name, err)
	}
	return NewForQuarter(name, description, q)
}

// NewForQuarter creates an event for q.
func NewForQuarter(name, description string, q Quarter) (*Event, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidEvent)
	case description == "":
		return nil, fmt.Errorf("%w %q: description must not be empty", ErrInvalidEvent, name)
	case !q.Valid():
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidEvent, name, ErrInvalidQuarter)
	}
	return &Event{
		name:        name,
		description: description,
		quarter:     q,
		effect:      EffectFor(name),
	}, nil
}

// MustNew creates an event, panicking on invalid input.
func MustNew(name, description, quarter string) *Event {
	e, err := New(name, description, quarter)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Event) GetName() string        { return e.name }
func (e *Event) GetDescription() string { return e.description }
func (e *Event) GetQuarter() Quarter    { return e.quarter }
func (e *Event) Effect() EffectKind     { return e.effect }

// Matches reports whether the event fires in q.
func (e *Event) Matches(q Quarter) bool {
	return e.quarter == q
}

// Apply runs the event's effect on each startup in order and returns one
// impact per startup. It stops at the first failed mutation.
func (e *Event) Apply(ctx context.Context, startups []*entity.Startup) ([]Impact, error) {
	tracer := telemetry.Tracer("event")
	_, span := tracer.Start(ctx, "event.apply")
	span.SetAttributes(
		attribute.String("event", e.name),
		attribute.String("effect", e.effect.String()),
		attribute.String("quarter", e.quarter.String()),
		attribute.Int("startups", len(startups)),
	)
	defer span.End()

	impacts := make([]Impact, 0, len(startups))
	for _, s := range startups {
		if s == nil {
			continue
		}
		impact, err := e.effect.Apply(s)
		if err != nil {
			span.RecordError(err)
			return impacts, fmt.Errorf("%s on %s: %w", e.name, s.GetName(), err)
		}
		impacts = append(impacts, impact)
	}
	return impacts, nil
}

// String returns "<name> (<quarter>)".
func (e *Event) String() string {
	return fmt.Sprintf("%s (%s)", e.name, e.quarter)
}
