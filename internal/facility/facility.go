// Package facility provides the buildings a tech giant can put up and an
// ordered registry that collects them for display.
package facility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownKind is returned by New for kinds outside office, factory, store.
var ErrUnknownKind = errors.New("unknown facility kind")

// Kind is the type of building.
type Kind int

const (
	KindOffice Kind = iota
	KindFactory
	KindStore
)

// String returns the lowercase kind tag used by New.
func (k Kind) String() string {
	switch k {
	case KindOffice:
		return "office"
	case KindFactory:
		return "factory"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind tag, ignoring case.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "office":
		return KindOffice, nil
	case "factory":
		return KindFactory, nil
	case "store":
		return KindStore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
	}
}

// Facility is a named placeholder building. It has no effect on the market.
type Facility struct {
	Kind    Kind
	Owner   string    // Name of the giant that built it; may be empty
	OwnerID uuid.UUID // ID of that giant; uuid.Nil when unowned
}

// New creates a facility from a kind tag such as "office".
func New(tag string) (Facility, error) {
	kind, err := ParseKind(tag)
	if err != nil {
		return Facility{}, err
	}
	return Facility{Kind: kind}, nil
}

// Construct returns the construction notice for the facility.
func (f Facility) Construct() string {
	article := "a"
	if f.Kind == KindOffice {
		article = "an"
	}
	title := strings.ToUpper(f.Kind.String()[:1]) + f.Kind.String()[1:]
	if f.Owner == "" {
		return fmt.Sprintf("Constructing %s %s Building.", article, title)
	}
	return fmt.Sprintf("%s is constructing %s %s Building.", f.Owner, article, title)
}

// String returns "<kind>" or "<owner> <kind>".
func (f Facility) String() string {
	if f.Owner == "" {
		return f.Kind.String()
	}
	return f.Owner + " " + f.Kind.String()
}
