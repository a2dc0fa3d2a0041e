package event

import (
	"strings"

	"github.com/samdwyer/valleysim/internal/entity"
)

// EffectKind is the closed set of market effects an event can carry.
// The kind is picked from the event name when the event is created.
type EffectKind int

const (
	EffectNeutral EffectKind = iota
	EffectTaxCut
	EffectDownturn
	EffectScrutiny
)

// Event names that map to a non-neutral effect.
const (
	NameTaxCut   = "Corporate Tax Cuts"
	NameDownturn = "Economic Downturn"
	NameScrutiny = "Regulatory Scrutiny"
)

// Regulatory scrutiny parameters.
const (
	ScrutinyThreshold = 25.0 // Market share above which a startup is penalized
	ScrutinyRate      = 0.10
)

// downturnRates maps a lowercased category to its fractional revenue change.
// Categories not listed are unaffected.
var downturnRates = map[string]float64{
	"healthcare":   0.20,
	"fintech":      -0.20,
	"real estate":  -0.10,
	"social media": 0.10,
}

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectNeutral:
		return "neutral"
	case EffectTaxCut:
		return "tax-cut"
	case EffectDownturn:
		return "downturn"
	case EffectScrutiny:
		return "scrutiny"
	default:
		return "unknown"
	}
}

// EffectFor returns the effect for an event name. Names are compared without
// regard to case; anything unrecognized is neutral.
func EffectFor(name string) EffectKind {
	name = strings.TrimSpace(name)
	switch {
	case strings.EqualFold(name, NameTaxCut):
		return EffectTaxCut
	case strings.EqualFold(name, NameDownturn):
		return EffectDownturn
	case strings.EqualFold(name, NameScrutiny):
		return EffectScrutiny
	default:
		return EffectNeutral
	}
}

// DownturnRate returns the revenue change a downturn applies to category and
// whether the category has a rule at all.
func DownturnRate(category string) (float64, bool) {
	rate, ok := downturnRates[strings.ToLower(strings.TrimSpace(category))]
	return rate, ok
}

// Impact records what an effect did to one startup.
type Impact struct {
	Startup string
	Effect  EffectKind
	Field   string // "revenue", "market_share", or empty when nothing changed
	Before  float64
	After   float64
}

// Changed reports whether the effect mutated the startup.
func (i Impact) Changed() bool {
	return i.Field != "" && i.Before != i.After
}

// Apply mutates s according to the effect. Event effects never draw randomness.
func (k EffectKind) Apply(s *entity.Startup) (Impact, error) {
	impact := Impact{Startup: s.GetName(), Effect: k}

	switch k {
	case EffectDownturn:
		rate, ok := DownturnRate(s.GetCategory())
		if !ok {
			return impact, nil
		}
		impact.Field = "revenue"
		impact.Before = s.GetRevenue()
		impact.After = impact.Before + impact.Before*rate
		if err := s.SetRevenue(impact.After); err != nil {
			return impact, err
		}

	case EffectScrutiny:
		impact.Field = "market_share"
		impact.Before = s.GetMarketShare()
		change := impact.Before * ScrutinyRate
		if impact.Before > ScrutinyThreshold {
			change = -change
		}
		impact.After = impact.Before + change
		if err := s.SetMarketShare(impact.After); err != nil {
			return impact, err
		}
	}

	return impact, nil
}
