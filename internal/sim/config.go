package sim

import "github.com/samdwyer/valleysim/internal/facility"

// Quarterly action amounts.
const (
	InvestmentAmount      = 50.0   // Invested in each giant's first startup on odd quarters
	BuildCost             = 1000.0 // Price of a newly built startup
	PremiumFundsThreshold = 5000.0 // Funds above which new startups are Premium
	AcquisitionCost       = 500.0  // Charged for a won wild startup, when affordable
	RecoveryFactor        = 2.5    // Defeated revenue resets to market share times this
	LoanAmount            = 1000.0 // Magnitude of the funding grant offered each odd quarter
)

// Starting figures for startups a giant builds.
const (
	BuiltRevenue     = 1000.0
	BuiltMarketShare = 10.0
	BuiltNetIncome   = 20.0
)

// Categories assigned to built startups.
const (
	CategoryPremium = "Premium"
	CategoryGeneral = "General"
)

// Config holds simulation options.
type Config struct {
	// Seed for the random source used by every duel. A seed of 0 means a
	// time-based seed will be generated.
	Seed int64

	// MaxDuelRounds bounds each duel. Zero uses combat.DefaultMaxRounds.
	MaxDuelRounds int

	// ApplyEnhancements applies purchased enhancements right after the odd
	// quarter offer. When false, purchases accumulate unapplied.
	ApplyEnhancements bool

	// FacilityKind is registered for each built startup when a registry is
	// attached. Empty means "office".
	FacilityKind string
}

// DefaultConfig returns the options used by the CLI when nothing is set.
func DefaultConfig() Config {
	return Config{FacilityKind: facility.KindOffice.String()}
}

func (c Config) facilityKind() string {
	if c.FacilityKind == "" {
		return facility.KindOffice.String()
	}
	return c.FacilityKind
}
