package entity

// EnhancementKind identifies what an enhancement does when applied.
// Kinds outside the known set are kept but never applied.
type EnhancementKind string

const (
	// KindFundingGrant adds its magnitude to the giant's funds.
	KindFundingGrant EnhancementKind = "Loan"
	// KindRevenueMultiplier adds revenue*magnitude to every owned startup.
	KindRevenueMultiplier EnhancementKind = "Revenue"
)

// Known reports whether the kind has an effect.
func (k EnhancementKind) Known() bool {
	return k == KindFundingGrant || k == KindRevenueMultiplier
}

// Enhancement is a purchasable modifier for a tech giant.
type Enhancement struct {
	Name      string
	Kind      EnhancementKind
	Cost      float64
	Duration  int     // Advertised quarters; 0 means one-shot. Informational only
	Magnitude float64 // Funds added, or revenue fraction added
}

// LoanOffer returns the free funding grant offered to giants each odd quarter.
func LoanOffer(amount float64) Enhancement {
	return Enhancement{
		Name:      "Loan",
		Kind:      KindFundingGrant,
		Magnitude: amount,
	}
}

// RevenueBooster returns a revenue multiplier enhancement.
func RevenueBooster(cost, fraction float64, duration int) Enhancement {
	return Enhancement{
		Name:      "Revenue Booster",
		Kind:      KindRevenueMultiplier,
		Cost:      cost,
		Duration:  duration,
		Magnitude: fraction,
	}
}
