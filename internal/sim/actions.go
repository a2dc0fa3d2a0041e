package sim

import (
	"errors"
	"fmt"

	"github.com/samdwyer/valleysim/internal/entity"
	"github.com/samdwyer/valleysim/internal/facility"
)

// giantActions runs the odd quarter actions for g: enhancement offer, build,
// then investment. Funding shortfalls are logged and skipped.
func (s *Simulation) giantActions(g *entity.TechGiant, report *QuarterReport) error {
	if err := s.OfferEnhancements(g); err != nil {
		return err
	}

	built, err := s.BuildNewStartup(g)
	switch {
	case errors.Is(err, entity.ErrInsufficientFunds):
		s.log.Debug("build skipped", "giant", g.GetName(), "funds", g.GetFunds())
	case err != nil:
		return err
	default:
		report.Built = append(report.Built, built.GetName())
	}

	return s.InvestInFirstStartup(g)
}

// OfferEnhancements offers g a free funding grant of LoanAmount and buys it.
// With Config.ApplyEnhancements set, active enhancements are applied at once.
func (s *Simulation) OfferEnhancements(g *entity.TechGiant) error {
	loan := entity.LoanOffer(LoanAmount)
	if err := g.PurchaseEnhancement(loan); err != nil {
		if !errors.Is(err, entity.ErrInsufficientFunds) {
			return err
		}
		s.log.Debug("enhancement not purchased", "giant", g.GetName(), "enhancement", loan.Name, "err", err)
		return nil
	}

	if !s.cfg.ApplyEnhancements {
		return nil
	}
	unknown, err := g.ApplyEnhancements()
	for _, e := range unknown {
		s.log.Info("unknown enhancement left active", "giant", g.GetName(), "enhancement", e.Name, "kind", string(e.Kind))
	}
	return err
}

// BuildNewStartup has g build a startup for BuildCost. The startup is Premium
// when g holds more than PremiumFundsThreshold before paying, General
// otherwise. Returns entity.ErrInsufficientFunds when g cannot pay.
func (s *Simulation) BuildNewStartup(g *entity.TechGiant) (*entity.Startup, error) {
	if g == nil {
		return nil, fmt.Errorf("build startup: %w", ErrNilParticipant)
	}
	if g.GetFunds() < BuildCost {
		return nil, fmt.Errorf("%s build startup: %w", g.GetName(), entity.ErrInsufficientFunds)
	}

	category := CategoryGeneral
	if g.GetFunds() > PremiumFundsThreshold {
		category = CategoryPremium
	}
	name := fmt.Sprintf("%s Startup #%d", g.GetName(), g.StartupCount()+1)

	st, err := s.NewStartup(name, category, BuiltRevenue, BuiltMarketShare, BuiltNetIncome, false)
	if err != nil {
		return nil, err
	}
	if err := g.Spend(BuildCost); err != nil {
		return nil, err
	}
	g.AddStartup(st)

	if s.registry != nil {
		f, err := facility.New(s.cfg.facilityKind())
		if err != nil {
			return st, err
		}
		f.Owner = g.GetName()
		f.OwnerID = g.GetID()
		s.registry.Add(f)
		s.log.Debug(f.Construct(), "startup", st.GetName())
	}

	s.log.Info("startup built", "giant", g.GetName(), "startup", st.GetName(), "category", category)
	return st, nil
}

// InvestInFirstStartup invests InvestmentAmount in g's first startup, if any.
func (s *Simulation) InvestInFirstStartup(g *entity.TechGiant) error {
	first := g.FirstStartup()
	if first == nil {
		return nil
	}
	err := g.InvestInStartup(first, InvestmentAmount)
	if errors.Is(err, entity.ErrInsufficientFunds) {
		s.log.Debug("investment skipped", "giant", g.GetName(), "startup", first.GetName(), "err", err)
		return nil
	}
	return err
}
