package models

import "fmt"

// Scenario holds the run-level stress and concentration parameters. It is
// built once per run and threaded through the pipeline explicitly; nothing
// reads scenario state ambiently.
type Scenario struct {
	// StressMult uniformly scales every trade's P&L series before
	// aggregation. This is a parallel shift of the whole loss distribution,
	// not a targeted shock to specific risk factors.
	StressMult float64

	// ConcThreshold is the absolute-notional level above which the
	// concentration add-on applies. Zero disables the add-on.
	ConcThreshold float64

	// ConcAddonPct is the fractional IM surcharge per breach (0.10 = +10%).
	ConcAddonPct float64
}

// DefaultScenario is the unstressed base case.
func DefaultScenario() Scenario {
	return Scenario{StressMult: 1.0}
}

// Validate rejects parameter values outside their documented domains.
func (s Scenario) Validate() error {
	if s.StressMult < 1.0 {
		return fmt.Errorf("stress_mult must be >= 1.0, got %g", s.StressMult)
	}
	if s.ConcThreshold < 0 {
		return fmt.Errorf("conc_threshold must be >= 0, got %g", s.ConcThreshold)
	}
	if s.ConcAddonPct < 0 {
		return fmt.Errorf("conc_addon_pct must be >= 0, got %g", s.ConcAddonPct)
	}
	return nil
}

// AddonActive reports whether the concentration add-on participates in the
// run at all.
func (s Scenario) AddonActive() bool {
	return s.ConcThreshold > 0 && s.ConcAddonPct > 0
}
