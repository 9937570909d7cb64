package tax

// Rates holds the literal rate tables, caps, and thresholds for the current
// tax year. Values reflect the Nigeria Tax Act regime in force; the engines
// treat them as fixed inputs and never mutate them.
type Rates struct {
	// Progressive personal income tax bands, ascending, last band unbounded.
	// The same table is reused for individual capital gains.
	PITBrackets []Bracket

	// Annual taxable income at or below this amount is fully exempt from
	// personal income tax and individual CGT.
	ExemptThreshold float64

	// Deduction caps.
	RentReliefCap   float64
	CompensationCap float64
	PensionRatePct  float64 // pension deduction capped at this % of gross income

	// Company taxation.
	SmallCompanyTurnover    float64
	CITRatePct              float64
	DevelopmentLevyPct      float64
	MinimumEffectiveRatePct float64 // Pillar-Two style floor for in-scope multinationals
	CompanyCGTRatePct       float64

	VATRatePct float64
}

// DefaultRates returns the current-year rate set. There is no mechanism to
// select or version alternate tables; historical computation is out of scope.
func DefaultRates() Rates {
	return Rates{
		PITBrackets: []Bracket{
			{Min: 0, Max: 800_000, RatePct: 0, Label: "First ₦800,000"},
			{Min: 800_001, Max: 3_000_000, RatePct: 15, Label: "Next ₦2,200,000"},
			{Min: 3_000_001, Max: 12_000_000, RatePct: 18, Label: "Next ₦9,000,000"},
			{Min: 12_000_001, Max: 25_000_000, RatePct: 21, Label: "Next ₦13,000,000"},
			{Min: 25_000_001, Max: 50_000_000, RatePct: 23, Label: "Next ₦25,000,000"},
			{Min: 50_000_001, Max: UnboundedMax, RatePct: 25, Label: "Above ₦50,000,000"},
		},
		ExemptThreshold:         800_000,
		RentReliefCap:           500_000,
		CompensationCap:         50_000_000,
		PensionRatePct:          8,
		SmallCompanyTurnover:    100_000_000,
		CITRatePct:              30,
		DevelopmentLevyPct:      4,
		MinimumEffectiveRatePct: 15,
		CompanyCGTRatePct:       30,
		VATRatePct:              7.5,
	}
}

// Calculator bundles the four tax engines with an injected rate set. All
// methods are pure: identical inputs always yield identical results.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator over the given rate set.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates returns the rate set the calculator was built with.
func (c *Calculator) Rates() Rates {
	return c.rates
}
