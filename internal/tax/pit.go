package tax

import (
	"fmt"
	"math"
)

// IncomeCategory tags an income source. Categories only affect display; all
// income is aggregated identically.
type IncomeCategory string

const (
	IncomeSalary     IncomeCategory = "salary"
	IncomeBusiness   IncomeCategory = "business"
	IncomeInvestment IncomeCategory = "investment"
	IncomeOther      IncomeCategory = "other"
)

// DeductionCategory tags a deduction for cap lookup and display.
type DeductionCategory string

const (
	DeductionPension       DeductionCategory = "pension"
	DeductionNHF           DeductionCategory = "nhf"
	DeductionNHIS          DeductionCategory = "nhis"
	DeductionLifeInsurance DeductionCategory = "life_insurance"
	DeductionRentRelief    DeductionCategory = "rent_relief"
	DeductionCompensation  DeductionCategory = "job_loss_compensation"
	DeductionOther         DeductionCategory = "other"
)

// IncomeSource is a single income entry.
type IncomeSource struct {
	Category IncomeCategory `json:"category"`
	Amount   float64        `json:"amount"`
}

// Deduction is a single deduction claim before cap application.
type Deduction struct {
	Category DeductionCategory `json:"category"`
	Amount   float64           `json:"amount"`
}

// DeductionLine records how a claimed deduction was applied after capping.
type DeductionLine struct {
	Category DeductionCategory `json:"category"`
	Claimed  float64           `json:"claimed"`
	Allowed  float64           `json:"allowed"`
}

// PITInput is the input record for a personal income tax computation.
type PITInput struct {
	Incomes    []IncomeSource `json:"incomes"`
	Deductions []Deduction    `json:"deductions"`
	IsResident bool           `json:"is_resident"`
}

// PITResult is the personal income tax result record.
type PITResult struct {
	GrossIncome      float64         `json:"gross_income"`
	TotalDeductions  float64         `json:"total_deductions"`
	TaxableIncome    float64         `json:"taxable_income"`
	TotalTax         float64         `json:"total_tax"`
	NetTakeHome      float64         `json:"net_take_home"`
	EffectiveRatePct float64         `json:"effective_rate_pct"`
	IsExempt         bool            `json:"is_exempt"`
	ExemptReason     string          `json:"exempt_reason,omitempty"`
	DeductionLines   []DeductionLine `json:"deduction_lines"`
	Breakdown        []BracketLine   `json:"breakdown,omitempty"`
	MonthlyTax       float64         `json:"monthly_tax"`
	MonthlyNetPay    float64         `json:"monthly_net_pay"`
}

// CalculatePersonalIncomeTax aggregates income, applies capped deductions,
// and allocates the taxable remainder across the progressive bands.
//
// IsResident is accepted but applies no rate differential in the current
// regime; non-residents receive identical treatment.
func (c *Calculator) CalculatePersonalIncomeTax(in PITInput) PITResult {
	var gross float64
	for _, src := range in.Incomes {
		gross += src.Amount
	}

	lines := make([]DeductionLine, 0, len(in.Deductions))
	var totalDeductions float64
	for _, d := range in.Deductions {
		allowed := c.allowedDeduction(d, gross)
		lines = append(lines, DeductionLine{Category: d.Category, Claimed: d.Amount, Allowed: allowed})
		totalDeductions += allowed
	}
	// Deductions can never exceed gross income.
	if totalDeductions > gross {
		totalDeductions = gross
	}

	taxable := math.Max(0, gross-totalDeductions)

	res := PITResult{
		GrossIncome:     gross,
		TotalDeductions: totalDeductions,
		TaxableIncome:   taxable,
		DeductionLines:  lines,
	}

	if taxable <= c.rates.ExemptThreshold {
		// Full exemption: no bracket walk, no further itemization.
		res.IsExempt = true
		res.ExemptReason = fmt.Sprintf(
			"taxable income of ₦%.2f is at or below the ₦%.2f exemption threshold",
			taxable, c.rates.ExemptThreshold)
		res.NetTakeHome = gross - totalDeductions
		res.MonthlyNetPay = res.NetTakeHome / 12
		return res
	}

	alloc := Allocate(taxable, c.rates.PITBrackets)
	res.TotalTax = alloc.TotalTax
	res.Breakdown = alloc.Breakdown
	res.NetTakeHome = gross - totalDeductions - alloc.TotalTax
	if gross > 0 {
		res.EffectiveRatePct = alloc.TotalTax / gross * 100
	}
	res.MonthlyTax = alloc.TotalTax / 12
	res.MonthlyNetPay = res.NetTakeHome / 12
	return res
}

// allowedDeduction applies the per-category cap to a claimed deduction.
// Unknown categories are treated as uncapped.
func (c *Calculator) allowedDeduction(d Deduction, gross float64) float64 {
	switch d.Category {
	case DeductionRentRelief:
		return math.Min(d.Amount, c.rates.RentReliefCap)
	case DeductionCompensation:
		return math.Min(d.Amount, c.rates.CompensationCap)
	case DeductionPension:
		return math.Min(d.Amount, gross*c.rates.PensionRatePct/100)
	default:
		return d.Amount
	}
}
