package tax

import (
	"fmt"
	"math"
)

// TaxpayerType distinguishes the two capital gains tax paths.
type TaxpayerType string

const (
	TaxpayerIndividual TaxpayerType = "individual"
	TaxpayerCompany    TaxpayerType = "company"
)

// CGTInput is the input record for a capital gains tax computation.
// CompanyTurnover is optional; when provided for a company it drives the
// small-company exemption.
type CGTInput struct {
	TaxpayerType       TaxpayerType `json:"taxpayer_type"`
	SaleProceeds       float64      `json:"sale_proceeds"`
	AcquisitionCost    float64      `json:"acquisition_cost"`
	ImprovementCosts   float64      `json:"improvement_costs,omitempty"`
	TransferCosts      float64      `json:"transfer_costs,omitempty"`
	CompanyTurnover    *float64     `json:"company_turnover,omitempty"`
	IsOffshoreTransfer bool         `json:"is_offshore_transfer,omitempty"`
}

// CGTResult is the capital gains tax result record.
// NetProceeds = SaleProceeds − CGTAmount on every path.
type CGTResult struct {
	TaxpayerType     TaxpayerType  `json:"taxpayer_type"`
	TotalCosts       float64       `json:"total_costs"`
	CapitalGain      float64       `json:"capital_gain"`
	CGTAmount        float64       `json:"cgt_amount"`
	NetProceeds      float64       `json:"net_proceeds"`
	EffectiveRatePct float64       `json:"effective_rate_pct"`
	IsExempt         bool          `json:"is_exempt"`
	ExemptReason     string        `json:"exempt_reason,omitempty"`
	Breakdown        []BracketLine `json:"breakdown,omitempty"` // individual path
	Lines            []LineItem    `json:"lines,omitempty"`     // company path
	Note             string        `json:"note,omitempty"`
}

// CalculateCapitalGainsTax derives the chargeable gain and applies either
// the flat company rate or the individual progressive table. Individuals
// share the PIT bracket table and exemption threshold.
func (c *Calculator) CalculateCapitalGainsTax(in CGTInput) CGTResult {
	totalCosts := in.AcquisitionCost + in.ImprovementCosts + in.TransferCosts
	gain := math.Max(0, in.SaleProceeds-totalCosts)

	res := CGTResult{
		TaxpayerType: in.TaxpayerType,
		TotalCosts:   totalCosts,
		CapitalGain:  gain,
	}

	switch in.TaxpayerType {
	case TaxpayerCompany:
		if in.CompanyTurnover != nil && *in.CompanyTurnover <= c.rates.SmallCompanyTurnover {
			res.IsExempt = true
			res.ExemptReason = "small company: chargeable gains are fully exempt"
			break
		}
		res.CGTAmount = gain * c.rates.CompanyCGTRatePct / 100
		res.Lines = []LineItem{
			{Label: "Capital gains tax (30%)", Amount: res.CGTAmount},
		}
		if in.IsOffshoreTransfer {
			res.Note = "offshore indirect transfer: gain remains chargeable in Nigeria"
		}
	default:
		if gain <= c.rates.ExemptThreshold {
			res.IsExempt = true
			res.ExemptReason = fmt.Sprintf(
				"capital gain of ₦%.2f is at or below the ₦%.2f exemption threshold",
				gain, c.rates.ExemptThreshold)
			break
		}
		alloc := Allocate(gain, c.rates.PITBrackets)
		res.CGTAmount = alloc.TotalTax
		res.Breakdown = alloc.Breakdown
	}

	res.NetProceeds = in.SaleProceeds - res.CGTAmount
	if in.SaleProceeds > 0 {
		res.EffectiveRatePct = res.CGTAmount / in.SaleProceeds * 100
	}
	return res
}
