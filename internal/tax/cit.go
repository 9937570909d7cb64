package tax

import "math"

// CompanySize classifies a company by annual turnover.
type CompanySize string

const (
	CompanySmall CompanySize = "small"
	CompanyOther CompanySize = "other"
)

// CITInput is the input record for a company income tax computation.
type CITInput struct {
	Turnover               float64 `json:"turnover"`
	AssessableProfits      float64 `json:"assessable_profits"`
	CompanyType            string  `json:"company_type,omitempty"` // display only
	IsMultinationalSubject bool    `json:"is_multinational_subject"`

	ForeignProfits            float64 `json:"foreign_profits,omitempty"`
	DistributedForeignProfits float64 `json:"distributed_foreign_profits,omitempty"`
}

// LineItem is a labeled amount in an itemized breakdown.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// CITResult is the company income tax result record.
// TotalTaxPayable = CITAmount + DevelopmentLevy + MinimumTaxTopUp + CFCTax;
// all components are zero for small companies.
type CITResult struct {
	CompanySize         CompanySize `json:"company_size"`
	CITAmount           float64     `json:"cit_amount"`
	DevelopmentLevy     float64     `json:"development_levy"`
	MinimumTaxTopUp     float64     `json:"minimum_tax_top_up"`
	CFCTax              float64     `json:"cfc_tax"`
	TotalTaxPayable     float64     `json:"total_tax_payable"`
	EffectiveTaxRatePct float64     `json:"effective_tax_rate_pct"`
	Breakdown           []LineItem  `json:"breakdown"`
}

// CalculateCompanyIncomeTax classifies the company by turnover, applies the
// flat CIT and development levy, the minimum-effective-tax top-up for
// in-scope multinationals, and CFC tax on undistributed foreign profits.
func (c *Calculator) CalculateCompanyIncomeTax(in CITInput) CITResult {
	if in.Turnover <= c.rates.SmallCompanyTurnover {
		return CITResult{
			CompanySize: CompanySmall,
			Breakdown: []LineItem{
				{Label: "Small company exemption (0% CIT, 0% development levy)", Amount: 0},
			},
		}
	}

	cit := in.AssessableProfits * c.rates.CITRatePct / 100
	levy := in.AssessableProfits * c.rates.DevelopmentLevyPct / 100
	beforeTopUp := cit + levy

	res := CITResult{
		CompanySize:     CompanyOther,
		CITAmount:       cit,
		DevelopmentLevy: levy,
		Breakdown: []LineItem{
			{Label: "Company income tax (30%)", Amount: cit},
			{Label: "Development levy (4%)", Amount: levy},
		},
	}

	// Minimum effective tax: a once-off top-up, not an iterative adjustment.
	if in.IsMultinationalSubject && in.AssessableProfits > 0 {
		currentRate := beforeTopUp / in.AssessableProfits * 100
		if currentRate < c.rates.MinimumEffectiveRatePct {
			res.MinimumTaxTopUp = in.AssessableProfits*c.rates.MinimumEffectiveRatePct/100 - beforeTopUp
			res.Breakdown = append(res.Breakdown,
				LineItem{Label: "Minimum effective tax top-up (15% floor)", Amount: res.MinimumTaxTopUp})
		}
	}

	if in.ForeignProfits > 0 {
		undistributed := math.Max(0, in.ForeignProfits-in.DistributedForeignProfits)
		res.CFCTax = undistributed * c.rates.CITRatePct / 100
		res.Breakdown = append(res.Breakdown,
			LineItem{Label: "Controlled foreign company tax (30% of undistributed profits)", Amount: res.CFCTax})
	}

	res.TotalTaxPayable = beforeTopUp + res.MinimumTaxTopUp + res.CFCTax
	if in.AssessableProfits > 0 {
		res.EffectiveTaxRatePct = res.TotalTaxPayable / in.AssessableProfits * 100
	}
	return res
}
