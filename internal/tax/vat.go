package tax

// VATMode selects whether the supplied amount already includes VAT.
type VATMode string

const (
	VATExclusive VATMode = "exclusive"
	VATInclusive VATMode = "inclusive"
)

// VATResult is the simple-mode VAT result record.
// GrossAmount = NetAmount × (1 + rate/100) holds on both modes.
type VATResult struct {
	Mode        VATMode `json:"mode"`
	RatePct     float64 `json:"rate_pct"`
	NetAmount   float64 `json:"net_amount"`
	VATAmount   float64 `json:"vat_amount"`
	GrossAmount float64 `json:"gross_amount"`
}

// VATBusinessResult nets output VAT charged against input VAT paid.
// IsPayable and IsRefundable are mutually exclusive; both are false only
// when NetVAT is exactly zero.
type VATBusinessResult struct {
	OutputVAT    float64 `json:"output_vat"`
	InputVAT     float64 `json:"input_vat"`
	NetVAT       float64 `json:"net_vat"`
	IsPayable    bool    `json:"is_payable"`
	IsRefundable bool    `json:"is_refundable"`
}

// CalculateVAT adds VAT to an exclusive amount or extracts it from an
// inclusive one.
func (c *Calculator) CalculateVAT(amount float64, mode VATMode) VATResult {
	rate := c.rates.VATRatePct
	res := VATResult{Mode: mode, RatePct: rate}

	if mode == VATInclusive {
		res.GrossAmount = amount
		res.NetAmount = amount / (1 + rate/100)
		res.VATAmount = res.GrossAmount - res.NetAmount
		return res
	}

	res.NetAmount = amount
	res.VATAmount = amount * rate / 100
	res.GrossAmount = res.NetAmount + res.VATAmount
	return res
}

// CalculateBusinessVAT computes the net VAT position for a filing period.
func (c *Calculator) CalculateBusinessVAT(outputVAT, inputVAT float64) VATBusinessResult {
	net := outputVAT - inputVAT
	return VATBusinessResult{
		OutputVAT:    outputVAT,
		InputVAT:     inputVAT,
		NetVAT:       net,
		IsPayable:    net > 0,
		IsRefundable: net < 0,
	}
}
