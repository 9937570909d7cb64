package tax

import "math"

// UnboundedMax marks a bracket with no upper bound. Exactly one bracket per
// table carries it (the last).
const UnboundedMax = -1

// Bracket is one band of a progressive rate table. Brackets are contiguous
// and ordered ascending by Min; the first band carries a zero rate (the
// exemption band).
type Bracket struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"` // UnboundedMax for the open-ended top band
	RatePct float64 `json:"rate_pct"`
	Label   string  `json:"label"`
}

// BracketLine is one row of an allocation breakdown. Brackets the taxable
// amount never reaches still appear with zero values so the display layer
// can render the full table.
type BracketLine struct {
	Bracket          Bracket `json:"bracket"`
	TaxableInBracket float64 `json:"taxable_in_bracket"`
	TaxForBracket    float64 `json:"tax_for_bracket"`
}

// Allocation is the result of splitting a taxable amount across a bracket
// table. TotalTax is exactly the sum of the breakdown's TaxForBracket fields.
type Allocation struct {
	TotalTax  float64       `json:"total_tax"`
	Breakdown []BracketLine `json:"breakdown"`
}

// Allocate walks the brackets in ascending order and splits taxable across
// them. The zero-rate band is special-cased as a full exemption: it consumes
// up to its ceiling at zero tax rather than being treated as a taxed slice.
// Each later band's capacity is Max − Min + 1 (unlimited for the top band).
//
// Callers must reject negative input before invoking; no rounding is applied
// here, display formatting is the caller's concern.
func Allocate(taxable float64, brackets []Bracket) Allocation {
	alloc := Allocation{Breakdown: make([]BracketLine, 0, len(brackets))}

	remaining := taxable
	for _, b := range brackets {
		line := BracketLine{Bracket: b}
		if remaining > 0 {
			var slice float64
			switch {
			case b.RatePct == 0:
				slice = math.Min(remaining, b.Max)
			case b.Max == UnboundedMax:
				slice = remaining
			default:
				slice = math.Min(remaining, b.Max-b.Min+1)
			}
			line.TaxableInBracket = slice
			line.TaxForBracket = slice * b.RatePct / 100
			alloc.TotalTax += line.TaxForBracket
			remaining -= slice
		}
		alloc.Breakdown = append(alloc.Breakdown, line)
	}

	return alloc
}
