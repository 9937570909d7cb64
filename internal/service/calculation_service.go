package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"taxpadi/internal/domain"
	"taxpadi/internal/port"
	"taxpadi/internal/tax"
)

// VATRequest is the DTO for simple VAT computations.
type VATRequest struct {
	Amount float64     `json:"amount" binding:"min=0"`
	Mode   tax.VATMode `json:"mode" binding:"required,oneof=inclusive exclusive"`
}

// BusinessVATRequest is the DTO for business VAT computations.
type BusinessVATRequest struct {
	OutputVAT float64 `json:"output_vat" binding:"min=0"`
	InputVAT  float64 `json:"input_vat" binding:"min=0"`
}

// SaveInput is the DTO for persisting a calculation. Inputs are the raw
// engine inputs; results are recomputed server-side before storage so a
// tampered client can never persist figures the engines did not produce.
type SaveInput struct {
	TaxType domain.TaxType  `json:"tax_type" binding:"required"`
	Label   string          `json:"label" binding:"required,max=120"`
	Inputs  json.RawMessage `json:"inputs" binding:"required"`
}

// CalculationService validates inputs and delegates to the pure tax engines.
// The engines themselves perform no validation; every request is checked
// here before it reaches them.
type CalculationService interface {
	CalculatePIT(in tax.PITInput) (*tax.PITResult, error)
	CalculateCIT(in tax.CITInput) (*tax.CITResult, error)
	CalculateCGT(in tax.CGTInput) (*tax.CGTResult, error)
	CalculateVAT(req VATRequest) (*tax.VATResult, error)
	CalculateBusinessVAT(req BusinessVATRequest) (*tax.VATBusinessResult, error)
	Save(ctx context.Context, userID uuid.UUID, input SaveInput) (*domain.Calculation, error)
	Recompute(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error)
}

type calculationService struct {
	calc     *tax.Calculator
	calcRepo port.CalculationRepository
	cache    port.Cache
}

// NewCalculationService creates a new CalculationService.
func NewCalculationService(calc *tax.Calculator, calcRepo port.CalculationRepository, cache port.Cache) CalculationService {
	return &calculationService{calc: calc, calcRepo: calcRepo, cache: cache}
}

func (s *calculationService) CalculatePIT(in tax.PITInput) (*tax.PITResult, error) {
	for _, src := range in.Incomes {
		if src.Amount < 0 {
			return nil, fmt.Errorf("%w: income %q", domain.ErrNegativeAmount, src.Category)
		}
	}
	for _, d := range in.Deductions {
		if d.Amount < 0 {
			return nil, fmt.Errorf("%w: deduction %q", domain.ErrNegativeAmount, d.Category)
		}
	}
	res := s.calc.CalculatePersonalIncomeTax(in)
	return &res, nil
}

func (s *calculationService) CalculateCIT(in tax.CITInput) (*tax.CITResult, error) {
	for _, v := range []float64{in.Turnover, in.AssessableProfits, in.ForeignProfits, in.DistributedForeignProfits} {
		if v < 0 {
			return nil, domain.ErrNegativeAmount
		}
	}
	res := s.calc.CalculateCompanyIncomeTax(in)
	return &res, nil
}

func (s *calculationService) CalculateCGT(in tax.CGTInput) (*tax.CGTResult, error) {
	if in.TaxpayerType != tax.TaxpayerIndividual && in.TaxpayerType != tax.TaxpayerCompany {
		return nil, fmt.Errorf("%w: taxpayer type %q", domain.ErrInvalidInput, in.TaxpayerType)
	}
	amounts := []float64{in.SaleProceeds, in.AcquisitionCost, in.ImprovementCosts, in.TransferCosts}
	if in.CompanyTurnover != nil {
		amounts = append(amounts, *in.CompanyTurnover)
	}
	for _, v := range amounts {
		if v < 0 {
			return nil, domain.ErrNegativeAmount
		}
	}
	res := s.calc.CalculateCapitalGainsTax(in)
	return &res, nil
}

func (s *calculationService) CalculateVAT(req VATRequest) (*tax.VATResult, error) {
	if req.Amount < 0 {
		return nil, domain.ErrNegativeAmount
	}
	if req.Mode != tax.VATInclusive && req.Mode != tax.VATExclusive {
		return nil, fmt.Errorf("%w: vat mode %q", domain.ErrInvalidInput, req.Mode)
	}
	res := s.calc.CalculateVAT(req.Amount, req.Mode)
	return &res, nil
}

func (s *calculationService) CalculateBusinessVAT(req BusinessVATRequest) (*tax.VATBusinessResult, error) {
	if req.OutputVAT < 0 || req.InputVAT < 0 {
		return nil, domain.ErrNegativeAmount
	}
	res := s.calc.CalculateBusinessVAT(req.OutputVAT, req.InputVAT)
	return &res, nil
}

func (s *calculationService) Save(ctx context.Context, userID uuid.UUID, input SaveInput) (*domain.Calculation, error) {
	results, err := s.computeFromRaw(input.TaxType, input.Inputs)
	if err != nil {
		return nil, err
	}

	calc := &domain.Calculation{
		UserID:  userID,
		TaxType: input.TaxType,
		Label:   input.Label,
		Inputs:  input.Inputs,
		Results: results,
	}
	if err := s.calcRepo.Create(ctx, calc); err != nil {
		return nil, err
	}

	// Saved history changed; drop the cached first page.
	_ = s.cache.Delete(ctx, historyCacheKey(userID))

	return calc, nil
}

// Recompute reloads a saved calculation's inputs and runs them through the
// current engines, returning a copy with fresh results. The stored row is
// not modified.
func (s *calculationService) Recompute(ctx context.Context, userID, calcID uuid.UUID) (*domain.Calculation, error) {
	calc, err := s.calcRepo.GetByID(ctx, userID, calcID)
	if err != nil {
		return nil, err
	}

	results, err := s.computeFromRaw(calc.TaxType, calc.Inputs)
	if err != nil {
		return nil, err
	}
	calc.Results = results
	return calc, nil
}

// computeFromRaw unmarshals the raw inputs for the given tax type, validates
// them, runs the matching engine, and marshals its result record.
func (s *calculationService) computeFromRaw(taxType domain.TaxType, raw json.RawMessage) (json.RawMessage, error) {
	var result interface{}

	switch taxType {
	case domain.TaxTypePIT:
		var in tax.PITInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res, err := s.CalculatePIT(in)
		if err != nil {
			return nil, err
		}
		result = res

	case domain.TaxTypeCIT:
		var in tax.CITInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res, err := s.CalculateCIT(in)
		if err != nil {
			return nil, err
		}
		result = res

	case domain.TaxTypeCGT:
		var in tax.CGTInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res, err := s.CalculateCGT(in)
		if err != nil {
			return nil, err
		}
		result = res

	case domain.TaxTypeVAT:
		var req VATRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res, err := s.CalculateVAT(req)
		if err != nil {
			return nil, err
		}
		result = res

	case domain.TaxTypeVATBusiness:
		var req BusinessVATRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		res, err := s.CalculateBusinessVAT(req)
		if err != nil {
			return nil, err
		}
		result = res

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTaxType, taxType)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshaling results: %w", err)
	}
	return out, nil
}
