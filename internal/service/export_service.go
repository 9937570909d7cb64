package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"taxpadi/internal/domain"
	"taxpadi/internal/port"
)

const (
	exportSheetName            = "Calculations"
	exportContentType          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultExportPresignExpiry = 15 * time.Minute
	exportPageSize             = 500
)

// ExportOutput is the result of an export. When the service is configured
// with object storage, DownloadURL carries a presigned link and Content is
// nil; otherwise Content holds the workbook for direct streaming.
type ExportOutput struct {
	Filename    string
	ContentType string
	Content     []byte
	DownloadURL string
}

// ExportService renders a user's saved calculations as an Excel workbook.
type ExportService interface {
	ExportHistory(ctx context.Context, userID uuid.UUID) (*ExportOutput, error)
}

type exportService struct {
	calcRepo      port.CalculationRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry time.Duration
}

// NewExportService creates a new ExportService. storage may be nil, in which
// case exports are returned inline instead of uploaded. A non-positive
// presignExpiry falls back to the default.
func NewExportService(calcRepo port.CalculationRepository, storage port.ObjectStorage, bucket string, presignExpiry time.Duration) ExportService {
	if presignExpiry <= 0 {
		presignExpiry = defaultExportPresignExpiry
	}
	return &exportService{calcRepo: calcRepo, storage: storage, bucket: bucket, presignExpiry: presignExpiry}
}

func (s *exportService) ExportHistory(ctx context.Context, userID uuid.UUID) (*ExportOutput, error) {
	calcs, err := s.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := buildWorkbook(calcs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	filename := fmt.Sprintf("taxpadi-calculations-%s.xlsx", time.Now().UTC().Format("20060102-150405"))

	if s.storage == nil || s.bucket == "" {
		return &ExportOutput{Filename: filename, ContentType: exportContentType, Content: content}, nil
	}

	key := fmt.Sprintf("exports/%s/%s", userID, filename)
	err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: exportContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload: %v", domain.ErrExportFailed, err)
	}

	url, err := s.storage.PresignDownload(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: presign: %v", domain.ErrExportFailed, err)
	}

	log.Printf("exported %d calculations for user %s to s3://%s/%s", len(calcs), userID, s.bucket, key)
	return &ExportOutput{Filename: filename, ContentType: exportContentType, DownloadURL: url}, nil
}

// loadAll pages through the user's full history.
func (s *exportService) loadAll(ctx context.Context, userID uuid.UUID) ([]domain.Calculation, error) {
	var all []domain.Calculation
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.calcRepo.ListByUser(ctx, userID, "", offset, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
	}
}

func buildWorkbook(calcs []domain.Calculation) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return nil, err
	}

	headers := []string{"Created At", "Tax Type", "Label", "Headline Figure", "Tax Due (NGN)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(exportSheetName, 1, 1, headerStyle)
	}

	for i, c := range calcs {
		row := i + 2
		headline, taxDue := summarize(c)
		values := []interface{}{
			c.CreatedAt.UTC().Format(time.RFC3339),
			string(c.TaxType),
			c.Label,
			headline,
			taxDue,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheetName, "A", "A", 22)
	_ = f.SetColWidth(exportSheetName, "B", "C", 18)
	_ = f.SetColWidth(exportSheetName, "D", "E", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// summarize pulls the per-type headline figures out of a stored result
// record. Unknown or malformed records degrade to empty cells rather than
// failing the whole export.
func summarize(c domain.Calculation) (string, float64) {
	switch c.TaxType {
	case domain.TaxTypePIT:
		var r struct {
			TaxableIncome float64 `json:"taxable_income"`
			TotalTax      float64 `json:"total_tax"`
		}
		if json.Unmarshal(c.Results, &r) != nil {
			return "", 0
		}
		return fmt.Sprintf("Taxable income %.2f", r.TaxableIncome), r.TotalTax

	case domain.TaxTypeCIT:
		var in struct {
			AssessableProfits float64 `json:"assessable_profits"`
		}
		var r struct {
			TotalTaxPayable float64 `json:"total_tax_payable"`
		}
		if json.Unmarshal(c.Inputs, &in) != nil || json.Unmarshal(c.Results, &r) != nil {
			return "", 0
		}
		return fmt.Sprintf("Assessable profits %.2f", in.AssessableProfits), r.TotalTaxPayable

	case domain.TaxTypeCGT:
		var r struct {
			CapitalGain float64 `json:"capital_gain"`
			CGTAmount   float64 `json:"cgt_amount"`
		}
		if json.Unmarshal(c.Results, &r) != nil {
			return "", 0
		}
		return fmt.Sprintf("Capital gain %.2f", r.CapitalGain), r.CGTAmount

	case domain.TaxTypeVAT:
		var r struct {
			NetAmount float64 `json:"net_amount"`
			VATAmount float64 `json:"vat_amount"`
		}
		if json.Unmarshal(c.Results, &r) != nil {
			return "", 0
		}
		return fmt.Sprintf("Net amount %.2f", r.NetAmount), r.VATAmount

	case domain.TaxTypeVATBusiness:
		var r struct {
			OutputVAT float64 `json:"output_vat"`
			NetVAT    float64 `json:"net_vat"`
		}
		if json.Unmarshal(c.Results, &r) != nil {
			return "", 0
		}
		return fmt.Sprintf("Output VAT %.2f", r.OutputVAT), r.NetVAT
	}
	return "", 0
}
