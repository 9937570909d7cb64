package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"taxpadi/internal/domain"
	"taxpadi/internal/service"
	"taxpadi/mocks"
)

func savedPITCalculation(userID uuid.UUID) domain.Calculation {
	inputs, _ := json.Marshal(map[string]interface{}{
		"incomes": []map[string]interface{}{{"category": "salary", "amount": 1_000_000}},
	})
	results, _ := json.Marshal(map[string]interface{}{
		"taxable_income": 1_000_000.0,
		"total_tax":      30_000.0,
	})
	return domain.Calculation{
		ID:        uuid.New(),
		UserID:    userID,
		TaxType:   domain.TaxTypePIT,
		Label:     "Salary 2026",
		Inputs:    inputs,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}
}

func TestExportService_InlineWorkbook(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	svc := service.NewExportService(calcRepo, nil, "", 0)
	userID := uuid.New()

	calcs := []domain.Calculation{savedPITCalculation(userID)}
	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, mock.Anything).
		Return(calcs, 1, nil)

	out, err := svc.ExportHistory(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, out.DownloadURL)
	assert.NotEmpty(t, out.Content)
	assert.Contains(t, out.Filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(out.Content))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Calculations")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Tax Type", rows[0][1])
	assert.Equal(t, "pit", rows[1][1])
	assert.Equal(t, "Salary 2026", rows[1][2])
}

func TestExportService_UploadsAndPresigns(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(calcRepo, storage, "taxpadi-exports", 0)
	userID := uuid.New()

	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, mock.Anything).
		Return([]domain.Calculation{savedPITCalculation(userID)}, 1, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil)
	storage.On("PresignDownload", mock.Anything, "taxpadi-exports", mock.Anything, mock.Anything).
		Return("https://example.com/signed", nil)

	out, err := svc.ExportHistory(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", out.DownloadURL)
	assert.Empty(t, out.Content)
	storage.AssertExpectations(t)
}

func TestExportService_UploadFailure(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(calcRepo, storage, "taxpadi-exports", 0)
	userID := uuid.New()

	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, mock.Anything).
		Return([]domain.Calculation{}, 0, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.ExportHistory(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrExportFailed)
}

func TestExportService_EmptyHistoryStillExports(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	svc := service.NewExportService(calcRepo, nil, "", 0)
	userID := uuid.New()

	calcRepo.On("ListByUser", mock.Anything, userID, domain.TaxType(""), 0, mock.Anything).
		Return([]domain.Calculation{}, 0, nil)

	out, err := svc.ExportHistory(context.Background(), userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Content)
}
