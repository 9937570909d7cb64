package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"taxpadi/internal/handler"
	"taxpadi/internal/service"
	"taxpadi/internal/tax"
	"taxpadi/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTaxHandler wires the handler with the real engines so the endpoint
// tests exercise actual computation.
func newTaxHandler() *handler.TaxHandler {
	calc := tax.NewCalculator(tax.DefaultRates())
	svc := service.NewCalculationService(calc, new(mocks.MockCalculationRepo), new(mocks.MockCache))
	return handler.NewTaxHandler(svc, calc.Rates())
}

func postJSON(t *testing.T, h gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h(c)
	return w
}

func TestTaxHandler_CalculatePIT(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculatePIT, "/api/v1/tax/pit", map[string]interface{}{
		"incomes": []map[string]interface{}{
			{"category": "salary", "amount": 1_000_000},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    tax.PITResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 30_000, resp.Data.TotalTax, 0.01)
}

func TestTaxHandler_CalculatePIT_NegativeAmount(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculatePIT, "/api/v1/tax/pit", map[string]interface{}{
		"incomes": []map[string]interface{}{
			{"category": "salary", "amount": -500},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NEGATIVE_AMOUNT", resp.Error.Code)
}

func TestTaxHandler_CalculateCIT(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculateCIT, "/api/v1/tax/cit", map[string]interface{}{
		"turnover":           200_000_000,
		"assessable_profits": 10_000_000,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tax.CITResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 3_400_000, resp.Data.TotalTaxPayable, 0.01)
}

func TestTaxHandler_CalculateCGT(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculateCGT, "/api/v1/tax/cgt", map[string]interface{}{
		"taxpayer_type":    "individual",
		"sale_proceeds":    2_000_000,
		"acquisition_cost": 500_000,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tax.CGTResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 105_000, resp.Data.CGTAmount, 0.01)
}

func TestTaxHandler_CalculateVAT(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculateVAT, "/api/v1/tax/vat", map[string]interface{}{
		"amount": 100_000,
		"mode":   "exclusive",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tax.VATResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 7_500, resp.Data.VATAmount, 0.01)
	assert.InDelta(t, 107_500, resp.Data.GrossAmount, 0.01)
}

func TestTaxHandler_CalculateVAT_MissingMode(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculateVAT, "/api/v1/tax/vat", map[string]interface{}{
		"amount": 100_000,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaxHandler_CalculateBusinessVAT(t *testing.T) {
	h := newTaxHandler()

	w := postJSON(t, h.CalculateBusinessVAT, "/api/v1/tax/vat/business", map[string]interface{}{
		"output_vat": 50_000,
		"input_vat":  80_000,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tax.VATBusinessResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, -30_000, resp.Data.NetVAT, 0.01)
	assert.True(t, resp.Data.IsRefundable)
}

func TestTaxHandler_Rates(t *testing.T) {
	h := newTaxHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/tax/rates", nil)

	h.Rates(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tax.Rates `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 7.5, resp.Data.VATRatePct, 0.001)
	assert.Len(t, resp.Data.PITBrackets, 6)
}
