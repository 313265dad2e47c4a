package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-sync/domain"
	"debt-sync/repository"
	"debt-sync/service"
)

func newTestHandlers() (*DebtHandler, *SyncHandler, *repository.PositionRepositoryMemory) {
	positions := repository.NewPositionRepositoryMemory()
	store := repository.NewRepaymentLogStoreMemory()
	engine := service.NewSyncEngine(store)
	debtHandler := NewDebtHandler(positions, store, service.NewExplanationService(), "")
	syncHandler := NewSyncHandler(positions, store, engine)
	return debtHandler, syncHandler, positions
}

func registerBody(enteredAt time.Time) []byte {
	body := fmt.Sprintf(`{
		"name": "tarjeta",
		"entryBalance": 5000,
		"annualRate": 19.9,
		"monthlyRepayment": 200,
		"repaymentDay": 15,
		"enteredAt": %q
	}`, enteredAt.Format(time.RFC3339))
	return []byte(body)
}

func TestRegisterDebtHandler_OK(t *testing.T) {
	handler, _, _ := newTestHandlers()

	req := httptest.NewRequest(
		http.MethodPost,
		"/debts",
		bytes.NewBuffer(registerBody(time.Now().UTC().AddDate(0, -2, 0))),
	)
	w := httptest.NewRecorder()

	handler.RegisterDebt(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var position domain.DebtPosition
	require.NoError(t, json.NewDecoder(w.Body).Decode(&position))
	assert.NotEmpty(t, position.ID)
	assert.Equal(t, "tarjeta", position.Name)
	assert.Equal(t, 5000.0, position.Config.EntryBalance)
}

func TestRegisterDebtHandler_MethodNotAllowed(t *testing.T) {
	handler, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/debts", nil)
	w := httptest.NewRecorder()

	handler.RegisterDebt(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRegisterDebtHandler_BadRequest(t *testing.T) {
	handler, _, _ := newTestHandlers()

	req := httptest.NewRequest(
		http.MethodPost,
		"/debts",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)
	w := httptest.NewRecorder()

	handler.RegisterDebt(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDebtHandler_RejectsInvalidInput(t *testing.T) {
	handler, _, _ := newTestHandlers()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"entryBalance": 5000, "annualRate": 19.9, "monthlyRepayment": 200, "repaymentDay": 15, "enteredAt": "2024-01-05T00:00:00Z"}`},
		{"zero balance", `{"name": "x", "entryBalance": 0, "annualRate": 19.9, "monthlyRepayment": 200, "repaymentDay": 15, "enteredAt": "2024-01-05T00:00:00Z"}`},
		{"negative rate", `{"name": "x", "entryBalance": 5000, "annualRate": -1, "monthlyRepayment": 200, "repaymentDay": 15, "enteredAt": "2024-01-05T00:00:00Z"}`},
		{"repayment day out of range", `{"name": "x", "entryBalance": 5000, "annualRate": 19.9, "monthlyRepayment": 200, "repaymentDay": 32, "enteredAt": "2024-01-05T00:00:00Z"}`},
		{"future entry date", `{"name": "x", "entryBalance": 5000, "annualRate": 19.9, "monthlyRepayment": 200, "repaymentDay": 15, "enteredAt": "2999-01-05T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/debts", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.RegisterDebt(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetSummaryHandler_OK(t *testing.T) {
	handler, _, positions := newTestHandlers()
	now := time.Now().UTC()

	position := domain.NewDebtPosition("tarjeta", domain.DebtConfiguration{
		EntryBalance:     5000,
		AnnualRate:       19.9,
		MonthlyRepayment: 200,
		RepaymentDay:     15,
		EnteredAt:        now.AddDate(0, -3, 0),
	}, now)
	require.NoError(t, positions.Save(position))

	req := httptest.NewRequest(http.MethodGet, "/debts/"+position.ID+"/summary", nil)
	req.SetPathValue("id", position.ID)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp summaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, position.ID, resp.PositionID)
	assert.Greater(t, resp.Balance, 0.0)
	assert.Less(t, resp.Balance, 5000.0) // repayments elapsed since entry
	assert.NotEmpty(t, resp.FormattedBalance)
}

func TestGetSummaryHandler_NotFound(t *testing.T) {
	handler, _, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/debts/unknown/summary", nil)
	req.SetPathValue("id", "unknown")
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSyncAllHandler_ReturnsResults(t *testing.T) {
	_, handler, positions := newTestHandlers()
	now := time.Now().UTC()

	position := domain.NewDebtPosition("tarjeta", domain.DebtConfiguration{
		EntryBalance:     5000,
		AnnualRate:       19.9,
		MonthlyRepayment: 200,
		RepaymentDay:     15,
		EnteredAt:        now.AddDate(0, -3, 0),
	}, now)
	require.NoError(t, positions.Save(position))

	req := httptest.NewRequest(http.MethodPost, "/debts/sync", nil)
	w := httptest.NewRecorder()

	handler.SyncAll(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var results map[string]domain.SyncResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	result, ok := results[position.ID]
	require.True(t, ok)
	assert.GreaterOrEqual(t, result.NewRepayments, 2)
}

func TestResetBalanceHandler(t *testing.T) {
	_, handler, positions := newTestHandlers()
	now := time.Now().UTC()

	position := domain.NewDebtPosition("tarjeta", domain.DebtConfiguration{
		EntryBalance:     5000,
		AnnualRate:       19.9,
		MonthlyRepayment: 200,
		RepaymentDay:     15,
		EnteredAt:        now.AddDate(0, -1, 0),
	}, now)
	require.NoError(t, positions.Save(position))

	req := httptest.NewRequest(
		http.MethodPost,
		"/debts/"+position.ID+"/reset-balance",
		bytes.NewBufferString(`{"balance": 4000}`),
	)
	req.SetPathValue("id", position.ID)
	w := httptest.NewRecorder()

	handler.ResetBalance(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/debts/unknown/reset-balance", bytes.NewBufferString(`{"balance": 4000}`))
	req.SetPathValue("id", "unknown")
	w = httptest.NewRecorder()

	handler.ResetBalance(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
