package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Rhymond/go-money"

	"debt-sync/domain"
	"debt-sync/repository"
	"debt-sync/service"
)

// DebtHandler owns the debt position endpoints: registration, summary and
// deletion. It plays the portfolio-layer role the engine treats as external.
type DebtHandler struct {
	positions repository.PositionRepository
	store     repository.RepaymentLogStore
	explainer *service.ExplanationService
	currency  string
}

func NewDebtHandler(
	positions repository.PositionRepository,
	store repository.RepaymentLogStore,
	explainer *service.ExplanationService,
	currency string,
) *DebtHandler {
	if currency == "" {
		currency = money.USD
	}
	return &DebtHandler{
		positions: positions,
		store:     store,
		explainer: explainer,
		currency:  currency,
	}
}

type registerDebtRequest struct {
	Name string `json:"name"`
	domain.DebtConfiguration
}

type summaryResponse struct {
	PositionID string `json:"positionId"`
	Name       string `json:"name"`
	domain.DebtSummary
	AnnualRate             float64 `json:"annualRate"`
	MonthlyRepayment       float64 `json:"monthlyRepayment"`
	FormattedBalance       string  `json:"formattedBalance"`
	FormattedTotalInterest string  `json:"formattedTotalInterest"`
	Explanation            string  `json:"explanation,omitempty"`
}

// RegisterDebt registers a new debt position and returns it with its id.
func (h *DebtHandler) RegisterDebt(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input registerDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateDebtInput(input, time.Now().UTC()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	position := domain.NewDebtPosition(input.Name, input.DebtConfiguration, time.Now().UTC())
	if err := h.positions.Save(position); err != nil {
		http.Error(w, "failed to save position", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(position)
}

// GetSummary returns the current balance and display metrics for one debt,
// computed on top of the persisted applied-repayment count.
func (h *DebtHandler) GetSummary(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	position, ok := h.positions.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "debt position not found", http.StatusNotFound)
		return
	}

	entry, _, err := h.store.Entry(r.Context(), position.ID)
	if err != nil {
		http.Error(w, "failed to read repayment log", http.StatusInternalServerError)
		return
	}

	summary := service.Summarize(position.Config, entry.AppliedCount, time.Now().UTC())

	resp := summaryResponse{
		PositionID:             position.ID,
		Name:                   position.Name,
		DebtSummary:            summary,
		AnnualRate:             position.Config.AnnualRate,
		MonthlyRepayment:       position.Config.MonthlyRepayment,
		FormattedBalance:       h.formatAmount(summary.Balance),
		FormattedTotalInterest: h.formatAmount(summary.TotalInterest),
		Explanation:            h.explainer.GeneratePayoffExplanation(position.Name, summary),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteDebt removes a position along with its repayment log entry.
func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if !h.positions.Delete(id) {
		http.Error(w, "debt position not found", http.StatusNotFound)
		return
	}

	if err := h.store.Remove(r.Context(), id); err != nil {
		http.Error(w, "failed to update repayment log", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DebtHandler) formatAmount(value float64) string {
	return money.New(int64(math.Round(value*100)), h.currency).Display()
}

func validateDebtInput(input registerDebtRequest, now time.Time) error {
	if input.Name == "" {
		return errors.New("nombre de deuda no puede estar vacío")
	}
	if input.EntryBalance <= 0 {
		return errors.New("saldo inicial inválido")
	}
	if input.EntryBalance > service.MaxDebtAmount {
		return fmt.Errorf("saldo excede el máximo permitido de $%.2f", service.MaxDebtAmount)
	}
	if input.AnnualRate < 0 {
		return errors.New("tasa inválida")
	}
	if input.AnnualRate > service.MaxInterestRate {
		return fmt.Errorf("tasa de interés excede el máximo permitido de %.2f%%", service.MaxInterestRate)
	}
	if input.MonthlyRepayment <= 0 {
		return errors.New("pago mensual inválido")
	}
	if input.RepaymentDay < service.MinRepaymentDay || input.RepaymentDay > service.MaxRepaymentDay {
		return errors.New("día de pago inválido, debe estar entre 1 y 31")
	}
	if input.EnteredAt.IsZero() || input.EnteredAt.After(now) {
		return errors.New("fecha de ingreso inválida")
	}
	if (input.TermStart == nil) != (input.TermEnd == nil) {
		return errors.New("el plazo requiere fecha de inicio y de fin")
	}
	if input.TermStart != nil && input.TermEnd.Before(*input.TermStart) {
		return errors.New("fin del plazo anterior al inicio")
	}
	return nil
}
