package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"debt-sync/repository"
	"debt-sync/service"
)

// SyncHandler exposes the repayment catch-up pass and the manual balance
// correction.
type SyncHandler struct {
	positions repository.PositionRepository
	store     repository.RepaymentLogStore
	engine    *service.SyncEngine
}

func NewSyncHandler(
	positions repository.PositionRepository,
	store repository.RepaymentLogStore,
	engine *service.SyncEngine,
) *SyncHandler {
	return &SyncHandler{positions: positions, store: store, engine: engine}
}

// SyncAll reconciles every registered position in a single pass and prunes
// log entries orphaned by deleted positions.
func (h *SyncHandler) SyncAll(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	positions := h.positions.List()

	results, err := h.engine.SyncMany(r.Context(), positions, time.Now().UTC())
	if err != nil {
		http.Error(w, "sync failed", http.StatusInternalServerError)
		return
	}

	// Recolectar entradas huérfanas de posiciones ya eliminadas.
	active := make(map[string]struct{}, len(positions))
	for _, position := range positions {
		active[position.ID] = struct{}{}
	}
	if err := h.store.Prune(r.Context(), active); err != nil {
		log.Printf("Warning: failed to prune repayment log: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

type resetBalanceRequest struct {
	Balance float64 `json:"balance"`
}

// ResetBalance overwrites the cached balance of one position after a manual
// correction, keeping its applied-repayment history.
func (h *SyncHandler) ResetBalance(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if _, ok := h.positions.Get(id); !ok {
		http.Error(w, "debt position not found", http.StatusNotFound)
		return
	}

	var input resetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.Balance < 0 {
		http.Error(w, "saldo inválido", http.StatusBadRequest)
		return
	}

	if err := h.engine.ResetCachedBalance(r.Context(), id, input.Balance, time.Now().UTC()); err != nil {
		http.Error(w, "failed to reset balance", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
