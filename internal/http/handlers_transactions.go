package http

import (
	"encoding/json"
	"net/http"
	"time"

	"cashtrack/internal/core"
	"cashtrack/internal/storage"
)

type transactionRequest struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      tx.Amount,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func (req transactionRequest) toDomain() (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Type:        core.TransactionType(req.Type),
		Category:    sanitizeInput(req.Category),
		Amount:      req.Amount,
		Description: sanitizeInput(req.Description),
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := req.toDomain()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	id, err := s.ledger.Add(r.Context(), tx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tx.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	start, ok := parseDateParam(r, "start")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, ok := parseDateParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}

	filter := storage.TransactionFilter{
		Start:    start,
		End:      end,
		Category: sanitizeInput(r.URL.Query().Get("category")),
		Type:     core.TransactionType(r.URL.Query().Get("type")),
	}

	txs, err := s.ledger.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := req.toDomain()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.ledger.Update(r.Context(), id, tx); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.ledger.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
