package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// Handler exposes the five lifecycle operations of one backend over HTTP.
// Completed transactions are kept in memory so that void, capture and refund
// can refer to them by id, and every success is recorded in the journal.
type Handler struct {
	system   pay.System
	resolver pay.AccountResolver
	params   pay.ConnectionParams
	journal  pay.Journal

	mu           sync.Mutex
	transactions map[string]*pay.Transaction
}

func NewHandler(system pay.System, resolver pay.AccountResolver, params pay.ConnectionParams, journal pay.Journal) *Handler {
	return &Handler{
		system:       system,
		resolver:     resolver,
		params:       params,
		journal:      journal,
		transactions: make(map[string]*pay.Transaction),
	}
}

type AccountRef struct {
	Identity   string `json:"identity"`
	IdentityID string `json:"identity_id"`
	AccountID  string `json:"account_id"`
}

func (r AccountRef) toAccount() pay.Account {
	return pay.NewAccount(r.Identity, r.IdentityID, r.AccountID)
}

type ChargeRequest struct {
	From        AccountRef `json:"from"`
	To          AccountRef `json:"to"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Capture     *bool      `json:"capture,omitempty"`
	Description string     `json:"description,omitempty"`
}

type TransferRequest struct {
	To          AccountRef `json:"to"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Description string     `json:"description,omitempty"`
}

type TransactionRequest struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Description   string `json:"description,omitempty"`
}

type TransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Processor     string `json:"processor"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *Handler) HandleCharge(w http.ResponseWriter, r *http.Request) {
	var req ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", "")
		return
	}

	amount, err := pay.ParseAmount(req.Currency, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", "")
		return
	}

	session, err := h.system.StartSession(h.params, &pay.SessionContext{Resolver: h.resolver})
	if err != nil {
		h.writePayError(w, err)
		return
	}
	defer func() { _ = session.Close() }()

	capture := true
	if req.Capture != nil {
		capture = *req.Capture
	}

	tx, err := h.system.Charge(r.Context(), session, req.From.toAccount(), req.To.toAccount(), amount, capture, req.Description, nil)
	if err != nil {
		h.writePayError(w, err)
		return
	}

	h.remember(r, tx)
	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", "")
		return
	}

	amount, err := pay.ParseAmount(req.Currency, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", "")
		return
	}

	session, err := h.system.StartSession(h.params, &pay.SessionContext{Resolver: h.resolver})
	if err != nil {
		h.writePayError(w, err)
		return
	}
	defer func() { _ = session.Close() }()

	tx, err := h.system.Transfer(r.Context(), session, pay.EmptyAccount, req.To.toAccount(), amount, req.Description, nil)
	if err != nil {
		h.writePayError(w, err)
		return
	}

	h.remember(r, tx)
	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) HandleVoid(w http.ResponseWriter, r *http.Request) {
	h.handlePostAuth(w, r, func(req TransactionRequest, session pay.Session, charge *pay.Transaction, amount *pay.Amount) error {
		return h.system.Void(r.Context(), session, charge, req.Description, nil)
	})
}

func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	h.handlePostAuth(w, r, func(req TransactionRequest, session pay.Session, charge *pay.Transaction, amount *pay.Amount) error {
		return h.system.Capture(r.Context(), session, charge, amount, req.Description, nil)
	})
}

func (h *Handler) HandleRefund(w http.ResponseWriter, r *http.Request) {
	h.handlePostAuth(w, r, func(req TransactionRequest, session pay.Session, charge *pay.Transaction, amount *pay.Amount) error {
		return h.system.Refund(r.Context(), session, charge, amount, req.Description, nil)
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap := h.system.Stats().Snapshot()
	out := make(map[string]any, len(snap))
	for op, st := range snap {
		totals := make(map[string]string, len(st.Totals))
		for cur, v := range st.Totals {
			totals[cur] = v.String()
		}
		out[string(op)] = map[string]any{
			"attempts":  st.Attempts,
			"successes": st.Successes,
			"errors":    st.Errors,
			"totals":    totals,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type postAuthFunc func(req TransactionRequest, session pay.Session, charge *pay.Transaction, amount *pay.Amount) error

func (h *Handler) handlePostAuth(w http.ResponseWriter, r *http.Request, run postAuthFunc) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", "")
		return
	}

	charge := h.lookup(req.TransactionID)
	if charge == nil {
		writeError(w, http.StatusNotFound, "transaction not found", string(pay.KindNotFound))
		return
	}

	var amount *pay.Amount
	if req.Amount != "" {
		a, err := pay.ParseAmount(req.Currency, req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount", "")
			return
		}
		amount = &a
	}

	session, err := h.system.StartSession(h.params, &pay.SessionContext{Resolver: h.resolver})
	if err != nil {
		h.writePayError(w, err)
		return
	}
	defer func() { _ = session.Close() }()

	if err := run(req, session, charge, amount); err != nil {
		h.writePayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) remember(r *http.Request, tx *pay.Transaction) {
	h.mu.Lock()
	h.transactions[tx.ID()] = tx
	h.mu.Unlock()
	_ = h.journal.Record(r.Context(), tx)
}

func (h *Handler) lookup(id string) *pay.Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.transactions[id]
}

func (h *Handler) writePayError(w http.ResponseWriter, err error) {
	kind := pay.KindOf(err)
	writeError(w, statusForKind(kind), err.Error(), string(kind))
}

func statusForKind(kind pay.Kind) int {
	switch kind {
	case pay.KindUnknownAccount, pay.KindNotFound:
		return http.StatusNotFound
	case pay.KindDeclined, pay.KindInvalidCardNumber, pay.KindInvalidExpirationDate,
		pay.KindInvalidCVC, pay.KindInvalidAddress, pay.KindCardError:
		return http.StatusPaymentRequired
	case pay.KindBadRequest:
		return http.StatusBadRequest
	case pay.KindUnauthorized:
		return http.StatusUnauthorized
	case pay.KindServerUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toResponse(tx *pay.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: tx.ID(),
		Type:          string(tx.Type()),
		Status:        string(tx.Status()),
		Processor:     tx.Processor(),
		Amount:        tx.Amount().Value().String(),
		Currency:      tx.Amount().Currency(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}
