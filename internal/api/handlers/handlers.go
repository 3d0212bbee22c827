// Package handlers exposes the spending-analysis workflow over HTTP. The
// server owns the generation client and the transaction source; callers
// supply the budget and, for the chat endpoint, the conversation they are
// carrying between questions.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dvloznov/budget-coach/internal/api/middleware"
	"github.com/dvloznov/budget-coach/internal/coach"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CoachHandler serves the analyze and chat endpoints.
type CoachHandler struct {
	workflow      *coach.Workflow
	source        coach.TransactionSource
	defaultBudget decimal.Decimal
	windowDays    int
	log           zerolog.Logger
}

// NewCoachHandler creates the handler. source may be nil, in which case
// every request must carry its own transactions.
func NewCoachHandler(workflow *coach.Workflow, source coach.TransactionSource, defaultBudget decimal.Decimal, windowDays int, log zerolog.Logger) *CoachHandler {
	return &CoachHandler{
		workflow:      workflow,
		source:        source,
		defaultBudget: defaultBudget,
		windowDays:    windowDays,
		log:           log,
	}
}

// transactionPayload is the wire form of a transaction.
type transactionPayload struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
}

func (p transactionPayload) toTransaction() (coach.Transaction, error) {
	date, err := time.Parse(dateLayout, p.Date)
	if err != nil {
		return coach.Transaction{}, fmt.Errorf("bad date %q (want YYYY-MM-DD)", p.Date)
	}
	return coach.Transaction{
		Date:        date,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Merchant:    p.Merchant,
	}, nil
}

type analyzeRequest struct {
	Transactions  []transactionPayload `json:"transactions"`
	MonthlyBudget *decimal.Decimal     `json:"monthly_budget"`
	WindowDays    int                  `json:"window_days"`
}

type analyzeResponse struct {
	Insights             []coach.SpendingInsight `json:"insights"`
	CurrentMonthSpending decimal.Decimal         `json:"current_month_spending"`
	Conversation         []coach.Message         `json:"conversation"`
}

// Analyze handles POST /api/analyze.
func (h *CoachHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txs, ok := h.resolveTransactions(w, r, req.Transactions, req.WindowDays)
	if !ok {
		return
	}

	rs := &coach.RunState{
		Transactions:  txs,
		MonthlyBudget: h.budgetOrDefault(req.MonthlyBudget),
	}

	if err := h.workflow.Run(ctx, rs); err != nil {
		h.log.Error().Err(err).Msg("Workflow run failed")
		middleware.WriteError(w, http.StatusBadGateway, "Analysis failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analyzeResponse{
		Insights:             rs.Insights,
		CurrentMonthSpending: rs.CurrentMonthSpending,
		Conversation:         rs.Conversation,
	})
}

type chatRequest struct {
	Question      string               `json:"question"`
	Transactions  []transactionPayload `json:"transactions"`
	MonthlyBudget *decimal.Decimal     `json:"monthly_budget"`
	WindowDays    int                  `json:"window_days"`
	Conversation  []coach.Message      `json:"conversation"`
}

type chatResponse struct {
	Reply                string          `json:"reply"`
	Conversation         []coach.Message `json:"conversation"`
	CurrentMonthSpending decimal.Decimal `json:"current_month_spending"`
}

// Chat handles POST /api/chat.
func (h *CoachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	txs, ok := h.resolveTransactions(w, r, req.Transactions, req.WindowDays)
	if !ok {
		return
	}

	rs := &coach.RunState{
		Transactions:  txs,
		MonthlyBudget: h.budgetOrDefault(req.MonthlyBudget),
		Conversation:  req.Conversation,
	}

	reply, err := h.workflow.Ask(ctx, rs, req.Question)
	if err != nil {
		h.log.Error().Err(err).Msg("Chat generation failed")
		middleware.WriteError(w, http.StatusBadGateway, "Chat failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, chatResponse{
		Reply:                reply,
		Conversation:         rs.Conversation,
		CurrentMonthSpending: rs.CurrentMonthSpending,
	})
}

// Health handles GET /api/healthz.
func (h *CoachHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveTransactions takes the request's transactions, or falls back to
// fetching from the configured source. On failure it writes the error
// response and returns ok=false.
func (h *CoachHandler) resolveTransactions(w http.ResponseWriter, r *http.Request, payload []transactionPayload, windowDays int) ([]coach.Transaction, bool) {
	if payload != nil {
		txs := make([]coach.Transaction, 0, len(payload))
		for i, p := range payload {
			tx, err := p.toTransaction()
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("transaction %d: %v", i, err))
				return nil, false
			}
			txs = append(txs, tx)
		}
		return txs, true
	}

	if h.source == nil {
		middleware.WriteError(w, http.StatusBadRequest, "No transaction source configured; supply transactions in the request")
		return nil, false
	}

	if windowDays <= 0 {
		windowDays = h.windowDays
	}

	txs, err := h.source.Fetch(r.Context(), windowDays)
	if err != nil {
		h.log.Error().Err(err).Msg("Transaction fetch failed")
		middleware.WriteError(w, http.StatusBadGateway, "Could not fetch transactions")
		return nil, false
	}
	return txs, true
}

func (h *CoachHandler) budgetOrDefault(budget *decimal.Decimal) decimal.Decimal {
	if budget != nil {
		return *budget
	}
	return h.defaultBudget
}
