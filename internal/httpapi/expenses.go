package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sharveena123/paypals/internal/ledger"
	"github.com/sharveena123/paypals/internal/middleware"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/money"
	"github.com/sharveena123/paypals/internal/service"
)

// ExpenseHandler exposes expense recording and listing.
type ExpenseHandler struct {
	svc *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

func (h *ExpenseHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.recent)
}

type expenseResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	PaidBy      string `json:"paid_by"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	SpentAt     int64  `json:"spent_at"`
	CreatedAt   int64  `json:"created_at"`
}

func toExpenseResponse(e models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Amount:      money.Format(e.Amount),
		Description: e.Description,
		Category:    e.Category,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}

type splitResponse struct {
	MemberKey string `json:"member_key"`
	Amount    string `json:"amount"`
}

type createExpenseRequest struct {
	GroupID      string   `json:"group_id"`
	PaidBy       string   `json:"paid_by"`
	Amount       string   `json:"amount"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Date         string   `json:"date"` // YYYY-MM-DD, defaults to today
	Method       string   `json:"method"`
	Participants []string `json:"participants"`

	// Method-specific parameters, keyed by member key.
	ExactAmounts map[string]string  `json:"exact_amounts,omitempty"`
	Percentages  map[string]float64 `json:"percentages,omitempty"`
	Weights      map[string]int64   `json:"weights,omitempty"`
}

func (h *ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	amount, err := money.ParseCents(req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	exact := make(map[string]int64, len(req.ExactAmounts))
	for member, s := range req.ExactAmounts {
		cents, err := money.ParseCents(s)
		if err != nil {
			respondError(w, err)
			return
		}
		exact[member] = cents
	}

	var spentAt int64
	if req.Date != "" {
		t, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			respond(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		spentAt = t.Unix()
	}

	expense, splits, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), service.CreateExpenseParams{
		GroupID:      req.GroupID,
		PaidBy:       req.PaidBy,
		Amount:       amount,
		Description:  req.Description,
		Category:     req.Category,
		SpentAt:      spentAt,
		Method:       ledger.Method(req.Method),
		Participants: req.Participants,
		SplitParams: ledger.Params{
			Exact:       exact,
			Percentages: req.Percentages,
			Weights:     req.Weights,
		},
	})
	if err != nil {
		respondError(w, err)
		return
	}

	out := struct {
		Expense expenseResponse `json:"expense"`
		Splits  []splitResponse `json:"splits"`
	}{Expense: toExpenseResponse(*expense)}
	for _, sp := range splits {
		out.Splits = append(out.Splits, splitResponse{MemberKey: sp.MemberKey, Amount: money.Format(sp.Amount)})
	}

	respond(w, http.StatusCreated, out)
}

func (h *ExpenseHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	expenses, err := h.svc.RecentActivity(r.Context(), middleware.GetUserID(r.Context()), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	respond(w, http.StatusOK, out)
}

func (h *ExpenseHandler) listGroup(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	respond(w, http.StatusOK, out)
}
