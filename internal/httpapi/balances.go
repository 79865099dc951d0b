package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharveena123/paypals/internal/middleware"
	"github.com/sharveena123/paypals/internal/money"
	"github.com/sharveena123/paypals/internal/service"
)

// BalanceHandler exposes the derived balance views. All numbers here are
// recomputed from the record set on every request.
type BalanceHandler struct {
	svc *service.BalanceService
}

func NewBalanceHandler(svc *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{svc: svc}
}

func (h *BalanceHandler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/friends/{friendKey}", h.friend)
}

type summaryResponse struct {
	TotalSpent string `json:"total_spent"`
	YouOwe     string `json:"you_owe"`
	YouAreOwed string `json:"you_are_owed"`
}

func (h *BalanceHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, summaryResponse{
		TotalSpent: money.Format(summary.TotalSpent),
		YouOwe:     money.Format(summary.YouOwe),
		YouAreOwed: money.Format(summary.YouAreOwed),
	})
}

type memberBalanceResponse struct {
	MemberKey   string `json:"member_key"`
	DisplayName string `json:"display_name"`
	Net         string `json:"net"`
}

type paymentResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type groupBalancesResponse struct {
	UserNet  string                  `json:"user_net"`
	Members  []memberBalanceResponse `json:"members"`
	Payments []paymentResponse       `json:"suggested_payments"`
}

func (h *BalanceHandler) group(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Group(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := groupBalancesResponse{UserNet: money.Format(view.UserNet)}
	for _, mb := range view.Members {
		out.Members = append(out.Members, memberBalanceResponse{
			MemberKey:   mb.Member.Key,
			DisplayName: mb.Member.DisplayName,
			Net:         money.Format(mb.Net),
		})
	}
	for _, p := range view.Payments {
		out.Payments = append(out.Payments, paymentResponse{
			From:   p.From,
			To:     p.To,
			Amount: money.Format(p.Amount),
		})
	}
	respond(w, http.StatusOK, out)
}

type friendBalanceResponse struct {
	FriendKey string `json:"friend_key"`
	Net       string `json:"net"` // positive: the friend owes you
}

func (h *BalanceHandler) friend(w http.ResponseWriter, r *http.Request) {
	friendKey := chi.URLParam(r, "friendKey")
	net, err := h.svc.Friend(r.Context(), middleware.GetUserID(r.Context()), friendKey)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, friendBalanceResponse{FriendKey: friendKey, Net: money.Format(net)})
}

type categoryResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

func (h *BalanceHandler) categories(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.CategoryReport(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryResponse{Category: ct.Category, Amount: money.Format(ct.Amount)})
	}
	respond(w, http.StatusOK, out)
}
