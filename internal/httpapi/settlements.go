package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharveena123/paypals/internal/middleware"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/money"
	"github.com/sharveena123/paypals/internal/service"
)

// SettlementHandler exposes settlement recording and completion.
type SettlementHandler struct {
	svc *service.SettlementService
}

func NewSettlementHandler(svc *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

func (h *SettlementHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/{settlementID}/complete", h.complete)
}

type settlementResponse struct {
	ID         string `json:"id"`
	GroupID    string `json:"group_id"`
	FromMember string `json:"from_member"`
	ToMember   string `json:"to_member"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	SettledAt  int64  `json:"settled_at,omitempty"`
}

func toSettlementResponse(s models.Settlement) settlementResponse {
	return settlementResponse{
		ID:         s.ID,
		GroupID:    s.GroupID,
		FromMember: s.FromMember,
		ToMember:   s.ToMember,
		Amount:     money.Format(s.Amount),
		Status:     string(s.Status),
		Note:       s.Note,
		CreatedAt:  s.CreatedAt,
		SettledAt:  s.SettledAt,
	}
}

type createSettlementRequest struct {
	GroupID    string `json:"group_id"`
	FromMember string `json:"from_member"`
	ToMember   string `json:"to_member"`
	Amount     string `json:"amount"`
	Note       string `json:"note"`
	Pending    bool   `json:"pending"`
}

func (h *SettlementHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSettlementRequest
	if !decode(w, r, &req) {
		return
	}

	amount, err := money.ParseCents(req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}

	settlement, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), service.CreateSettlementParams{
		GroupID:    req.GroupID,
		FromMember: req.FromMember,
		ToMember:   req.ToMember,
		Amount:     amount,
		Note:       req.Note,
		Pending:    req.Pending,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, toSettlementResponse(*settlement))
}

func (h *SettlementHandler) complete(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.svc.Complete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "settlementID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, toSettlementResponse(*settlement))
}

func (h *SettlementHandler) listGroup(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.svc.ListGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, toSettlementResponse(s))
	}
	respond(w, http.StatusOK, out)
}
