package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharveena123/paypals/internal/middleware"
	"github.com/sharveena123/paypals/internal/models"
	"github.com/sharveena123/paypals/internal/service"
)

// GroupHandler exposes group and membership management.
type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (h *GroupHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{groupID}", h.get)
	r.Delete("/{groupID}", h.delete)
	r.Post("/{groupID}/members", h.addMember)
	r.Get("/{groupID}/members", h.listMembers)
}

type groupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   int64  `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

type memberResponse struct {
	Key         string `json:"key"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	JoinedAt    int64  `json:"joined_at"`
}

func toMemberResponse(m models.Member) memberResponse {
	return memberResponse{
		Key:         m.Key,
		Kind:        string(m.Kind),
		DisplayName: m.DisplayName,
		JoinedAt:    m.JoinedAt,
	}
}

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GuestNames  []string `json:"guest_names"`
}

func (h *GroupHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decode(w, r, &req) {
		return
	}

	group, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), service.CreateGroupParams{
		Name:        req.Name,
		Description: req.Description,
		GuestNames:  req.GuestNames,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, toGroupResponse(group))
}

func (h *GroupHandler) list(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	respond(w, http.StatusOK, out)
}

func (h *GroupHandler) get(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(group))
}

func (h *GroupHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	Email     string `json:"email,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
}

func (h *GroupHandler) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !decode(w, r, &req) {
		return
	}

	member, err := h.svc.AddMember(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"),
		service.AddMemberParams{Email: req.Email, GuestName: req.GuestName})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *GroupHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	respond(w, http.StatusOK, out)
}
