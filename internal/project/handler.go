package project

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/auth"
	"github.com/ouroboros-foundation/portal/internal/transport"
	"github.com/ouroboros-foundation/portal/pkg/logger"
)

type ServiceAPI interface {
	CreateProject(creator access.Identity, dto CreateProjectDTO) (*Project, error)
	GetProject(id int64, requester access.Identity) (*Project, access.Decision, error)
	ListVisibleProjects(requester access.Identity, limit, offset int) ([]*ProjectListEntry, error)
	AddAccessRule(projectID int64, requester access.Identity, dto CreateAccessRuleDTO) (access.Rule, error)
	RemoveAccessRule(projectID, ruleID int64, requester access.Identity) error
	AssignMember(projectID int64, requester access.Identity, dto AssignMemberDTO) (*Assignment, error)
	GetMembers(projectID int64, requester access.Identity) ([]*Assignment, error)
	UpdateStatus(projectID int64, requester access.Identity, status string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := h.Service.CreateProject(user.Identity(), dto)
	if err != nil {
		h.Logger.Error("CreateProject: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, proj)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	proj, decision, err := h.Service.GetProject(projectID, user.Identity())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProjectResponse{Project: proj, Role: string(decision.Role)})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	entries, err := h.Service.ListVisibleProjects(user.Identity(), limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProjectListResponse{Projects: entries})
}

func (h *Handler) AddAccessRule(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	var dto CreateAccessRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.AddAccessRule(projectID, user.Identity(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rule)
}

func (h *Handler) RemoveAccessRule(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	ruleID, err := h.pathID(r, "ruleID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	if err := h.Service.RemoveAccessRule(projectID, ruleID, user.Identity()); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignMember(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	var dto AssignMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.AssignMember(projectID, user.Identity(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, assignment)
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	members, err := h.Service.GetMembers(projectID, user.Identity())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateStatus(projectID, user.Identity(), dto.Status); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
