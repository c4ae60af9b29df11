package department

import (
	"log/slog"
	"net/http"

	"github.com/ouroboros-foundation/portal/internal/transport"
	"github.com/ouroboros-foundation/portal/pkg/logger"
)

type ServiceAPI interface {
	GetAllDepartments() ([]DepartmentResponse, error)
	GetAllRanks() ([]RankResponse, error)
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

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAllDepartments()
	if err != nil {
		h.Logger.Error("GetDepartments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DepartmentsResponse{Departments: departments})
}

func (h *Handler) GetRanks(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.Service.GetAllRanks()
	if err != nil {
		h.Logger.Error("GetRanks: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RanksResponse{Ranks: ranks})
}
