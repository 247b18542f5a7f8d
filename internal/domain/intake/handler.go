package intake

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/reception/internal/platform/auth"
)

type Handler struct {
	orch *Orchestrator
}

func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{orch: orch}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("receptionist", "doctor"))
	g.POST("/intake/validate", h.ValidateCreate)
	g.POST("/intake/:id/validate", h.ValidateEdit)
}

// ValidateCreate runs the full validation pipeline for a new reception
// without persisting anything.
func (h *Handler) ValidateCreate(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Actor == uuid.Nil {
		req.Actor = auth.ActorIDFromContext(c.Request().Context())
	}
	result := h.orch.Validate(c.Request().Context(), &req, ModeCreate)
	return c.JSON(http.StatusOK, result)
}

// ValidateEdit runs the pipeline for an edit of an existing reception.
func (h *Handler) ValidateEdit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req EditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.ReceptionID = id
	if req.Actor == uuid.Nil {
		req.Actor = auth.ActorIDFromContext(c.Request().Context())
	}
	result := h.orch.Validate(c.Request().Context(), &req, ModeEdit)
	return c.JSON(http.StatusOK, result)
}
