package reception

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/reception/internal/domain/intake"
	"github.com/clinic/reception/internal/domain/workflow"
	"github.com/clinic/reception/internal/platform/auth"
	"github.com/clinic/reception/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("receptionist", "doctor"))
	readGroup.GET("/receptions", h.ListReceptions)
	readGroup.GET("/receptions/:id", h.GetReception)

	writeGroup := api.Group("", auth.RequireRole("receptionist"))
	writeGroup.POST("/receptions", h.CreateReception)
	writeGroup.PUT("/receptions/:id", h.UpdateReception)
	writeGroup.POST("/receptions/:id/transition", h.TransitionReception)
	writeGroup.DELETE("/receptions/:id", h.DeleteReception)
}

// validationResponse pairs the stored record with the validation trace so
// clients see warnings even on a successful create.
type validationResponse struct {
	Reception *Reception     `json:"reception,omitempty"`
	Result    *intake.Result `json:"result"`
}

func (h *Handler) CreateReception(c echo.Context) error {
	var rec Reception
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actorID := auth.ActorIDFromContext(c.Request().Context())
	result, err := h.svc.Create(c.Request().Context(), &rec, actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !result.Valid {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Result: result})
	}
	return c.JSON(http.StatusCreated, validationResponse{Reception: &rec, Result: result})
}

func (h *Handler) GetReception(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "reception not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListReceptions(c echo.Context) error {
	pg := pagination.FromContext(c)

	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		recs, total, err := h.svc.ListByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg.Limit, pg.Offset))
	}

	recs, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateReception(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rec Reception
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.ID = id
	actorID := auth.ActorIDFromContext(c.Request().Context())
	result, err := h.svc.Update(c.Request().Context(), &rec, actorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reception not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !result.Valid {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Result: result})
	}
	return c.JSON(http.StatusOK, validationResponse{Reception: &rec, Result: result})
}

type transitionRequest struct {
	Target string            `json:"target"`
	Extra  map[string]string `json:"extra,omitempty"`
}

func (h *Handler) TransitionReception(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	target, err := workflow.ParseState(req.Target)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actorID := auth.ActorIDFromContext(c.Request().Context())
	outcome, err := h.svc.TransitionState(c.Request().Context(), id, target, actorID, req.Extra)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reception not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !outcome.Valid {
		return c.JSON(http.StatusUnprocessableEntity, outcome)
	}
	return c.JSON(http.StatusOK, outcome)
}

func (h *Handler) DeleteReception(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
