package workflow

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/reception/internal/platform/auth"
)

type Handler struct {
	guard *Guard
}

func NewHandler(guard *Guard) *Handler {
	return &Handler{guard: guard}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("receptionist", "doctor", "nurse"))
	g.POST("/workflow/transitions/check", h.CheckTransition)
}

// checkTransitionRequest is the wire shape for a transition check.
type checkTransitionRequest struct {
	ReceptionID  uuid.UUID         `json:"reception_id"`
	CurrentState string            `json:"current_state"`
	TargetState  string            `json:"target_state"`
	ActorID      uuid.UUID         `json:"actor_id"`
	PatientID    uuid.UUID         `json:"patient_id,omitempty"`
	DoctorID     uuid.UUID         `json:"doctor_id,omitempty"`
	Date         time.Time         `json:"date,omitempty"`
	ServiceIDs   []uuid.UUID       `json:"service_ids,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// CheckTransition validates a lifecycle transition without applying it.
func (h *Handler) CheckTransition(c echo.Context) error {
	var req checkTransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	from, err := ParseState(req.CurrentState)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	to, err := ParseState(req.TargetState)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID := req.ActorID
	if actorID == uuid.Nil {
		actorID = auth.ActorIDFromContext(c.Request().Context())
	}

	tc := TransitionContext{
		ReceptionID: req.ReceptionID,
		ActorID:     actorID,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		ServiceIDs:  req.ServiceIDs,
		Extra:       req.Extra,
	}

	outcome := h.guard.ValidateTransition(c.Request().Context(), from, to, tc)
	return c.JSON(http.StatusOK, outcome)
}
