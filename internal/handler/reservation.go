package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/service"
)

//go:generate mockgen -destination=mocks/mock_reservation_service.go -package=mocks . ReservationService

// ReservationService is the lifecycle API the reservation endpoints use. It
// is satisfied by *service.ReservationService.
type ReservationService interface {
	SubmitReservation(ctx context.Context, res model.Reservation) (string, error)
	Get(ctx context.Context, id string) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Reservation, error)
	ListApproved(ctx context.Context) ([]model.Reservation, error)
	Transition(ctx context.Context, id string, target model.Status) error
	Approve(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CheckValidity(ctx context.Context, id string) (service.Validity, error)
}

// ReservationHandler serves the customer booking form, the staff
// reservation views and the customer validity lookup.
type ReservationHandler struct {
	Svc ReservationService
	Log *zap.Logger
}

func NewReservationHandler(svc ReservationService, log *zap.Logger) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationHandler{Svc: svc, Log: log}
}

// ----- DTOs -----

// flexID accepts reservation_id as either a JSON string or a JSON number;
// the booking form posts a number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type reservationReq struct {
	ID          flexID `json:"reservation_id"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	ServiceType string `json:"serviceType"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
	Editor      string `json:"editor"`
}

type statusReq struct {
	Status string `json:"status"`
}

// scheduleLayouts lists the accepted schedule formats. The last two are
// what MySQL clients and HTML datetime-local inputs send.
var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseSchedule(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid schedule")
}

// ----- handlers -----

// Create handles POST /reservations. The reservation is stored with no
// status, which reads as Pending.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	schedule, err := parseSchedule(req.Schedule)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule must be RFC 3339 or YYYY-MM-DD HH:MM:SS"})
	}
	id, err := h.Svc.SubmitReservation(c.Request().Context(), model.Reservation{
		ID:          string(req.ID),
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		ServiceType: req.ServiceType,
		Schedule:    schedule,
		Description: req.Description,
		Editor:      req.Editor,
	})
	if err != nil {
		return h.fail(c, "create reservation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Reservation created successfully",
		"reservation_id": id,
	})
}

// List handles GET /reservations with an optional ?status= filter.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		items []model.Reservation
		err   error
	)
	if st := strings.TrimSpace(c.QueryParam("status")); st != "" {
		items, err = h.Svc.ListByStatus(ctx, model.Status(st))
	} else {
		items, err = h.Svc.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, "list reservations", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "get reservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

// Approved handles GET /approved, the staff work queue.
func (h *ReservationHandler) Approved(c echo.Context) error {
	items, err := h.Svc.ListApproved(c.Request().Context())
	if err != nil {
		return h.fail(c, "list approved", err)
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateStatus handles PUT /reservations/:id with body {"status": ...}.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Svc.Transition(c.Request().Context(), c.Param("id"), model.Status(strings.TrimSpace(req.Status))); err != nil {
		return h.fail(c, "update reservation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation updated successfully"})
}

// Approve, Done and Cancel are the explicit staff actions behind
// POST /reservations/:id/{approve,done,cancel}.
func (h *ReservationHandler) Approve(c echo.Context) error {
	return h.action(c, model.StatusApproved, h.Svc.Approve)
}

func (h *ReservationHandler) Done(c echo.Context) error {
	return h.action(c, model.StatusDone, h.Svc.MarkDone)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.action(c, model.StatusCancelled, h.Svc.Cancel)
}

func (h *ReservationHandler) action(c echo.Context, target model.Status, fn func(context.Context, string) error) error {
	id := c.Param("id")
	if err := fn(c.Request().Context(), id); err != nil {
		return h.fail(c, "update reservation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Reservation updated successfully",
		"reservation_id": id,
		"status":         target,
	})
}

// Delete handles DELETE /reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "delete reservation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation deleted successfully"})
}

// Check handles GET /checkReservation/:id. Unknown ids and reservations
// that are Done or Cancelled both answer 404.
func (h *ReservationHandler) Check(c echo.Context) error {
	v, err := h.Svc.CheckValidity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "check reservation", err)
	}
	if !v.Valid {
		return c.JSON(http.StatusNotFound, echo.Map{"isValid": false, "message": "Invalid Reservation ID"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"isValid":     true,
		"status":      v.Status,
		"reservation": v.Reservation,
	})
}

// fail maps lifecycle and store errors to HTTP responses. Only unexpected
// errors are logged.
func (h *ReservationHandler) fail(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
	case errors.Is(err, repository.ErrDuplicateReservation):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Reservation ID already exists"})
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Pending, Approved, Done or Cancelled"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	h.Log.Error(op, zap.String("reservation_id", c.Param("id")), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
}
