package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/mock/gomock"

	"github.com/iliyamo/print-shop-booking/internal/handler/mocks"
	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/service"
)

func newReservationEcho(t *testing.T) (*echo.Echo, *mocks.MockReservationService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReservationService(ctrl)
	h := NewReservationHandler(svc, nil)

	e := echo.New()
	e.POST("/reservations", h.Create)
	e.GET("/reservations", h.List)
	e.GET("/reservations/:id", h.Get)
	e.PUT("/reservations/:id", h.UpdateStatus)
	e.DELETE("/reservations/:id", h.Delete)
	e.POST("/reservations/:id/approve", h.Approve)
	e.POST("/reservations/:id/done", h.Done)
	e.POST("/reservations/:id/cancel", h.Cancel)
	e.GET("/approved", h.Approved)
	e.GET("/checkReservation/:id", h.Check)
	return e, svc
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestReservationHandler_Create(t *testing.T) {
	t.Run("numeric id and mysql schedule", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		want := model.Reservation{
			ID:          "1700000000000",
			FirstName:   "Ana",
			LastName:    "Reyes",
			ServiceType: "Photo",
			Schedule:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Editor:      "Ed",
		}
		svc.EXPECT().SubmitReservation(gomock.Any(), want).Return("1700000000000", nil)

		rec := serve(e, http.MethodPost, "/reservations",
			`{"reservation_id":1700000000000,"firstName":"Ana","lastName":"Reyes","serviceType":"Photo","schedule":"2024-05-01 10:00:00","editor":"Ed"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		got := decode(t, rec)
		if got["reservation_id"] != "1700000000000" || got["message"] != "Reservation created successfully" {
			t.Fatalf("unexpected body %v", got)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		e, _ := newReservationEcho(t)
		if rec := serve(e, http.MethodPost, "/reservations", "{"); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("bad schedule", func(t *testing.T) {
		e, _ := newReservationEcho(t)
		if rec := serve(e, http.MethodPost, "/reservations", `{"firstName":"Ana","schedule":"tomorrow"}`); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().SubmitReservation(gomock.Any(), gomock.Any()).Return("", repository.ErrDuplicateReservation)
		rec := serve(e, http.MethodPost, "/reservations", `{"reservation_id":"42","schedule":"2024-05-01T10:00:00Z"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("store fault", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().SubmitReservation(gomock.Any(), gomock.Any()).Return("", errors.New("db down"))
		rec := serve(e, http.MethodPost, "/reservations", `{"reservation_id":"42","schedule":"2024-05-01T10:00:00Z"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestReservationHandler_Reads(t *testing.T) {
	res := model.Reservation{ID: "7", FirstName: "Ana", Status: model.StatusApproved}

	t.Run("list all", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().ListAll(gomock.Any()).Return([]model.Reservation{res}, nil)
		rec := serve(e, http.MethodGet, "/reservations", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var items []model.Reservation
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil || len(items) != 1 || items[0].ID != "7" {
			t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
		}
	})

	t.Run("list by status", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().ListByStatus(gomock.Any(), model.StatusDone).Return([]model.Reservation{}, nil)
		rec := serve(e, http.MethodGet, "/reservations?status=Done", "")
		if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
			t.Fatalf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("list by unknown status", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().ListByStatus(gomock.Any(), model.Status("Lost")).Return(nil, service.ErrInvalidStatus)
		if rec := serve(e, http.MethodGet, "/reservations?status=Lost", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Get(gomock.Any(), "nope").Return(nil, repository.ErrReservationNotFound)
		if rec := serve(e, http.MethodGet, "/reservations/nope", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("approved", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().ListApproved(gomock.Any()).Return([]model.Reservation{res}, nil)
		if rec := serve(e, http.MethodGet, "/approved", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestReservationHandler_Writes(t *testing.T) {
	t.Run("put status", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Transition(gomock.Any(), "7", model.StatusApproved).Return(nil)
		rec := serve(e, http.MethodPut, "/reservations/7", `{"status":"Approved"}`)
		if rec.Code != http.StatusOK || decode(t, rec)["message"] != "Reservation updated successfully" {
			t.Fatalf("got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("put missing", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Transition(gomock.Any(), "nope", model.StatusDone).Return(repository.ErrReservationNotFound)
		if rec := serve(e, http.MethodPut, "/reservations/nope", `{"status":"Done"}`); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("put invalid transition", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Transition(gomock.Any(), "7", model.StatusDone).Return(service.ErrInvalidTransition)
		if rec := serve(e, http.MethodPut, "/reservations/7", `{"status":"Done"}`); rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("approve action", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Approve(gomock.Any(), "7").Return(nil)
		rec := serve(e, http.MethodPost, "/reservations/7/approve", "")
		if rec.Code != http.StatusOK || decode(t, rec)["status"] != "Approved" {
			t.Fatalf("got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("done action", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().MarkDone(gomock.Any(), "7").Return(nil)
		rec := serve(e, http.MethodPost, "/reservations/7/done", "")
		if rec.Code != http.StatusOK || decode(t, rec)["status"] != "Done" {
			t.Fatalf("got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("done action missing", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().MarkDone(gomock.Any(), "nope").Return(repository.ErrReservationNotFound)
		if rec := serve(e, http.MethodPost, "/reservations/nope/done", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("cancel action", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Cancel(gomock.Any(), "7").Return(nil)
		if rec := serve(e, http.MethodPost, "/reservations/7/cancel", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Delete(gomock.Any(), "7").Return(nil)
		rec := serve(e, http.MethodDelete, "/reservations/7", "")
		if rec.Code != http.StatusOK || decode(t, rec)["message"] != "Reservation deleted successfully" {
			t.Fatalf("got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().Delete(gomock.Any(), "7").Return(repository.ErrReservationNotFound)
		if rec := serve(e, http.MethodDelete, "/reservations/7", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestReservationHandler_Check(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		res := &model.Reservation{ID: "7", FirstName: "Ana"}
		svc.EXPECT().CheckValidity(gomock.Any(), "7").Return(service.Validity{Valid: true, Status: model.StatusPending, Reservation: res}, nil)
		rec := serve(e, http.MethodGet, "/checkReservation/7", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		got := decode(t, rec)
		if got["isValid"] != true || got["status"] != "Pending" {
			t.Fatalf("unexpected body %v", got)
		}
		if r, ok := got["reservation"].(map[string]any); !ok || r["reservation_id"] != "7" {
			t.Fatalf("unexpected reservation %v", got["reservation"])
		}
	})

	for _, v := range []service.Validity{
		{},
		{Valid: false, Status: model.StatusDone, Reservation: &model.Reservation{ID: "7"}},
	} {
		e, svc := newReservationEcho(t)
		svc.EXPECT().CheckValidity(gomock.Any(), "7").Return(v, nil)
		rec := serve(e, http.MethodGet, "/checkReservation/7", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		got := decode(t, rec)
		if got["isValid"] != false || got["message"] != "Invalid Reservation ID" {
			t.Fatalf("unexpected body %v", got)
		}
	}

	t.Run("store fault", func(t *testing.T) {
		e, svc := newReservationEcho(t)
		svc.EXPECT().CheckValidity(gomock.Any(), "7").Return(service.Validity{}, errors.New("db down"))
		if rec := serve(e, http.MethodGet, "/checkReservation/7", ""); rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestParseSchedule(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	for _, in := range []string{"2024-05-01T10:30:00Z", "2024-05-01 10:30:00", "2024-05-01T10:30", "2024-05-01T12:30:00+02:00"} {
		got, err := parseSchedule(in)
		if err != nil || !got.Equal(want) {
			t.Fatalf("parseSchedule(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseSchedule(""); err == nil {
		t.Fatalf("expected error for empty schedule")
	}
}
