package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/print-shop-booking/internal/config"
	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/utils"
)

type memEditors struct {
	items []model.Editor
	err   error
}

func (m *memEditors) List(context.Context) ([]model.Editor, error) { return m.items, m.err }

func (m *memEditors) Create(_ context.Context, e *model.Editor) error {
	if m.err != nil {
		return m.err
	}
	e.ID = uint64(len(m.items) + 1)
	m.items = append(m.items, *e)
	return nil
}

func (m *memEditors) Delete(_ context.Context, id uint64) error {
	for i, e := range m.items {
		if e.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrEditorNotFound
}

type memServices struct {
	items []model.Service
}

func (m *memServices) List(context.Context) ([]model.Service, error) { return m.items, nil }

func (m *memServices) Create(_ context.Context, s *model.Service) error {
	s.ID = uint64(len(m.items) + 1)
	m.items = append(m.items, *s)
	return nil
}

func (m *memServices) Delete(_ context.Context, id uint64) error {
	for i, s := range m.items {
		if s.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrServiceNotFound
}

func newCatalogEcho(editors *memEditors, services *memServices) *echo.Echo {
	h := NewCatalogHandler(editors, services, nil)
	e := echo.New()
	e.GET("/editors", h.ListEditors)
	e.POST("/editors", h.CreateEditor)
	e.DELETE("/editors/:id", h.DeleteEditor)
	e.GET("/services", h.ListServices)
	e.POST("/services", h.CreateService)
	e.DELETE("/services/:id", h.DeleteService)
	return e
}

func TestCatalogHandler_Editors(t *testing.T) {
	editors := &memEditors{}
	e := newCatalogEcho(editors, &memServices{})

	rec := serve(e, http.MethodPost, "/editors", `{"fullname":" Ed Cruz ","contact":"0917","address":"Manila"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := decode(t, rec); got["fullName"] != "Ed Cruz" || got["editor_id"] != float64(1) {
		t.Fatalf("unexpected body %v", got)
	}
	var listed []map[string]any
	if err := json.Unmarshal(serve(e, http.MethodGet, "/editors", "").Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0]["fullName"] != "Ed Cruz" {
		t.Fatalf("unexpected list %v", listed)
	}
	if rec := serve(e, http.MethodPost, "/editors", `{"contact":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/editors", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/editors/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/editors/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/editors/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	editors.err = errors.New("db down")
	if rec := serve(e, http.MethodGet, "/editors", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCatalogHandler_Services(t *testing.T) {
	e := newCatalogEcho(&memEditors{}, &memServices{})

	rec := serve(e, http.MethodPost, "/services", `{"serviceName":"Photo Booth"}`)
	if rec.Code != http.StatusCreated || decode(t, rec)["serviceName"] != "Photo Booth" {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
	if rec := serve(e, http.MethodPost, "/services", `{"serviceName":"  "}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/services/9", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = serve(e, http.MethodDelete, "/services/1", "")
	if rec.Code != http.StatusOK || decode(t, rec)["message"] != "Service deleted successfully" {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

type memAdmins map[string]model.Admin

func (m memAdmins) GetByUsername(_ context.Context, username string) (model.Admin, error) {
	a, ok := m[username]
	if !ok {
		return model.Admin{}, repository.ErrAdminNotFound
	}
	return a, nil
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admins := memAdmins{
		"boss":   {ID: 1, Username: "boss", Password: hash, CreatedAt: time.Now()},
		"legacy": {ID: 2, Username: "legacy", Password: "plain"},
	}
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 5}
	h := NewAuthHandler(cfg, admins, nil)
	e := echo.New()
	e.POST("/login", h.Login)

	rec := serve(e, http.MethodPost, "/login", `{"username":"boss","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decode(t, rec)
	tok, _ := got["token"].(string)
	if got["message"] != "Login successful" || tok == "" {
		t.Fatalf("unexpected body %v", got)
	}
	claims, err := utils.ParseAccessToken(cfg.JWTSecret, tok)
	if err != nil || claims["sub"] != "boss" || claims["role"] != utils.RoleAdmin {
		t.Fatalf("claims %v, err %v", claims, err)
	}

	if rec := serve(e, http.MethodPost, "/login", `{"username":"legacy","password":"plain"}`); rec.Code != http.StatusOK {
		t.Fatalf("legacy login: expected 200, got %d", rec.Code)
	}
	for _, body := range []string{
		`{"username":"boss","password":"wrong"}`,
		`{"username":"ghost","password":"x"}`,
	} {
		if rec := serve(e, http.MethodPost, "/login", body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", body, rec.Code)
		}
	}
	if rec := serve(e, http.MethodPost, "/login", `{"username":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
