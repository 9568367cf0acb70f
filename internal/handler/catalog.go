package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/repository"
)

// EditorStore is the editors directory. *repository.EditorRepo satisfies it.
type EditorStore interface {
	List(ctx context.Context) ([]model.Editor, error)
	Create(ctx context.Context, e *model.Editor) error
	Delete(ctx context.Context, id uint64) error
}

// ServiceStore is the service catalog. *repository.ServiceRepo satisfies it.
type ServiceStore interface {
	List(ctx context.Context) ([]model.Service, error)
	Create(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id uint64) error
}

// CatalogHandler serves the editor directory and the service catalog that
// the booking form draws its choices from.
type CatalogHandler struct {
	Editors  EditorStore
	Services ServiceStore
	Log      *zap.Logger
}

func NewCatalogHandler(editors EditorStore, services ServiceStore, log *zap.Logger) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{Editors: editors, Services: services, Log: log}
}

// editorReq matches the dashboard form, which posts "fullname". The
// response uses model.Editor's "fullName".
type editorReq struct {
	FullName string `json:"fullname"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

type serviceReq struct {
	Name string `json:"serviceName"`
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *CatalogHandler) internal(c echo.Context, op string, err error) error {
	h.Log.Error(op, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
}

// ListEditors handles GET /editors.
func (h *CatalogHandler) ListEditors(c echo.Context) error {
	items, err := h.Editors.List(c.Request().Context())
	if err != nil {
		return h.internal(c, "list editors", err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateEditor handles POST /editors.
func (h *CatalogHandler) CreateEditor(c echo.Context) error {
	var req editorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	e := model.Editor{
		FullName: strings.TrimSpace(req.FullName),
		Contact:  strings.TrimSpace(req.Contact),
		Address:  strings.TrimSpace(req.Address),
	}
	if e.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullname is required"})
	}
	if err := h.Editors.Create(c.Request().Context(), &e); err != nil {
		return h.internal(c, "create editor", err)
	}
	return c.JSON(http.StatusCreated, e)
}

// DeleteEditor handles DELETE /editors/:id.
func (h *CatalogHandler) DeleteEditor(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid editor id"})
	}
	if err := h.Editors.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEditorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Editor not found"})
		}
		return h.internal(c, "delete editor", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Editor deleted successfully"})
}

// ListServices handles GET /services.
func (h *CatalogHandler) ListServices(c echo.Context) error {
	items, err := h.Services.List(c.Request().Context())
	if err != nil {
		return h.internal(c, "list services", err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateService handles POST /services.
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := model.Service{Name: strings.TrimSpace(req.Name)}
	if s.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serviceName is required"})
	}
	if err := h.Services.Create(c.Request().Context(), &s); err != nil {
		return h.internal(c, "create service", err)
	}
	return c.JSON(http.StatusCreated, s)
}

// DeleteService handles DELETE /services/:id.
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	if err := h.Services.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
		}
		return h.internal(c, "delete service", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Service deleted successfully"})
}
