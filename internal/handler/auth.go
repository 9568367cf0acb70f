package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/print-shop-booking/internal/config"
	"github.com/iliyamo/print-shop-booking/internal/model"
	"github.com/iliyamo/print-shop-booking/internal/repository"
	"github.com/iliyamo/print-shop-booking/internal/utils"
)

// AdminFinder looks up staff accounts by username.
type AdminFinder interface {
	GetByUsername(ctx context.Context, username string) (model.Admin, error)
}

// AuthHandler bundles dependencies for the staff login endpoint.
type AuthHandler struct {
	Cfg    config.Config
	Admins AdminFinder
	Log    *zap.Logger
}

func NewAuthHandler(cfg config.Config, admins AdminFinder, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{Cfg: cfg, Admins: admins, Log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. On success it returns a staff access token;
// the legacy front end only looks at the message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		h.Log.Error("login lookup", zap.String("username", req.Username), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if !utils.VerifyPassword(admin.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
	}

	resp := echo.Map{"message": "Login successful"}
	// Without a secret the login still succeeds, as it did before tokens
	// existed; staff routes are then unguarded anyway.
	if h.Cfg.JWTSecret != "" {
		access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.Username, utils.RoleAdmin, h.Cfg.AccessTTLMin)
		if err != nil {
			h.Log.Error("issue access token", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
		}
		resp["token"] = access.Token
		resp["expires"] = access.Exp
	}
	return c.JSON(http.StatusOK, resp)
}
