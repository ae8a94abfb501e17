package account

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/auth"
	"github.com/strokeward/strokeward/pkg/pagination"
)

type Handler struct {
	svc    *Service
	secure bool // mark session cookies Secure outside development
}

func NewHandler(svc *Service, secure bool) *Handler {
	return &Handler{svc: svc, secure: secure}
}

// RegisterRoutes wires credential endpoints onto the public group and
// account management onto the session-gated group.
func (h *Handler) RegisterRoutes(public *echo.Group, protected *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)

	admin := protected.Group("/accounts", auth.RequireRole(RoleAdmin))
	admin.GET("", h.List)
	admin.POST("/:id/deactivate", h.Deactivate)
	admin.PUT("/:id/role", h.ChangeRole)
}

type registerRequest struct {
	Handle   string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.Register(c.Request().Context(), req.Handle, req.Email, req.Name, req.Password)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

type loginRequest struct {
	Handle   string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   *Account  `json:"account"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sess, a, err := h.svc.Login(c.Request().Context(), req.Handle, req.Password, c.RealIP())
	if err != nil {
		return apperr.JSON(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Account:   a,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	token := auth.TokenFromContext(ctx)
	handle := auth.HandleFromContext(ctx)

	if err := h.svc.Logout(ctx, token, handle); err != nil {
		return apperr.JSON(c, err)
	}

	// Expire the cookie on the client too.
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	a, err := h.svc.Get(ctx, auth.AccountIDFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	accounts, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(accounts, total, pg.Limit, pg.Offset))
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	if err := h.svc.Deactivate(ctx, id, auth.HandleFromContext(ctx)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deactivated"})
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) ChangeRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if err := h.svc.ChangeRole(ctx, id, req.Role, auth.HandleFromContext(ctx)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "role updated"})
}
