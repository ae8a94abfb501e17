package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/auth"
	"github.com/strokeward/strokeward/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the record endpoints onto the session-gated group.
// Every route requires an authenticated clinical user; search and stats
// are registered before the :id route so echo does not swallow them.
func (h *Handler) RegisterRoutes(protected *echo.Group) {
	records := protected.Group("/records", auth.RequireRole("doctor", "staff"))
	records.POST("", h.Create)
	records.GET("", h.List)
	records.GET("/search", h.Search)
	records.GET("/stats", h.Stats)
	records.GET("/:id", h.Get)
	records.PUT("/:id", h.Update)
	records.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var fields Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	r, err := h.svc.Create(ctx, fields, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	r, err := h.svc.Get(ctx, id, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var fields Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	r, err := h.svc.Update(ctx, id, fields, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	if err := h.svc.Delete(ctx, id, auth.HandleFromContext(ctx)); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	records, total, err := h.svc.List(ctx, pg.Limit, pg.Offset, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) Search(c echo.Context) error {
	filter := map[string]string{}
	for field := range SearchableFields {
		if v := c.QueryParam(field); v != "" {
			filter[field] = v
		}
	}

	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	records, total, err := h.svc.Search(ctx, filter, pg.Limit, pg.Offset, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := h.svc.Stats(ctx, auth.HandleFromContext(ctx))
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, st)
}
