package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/auth"
	"github.com/strokeward/strokeward/pkg/pagination"
)

type Handler struct {
	rec *Recorder
}

func NewHandler(rec *Recorder) *Handler {
	return &Handler{rec: rec}
}

// RegisterRoutes wires the admin-only trail review endpoint onto the
// session-gated group.
func (h *Handler) RegisterRoutes(protected *echo.Group) {
	admin := protected.Group("/audit", auth.RequireRole("admin"))
	admin.GET("", h.Search)
}

func (h *Handler) Search(c echo.Context) error {
	params := map[string]string{}
	for _, key := range []string{"actor", "kind", "action", "outcome"} {
		if v := c.QueryParam(key); v != "" {
			params[key] = v
		}
	}

	pg := pagination.FromContext(c)
	events, total, err := h.rec.Search(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(events, total, pg.Limit, pg.Offset))
}
