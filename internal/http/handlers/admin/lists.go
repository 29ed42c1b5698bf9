package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/lists"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

// ListHandler renders one list screen.
type ListHandler struct {
	*Base
	Screen   lists.Screen
	Template string
	Columns  []view.Column
	// Present turns the fetched slice into template rows; nil passes it
	// through.
	Present func(items any) any
}

func (h *ListHandler) Page(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	ctrl := h.Screen.Controller(c.Request.URL.Query())
	res, err := h.Screen.Load(c.Request.Context(), api, ctrl)
	if err != nil {
		h.fetchFailed(c, err, "Failed to load "+strings.ToLower(h.Screen.Title))
		return
	}

	l := view.NewList(h.Screen.Path, ctrl, h.Columns)
	l.Count = res.Count
	l.Total = res.Total
	l.Items = res.Items
	if h.Present != nil {
		l.Items = h.Present(res.Items)
	}
	render.Page(c, http.StatusOK, h.Template, h.Screen.Title, l)
}

// ListAPI serves GET /api/lists/:screen, the JSON rendition of every list
// screen. It accepts the same query parameters as the page.
func ListAPI(c *gin.Context) {
	screen, ok := lists.Lookup(c.Param("screen"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Unknown list."))
		return
	}
	api, ok := middleware.API(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("authentication required"))
		return
	}

	ctrl := screen.Controller(c.Request.URL.Query())
	res, err := screen.Load(c.Request.Context(), api, ctrl)
	if err != nil {
		middleware.Fail(c, apperr.FromAPI(err, "Failed to load "+strings.ToLower(screen.Title)))
		return
	}

	payload := gin.H{
		"screen":     screen.Name,
		"query":      ctrl.ToURLQuery(),
		"page":       ctrl.Page(),
		"items":      res.Items,
		"count":      res.Count,
		"total":      res.Total,
		"hasMore":    res.HasMore,
		"nextCursor": res.NextCursor,
	}
	if next := ctrl.Clone(); next.NextPage() {
		payload["next"] = next.ToURLQuery()
	}
	c.JSON(http.StatusOK, payload)
}

// ListIndex names the screens /api/lists serves.
func ListIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"screens": lists.Names()})
}
