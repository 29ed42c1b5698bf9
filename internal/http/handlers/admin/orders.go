package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/orders"
)

type OrdersHandler struct {
	*Base
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	o, err := api.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fetchFailed(c, err, "Failed to load order")
		return
	}
	render.Page(c, http.StatusOK, "orders/detail", "Order "+o.ID, orders.Present(o))
}
