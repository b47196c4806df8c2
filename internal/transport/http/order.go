package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplychain-admin/internal/models"
)

type getAllOrdersResponse struct {
	Data []models.OrderView `json:"data"`
}

type createOrderResponse struct {
	OrderID int64 `json:"order_ID"`
}

// ListOrders
// @Summary ListOrders
// @Description Lists orders with consumer name, delivery summary and line items
// @ID list-orders
// @Produce json
// @Success 200 {object} getAllOrdersResponse
// @Failure 500 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, getAllOrdersResponse{Data: orders})
}

// GetOrder
// @Summary GetOrder
// @Description Returns one order with its line items
// @ID get-order
// @Produce json
// @Param id path int true "order_ID"
// @Success 200 {object} models.OrderView
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder
// @Summary CreateOrder
// @Description Creates an order with its line items; a supplied delivery_ID is linked both ways
// @ID create-order
// @Accept json
// @Produce json
// @Param input body models.CreateOrder true "order"
// @Success 201 {object} createOrderResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var cmd models.CreateOrder
	if !bindJSON(c, &cmd) {
		return
	}
	id, err := h.svc.CreateOrder(c.Request.Context(), cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResponse{OrderID: id})
}

// UpdateOrder
// @Summary UpdateOrder
// @Description Updates supplied fields. "products" replaces the whole set ([] removes all); "delivery_ID" null unlinks
// @ID update-order
// @Accept json
// @Produce json
// @Param id path int true "order_ID"
// @Param input body models.UpdateOrder true "fields to change"
// @Success 200 {object} statusResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd models.UpdateOrder
	if !bindJSON(c, &cmd) {
		return
	}
	if err := h.svc.UpdateOrder(c.Request.Context(), id, cmd); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Message: "updated"})
}

// DeleteOrder
// @Summary DeleteOrder
// @Description Deletes an order, its line items and the back-reference of its delivery
// @ID delete-order
// @Produce json
// @Param id path int true "order_ID"
// @Success 200 {object} statusResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Message: "deleted"})
}
