package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplychain-admin/internal/models"
)

type getAllDeliveriesResponse struct {
	Data []models.DeliveryView `json:"data"`
}

type createDeliveryResponse struct {
	DeliveryID int64 `json:"delivery_ID"`
}

type deleteDeliveryResponse struct {
	Message string `json:"message"`
	OrderID *int64 `json:"order_ID"`
}

// ListDeliveries
// @Summary ListDeliveries
// @Description Lists deliveries joined with order, vendor, batch and warehouse summaries
// @ID list-deliveries
// @Produce json
// @Success 200 {object} getAllDeliveriesResponse
// @Failure 500 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/deliveries [get]
func (h *Handler) ListDeliveries(c *gin.Context) {
	deliveries, err := h.svc.ListDeliveries(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, getAllDeliveriesResponse{Data: deliveries})
}

// GetDelivery
// @Summary GetDelivery
// @Description Returns one delivery
// @ID get-delivery
// @Produce json
// @Param id path int true "delivery_ID"
// @Success 200 {object} models.DeliveryView
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/deliveries/{id} [get]
func (h *Handler) GetDelivery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.svc.GetDelivery(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// CreateDelivery
// @Summary CreateDelivery
// @Description Creates a delivery; a supplied order_ID is linked both ways
// @ID create-delivery
// @Accept json
// @Produce json
// @Param input body models.CreateDelivery true "delivery"
// @Success 201 {object} createDeliveryResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/deliveries [post]
func (h *Handler) CreateDelivery(c *gin.Context) {
	var cmd models.CreateDelivery
	if !bindJSON(c, &cmd) {
		return
	}
	id, err := h.svc.CreateDelivery(c.Request.Context(), cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createDeliveryResponse{DeliveryID: id})
}

// UpdateDelivery
// @Summary UpdateDelivery
// @Description Updates supplied fields. A changed order_ID unlinks the old order and links the new one; null unlinks
// @ID update-delivery
// @Accept json
// @Produce json
// @Param id path int true "delivery_ID"
// @Param input body models.UpdateDelivery true "fields to change"
// @Success 200 {object} statusResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/deliveries/{id} [put]
func (h *Handler) UpdateDelivery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd models.UpdateDelivery
	if !bindJSON(c, &cmd) {
		return
	}
	if err := h.svc.UpdateDelivery(c.Request.Context(), id, cmd); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Message: "updated"})
}

// DeleteDelivery
// @Summary DeleteDelivery
// @Description Deletes a delivery after clearing the order that pointed at it; returns that order_ID
// @ID delete-delivery
// @Produce json
// @Param id path int true "delivery_ID"
// @Success 200 {object} deleteDeliveryResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure 500,504 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/deliveries/{id} [delete]
func (h *Handler) DeleteDelivery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	prior, err := h.svc.DeleteDelivery(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleteDeliveryResponse{Message: "deleted", OrderID: prior})
}
