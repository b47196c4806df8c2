package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supplychain-admin/internal/models"
)

type linksResponse struct {
	Consistent bool                   `json:"consistent"`
	Data       []models.LinkViolation `json:"data"`
}

// CheckLinks
// @Summary CheckLinks
// @Description Lists order/delivery pairs whose mutual links disagree
// @ID check-links
// @Produce json
// @Success 200 {object} linksResponse
// @Failure 500 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/integrity/links [get]
func (h *Handler) CheckLinks(c *gin.Context) {
	broken, err := h.svc.CheckLinks(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, linksResponse{Consistent: len(broken) == 0, Data: broken})
}
