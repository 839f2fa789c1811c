package overview

import (
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Aggregator *Aggregator
}

func NewHandler(a *Aggregator) *Handler {
	return &Handler{Aggregator: a}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/overview", h.GetOverview)
	router.GET("/locations/:id/utilization", h.GetUtilization)
}

func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.Aggregator.ComputeOverview(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not compute overview", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *Handler) GetUtilization(c *gin.Context) {
	storageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"storage_id":  storageID,
		"utilization": h.Aggregator.UtilizationOf(c.Request.Context(), storageID),
	})
}
