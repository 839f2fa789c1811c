package batch

import (
	"net/http"

	"stockroom/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Coordinator *Coordinator
}

func NewHandler(c *Coordinator) *Handler {
	return &Handler{Coordinator: c}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/locations/bulk", h.CreateMany)
	router.PATCH("/locations/bulk", h.UpdateMany)
	router.DELETE("/locations/bulk", h.DeleteMany)
}

// Partial failures answer 207: the batch itself went through, the per-item
// results say which elements did not.
func batchStatus(result *models.BatchResult) int {
	if result.Failed > 0 {
		return http.StatusMultiStatus
	}
	return http.StatusOK
}

func (h *Handler) CreateMany(c *gin.Context) {
	var locations []models.Location
	if err := c.BindJSON(&locations); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result := h.Coordinator.CreateMany(c.Request.Context(), locations)
	c.JSON(batchStatus(result), result)
}

func (h *Handler) UpdateMany(c *gin.Context) {
	var items []UpdateItem
	if err := c.BindJSON(&items); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result := h.Coordinator.UpdateMany(c.Request.Context(), items)
	c.JSON(batchStatus(result), result)
}

func (h *Handler) DeleteMany(c *gin.Context) {
	var ids []int
	if err := c.BindJSON(&ids); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result := h.Coordinator.DeleteMany(c.Request.Context(), ids)
	c.JSON(batchStatus(result), result)
}
