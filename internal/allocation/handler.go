package allocation

import (
	"net/http"
	"strconv"

	"stockroom/internal/allocationlog"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Engine *Engine
	Audit  *allocationlog.Recorder
}

func NewHandler(engine *Engine, audit *allocationlog.Recorder) *Handler {
	return &Handler{Engine: engine, Audit: audit}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/allocations/assign", h.Assign)
	router.POST("/allocations/remove", h.Remove)
	router.POST("/allocations/move", h.Move)
	router.GET("/allocations/moves/:key", h.MoveStatus)
	router.GET("/allocations/log", h.Log)
	router.GET("/locations/:id/cells", h.LocationCells)
}

type AssignRequest struct {
	ItemID      int             `json:"item_id" binding:"required"`
	StorageID   int             `json:"storage_id" binding:"required"`
	Position    models.Position `json:"position"`
	Quantity    int             `json:"quantity"`
	ItemType    string          `json:"item_type"`
	RequestedBy string          `json:"requested_by"`
}

func (h *Handler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ok, err := h.Engine.Assign(c.Request.Context(), req.ItemID, req.StorageID, req.Position, req.Quantity, req.ItemType, req.RequestedBy)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not assign item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

type RemoveRequest struct {
	ItemID      int    `json:"item_id" binding:"required"`
	StorageID   int    `json:"storage_id" binding:"required"`
	RequestedBy string `json:"requested_by"`
}

func (h *Handler) Remove(c *gin.Context) {
	var req RemoveRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	ok, err := h.Engine.Remove(c.Request.Context(), req.ItemID, req.StorageID, req.RequestedBy)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not remove item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	ok, err := h.Engine.MoveItem(c.Request.Context(), req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not move item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) MoveStatus(c *gin.Context) {
	state, err := h.Engine.MoveStatus(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not get move status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) Log(c *gin.Context) {
	storageID, err := strconv.Atoi(c.Query("storage_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid storage_id"})
		return
	}

	entries, err := h.Audit.Entries(c.Request.Context(), storageID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not list allocation log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) LocationCells(c *gin.Context) {
	storageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	cells, err := h.Engine.ItemsIn(c.Request.Context(), storageID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not list location cells", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cells)
}
