package registry

import (
	"net/http"
	"strconv"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Registry *Registry
}

func NewHandler(r *Registry) *Handler {
	return &Handler{Registry: r}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/locations", h.ListLocations)
	router.GET("/locations/:id", h.GetLocation)
	router.POST("/locations", h.CreateLocation)
	router.PATCH("/locations/:id", h.UpdateLocation)
	router.DELETE("/locations/:id", h.RemoveLocation)
}

func (h *Handler) ListLocations(c *gin.Context) {
	var pagination models.Pagination
	var filters models.LocationFilters
	if err := c.ShouldBindQuery(&pagination); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	page, err := h.Registry.List(c.Request.Context(), pagination, filters)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not list locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	loc, err := h.Registry.Get(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not get location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.BindJSON(&location); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	created, err := h.Registry.Create(c.Request.Context(), location)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not insert location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch models.LocationPatch
	if err := c.BindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Registry.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not update location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) RemoveLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Registry.Delete(c.Request.Context(), id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not delete location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return 0, false
	}
	return id, true
}
