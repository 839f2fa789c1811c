package materials

import (
	"net/http"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/materials", h.ListMaterials)
	router.POST("/materials/import", h.ImportCSV)
	router.GET("/materials/export", h.ExportCSV)
}

func (h *Handler) ListMaterials(c *gin.Context) {
	var pagination models.Pagination
	var filters models.MaterialFilters
	if err := c.ShouldBindQuery(&pagination); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	page, err := h.Service.List(c.Request.Context(), pagination, filters)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not list materials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.Service.ImportFromCSV(c.Request.Context(), file)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not import materials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	var filters models.MaterialFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	blob, err := h.Service.ExportToCSV(c.Request.Context(), filters)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not export materials", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="materials.csv"`)
	c.Data(http.StatusOK, "text/csv", blob)
}
