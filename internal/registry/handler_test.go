package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockroom/internal/boundary/boundarytest"
	"stockroom/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(store *boundarytest.FakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reg, _, _ := newTestRegistry(store)
	NewHandler(reg).RegisterRoutes(router)
	return router
}

func TestCreateLocationEndpoint(t *testing.T) {
	router := setupTestRouter(boundarytest.NewFakeStore())

	body, _ := json.Marshal(gin.H{"name": "Cabinet A", "type": "cabinet", "capacity": 10})
	req := httptest.NewRequest(http.MethodPost, "/locations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Location
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "active", created.Status)
}

func TestCreateLocationEndpointRejectsBadType(t *testing.T) {
	router := setupTestRouter(boundarytest.NewFakeStore())

	body, _ := json.Marshal(gin.H{"name": "Cabinet A", "type": "closet", "capacity": 10})
	req := httptest.NewRequest(http.MethodPost, "/locations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Could not insert location")
}

func TestGetLocationEndpoint(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "Shelf B", Type: models.LocationShelf, Capacity: 6, Utilized: 3})
	router := setupTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/locations/%d", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var loc models.Location
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, "Shelf B", loc.Name)
	assert.Equal(t, 3, loc.Utilized)
}

func TestGetLocationEndpointNotFound(t *testing.T) {
	router := setupTestRouter(boundarytest.NewFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/locations/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLocationEndpointBadID(t *testing.T) {
	router := setupTestRouter(boundarytest.NewFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/locations/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLocationsEndpointFilters(t *testing.T) {
	store := boundarytest.NewFakeStore()
	store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 10})
	store.SeedLocation(models.Location{Name: "B", Type: models.LocationShelf, Capacity: 10})
	router := setupTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/locations?types=cabinet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var page models.LocationPage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "A", page.Data[0].Name)
}

func TestUpdateLocationEndpoint(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 10})
	router := setupTestRouter(store)

	body, _ := json.Marshal(gin.H{"capacity": 20})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/locations/%d", id), bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	loc, _ := store.LocationByID(id)
	assert.Equal(t, 20, loc.Capacity)
}

func TestRemoveLocationEndpoint(t *testing.T) {
	store := boundarytest.NewFakeStore()
	id := store.SeedLocation(models.Location{Name: "A", Type: models.LocationCabinet, Capacity: 10})
	router := setupTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/locations/%d", id), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, found := store.LocationByID(id)
	assert.False(t, found)
}
