package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/example/periodic-tables/controllers"
	"github.com/example/periodic-tables/models"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)
	router.GET("/tables", tableCtrl.List)
	router.POST("/tables", tableCtrl.Create)
	router.PUT("/tables/:table_id/seat", tableCtrl.Seat)
	router.DELETE("/tables/:table_id/seat", tableCtrl.Clear)
	router.POST("/reservations", reservationCtrl.Create)
	return router
}

func tablePayload(name string, capacity int) map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"table_name": name,
			"capacity":   capacity,
		},
	}
}

func createTable(t *testing.T, router *gin.Engine, name string, capacity int) uint {
	t.Helper()
	w := postJSON(t, router, "POST", "/tables", tablePayload(name, capacity))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Table `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data.ID
}

func TestCreateTableEndpoint(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))
	id := createTable(t, router, "#1", 6)
	assert.NotZero(t, id)
}

func TestCreateTableRejectsShortName(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))
	w := postJSON(t, router, "POST", "/tables", tablePayload("A", 6))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTableRejectsUnknownFields(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))

	payload := tablePayload("#1", 6)
	payload["data"].(map[string]interface{})["color"] = "red"

	w := postJSON(t, router, "POST", "/tables", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllTables(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))
	createTable(t, router, "#1", 6)
	createTable(t, router, "Bar #1", 1)

	req, _ := http.NewRequest("GET", "/tables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Table `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
}

func TestSeatAndClearEndpoints(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	reservationID := seatableReservation(t, router)
	tableID := createTable(t, router, "#1", 6)

	seatURL := fmt.Sprintf("/tables/%d/seat", tableID)
	seatBody := map[string]interface{}{
		"data": map[string]interface{}{"reservation_id": reservationID},
	}

	w := postJSON(t, router, "PUT", seatURL, seatBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var seated struct {
		Data models.Table `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &seated))
	assert.NotNil(t, seated.Data.ReservationID)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, reservationID).Error)
	assert.Equal(t, models.StatusSeated, reservation.Status)

	// Seating an occupied table is a conflict.
	w = postJSON(t, router, "PUT", seatURL, seatBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ := http.NewRequest("DELETE", seatURL, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	assert.NoError(t, db.First(&reservation, reservationID).Error)
	assert.Equal(t, models.StatusFinished, reservation.Status)

	// Clearing a free table is a conflict.
	req, _ = http.NewRequest("DELETE", seatURL, nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
}

func TestSeatRejectsUndersizedTable(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))

	payload := reservationPayload()
	payload["data"].(map[string]interface{})["people"] = 5
	w := postJSON(t, router, "POST", "/reservations", payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data models.Reservation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	tableID := createTable(t, router, "Bar #1", 1)
	w = postJSON(t, router, "PUT", fmt.Sprintf("/tables/%d/seat", tableID), map[string]interface{}{
		"data": map[string]interface{}{"reservation_id": created.Data.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeatMissingReservationID(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))
	tableID := createTable(t, router, "#1", 6)

	w := postJSON(t, router, "PUT", fmt.Sprintf("/tables/%d/seat", tableID), map[string]interface{}{
		"data": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeatUnknownTable(t *testing.T) {
	router := setupTableRouter(setupTestDB(t))
	reservationID := seatableReservation(t, router)

	w := postJSON(t, router, "PUT", "/tables/999/seat", map[string]interface{}{
		"data": map[string]interface{}{"reservation_id": reservationID},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func seatableReservation(t *testing.T, router *gin.Engine) uint {
	t.Helper()
	w := postJSON(t, router, "POST", "/reservations", reservationPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Reservation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data.ID
}
