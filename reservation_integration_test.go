package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/periodic-tables/models"
	"github.com/example/periodic-tables/router"
	"github.com/example/periodic-tables/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndSeating walks the main flow:
// 1. Book a reservation
// 2. It shows up on the dashboard list for its date
// 3. Create a table and seat the reservation at it
// 4. Clear the table -> reservation finished, table free
// 5. Clearing again conflicts
func TestEndToEndSeating(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	reservationID := bookReservationTest(t, r)
	listByDateTest(t, r, reservationID)
	tableID := createTableTest(t, r)
	seatTest(t, r, tableID, reservationID)
	clearTest(t, r, tableID, reservationID, db)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}, &models.Table{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookReservationTest(t *testing.T, r *gin.Engine) uint {
	w := doJSON(t, r, "POST", "/reservations", map[string]interface{}{
		"data": map[string]interface{}{
			"first_name":       "Bird",
			"last_name":        "Person",
			"mobile_number":    "808-555-0141",
			"reservation_date": "2035-12-30",
			"reservation_time": "18:00",
			"people":           2,
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Reservation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.StatusBooked, response.Data.Status)
	return response.Data.ID
}

func listByDateTest(t *testing.T, r *gin.Engine, reservationID uint) {
	w := doJSON(t, r, "GET", "/reservations?date=2035-12-30", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.Reservation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, reservationID, response.Data[0].ID)
}

func createTableTest(t *testing.T, r *gin.Engine) uint {
	w := doJSON(t, r, "POST", "/tables", map[string]interface{}{
		"data": map[string]interface{}{
			"table_name": "#1",
			"capacity":   6,
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Table `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data.ID
}

func seatTest(t *testing.T, r *gin.Engine, tableID, reservationID uint) {
	w := doJSON(t, r, "PUT", fmt.Sprintf("/tables/%d/seat", tableID), map[string]interface{}{
		"data": map[string]interface{}{"reservation_id": reservationID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Reservation now reads as seated.
	w = doJSON(t, r, "GET", fmt.Sprintf("/reservations/%d", reservationID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.Reservation `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.StatusSeated, response.Data.Status)
}

func clearTest(t *testing.T, r *gin.Engine, tableID, reservationID uint, db *gorm.DB) {
	url := fmt.Sprintf("/tables/%d/seat", tableID)

	w := doJSON(t, r, "DELETE", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Nil(t, table.ReservationID)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, reservationID).Error)
	assert.Equal(t, models.StatusFinished, reservation.Status)

	// Second clear hits a free table.
	w = doJSON(t, r, "DELETE", url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMethodNotAllowedAndUnknownRoutes(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	w := doJSON(t, r, "DELETE", "/reservations", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response, "error")

	w = doJSON(t, r, "GET", "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPing(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	w := doJSON(t, r, "GET", "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
