package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/example/periodic-tables/events"
	"github.com/example/periodic-tables/services"
	"github.com/example/periodic-tables/utils"
)

type TableController struct {
	DB      *gorm.DB
	service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:      db,
		service: services.NewTableService(db),
	}
}

// Create -> add a table; unknown payload fields are rejected.
func (tc *TableController) Create(c *gin.Context) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.ShouldBindJSON(&envelope); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var draft services.TableDraft
	decoder := json.NewDecoder(bytes.NewReader(envelope.Data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Invalid table payload: %v", err))
		return
	}

	table, err := tc.service.Create(draft)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastTable(events.EventTableCreate, *table)
	utils.InfoLogger.Printf("Table %d created: %s (capacity=%d)", table.ID, table.TableName, table.Capacity)
	utils.RespondData(c, http.StatusCreated, table)
}

// List -> every table ordered by name.
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.service.List()
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}
	utils.RespondData(c, http.StatusOK, tables)
}

// Seat -> assign a reservation to this table; both rows change together.
func (tc *TableController) Seat(c *gin.Context) {
	id, ok := tc.tableID(c)
	if !ok {
		return
	}

	var req struct {
		Data struct {
			ReservationID *uint `json:"reservation_id"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Data.ReservationID == nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("A valid reservation_id is required"))
		return
	}

	table, err := tc.service.Seat(id, *req.Data.ReservationID)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastTable(events.EventTableUpdate, *table)
	utils.InfoLogger.Printf("Table %d seated reservation %d", table.ID, *req.Data.ReservationID)
	utils.RespondData(c, http.StatusOK, table)
}

// Clear -> finish the occupying reservation and free the table.
func (tc *TableController) Clear(c *gin.Context) {
	id, ok := tc.tableID(c)
	if !ok {
		return
	}

	table, err := tc.service.Clear(id)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastTable(events.EventTableUpdate, *table)
	utils.InfoLogger.Printf("Table %d cleared", table.ID)
	utils.RespondData(c, http.StatusOK, table)
}

func (tc *TableController) tableID(c *gin.Context) (uint, bool) {
	raw := c.Param("table_id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table with id %s cannot be found", raw))
		return 0, false
	}
	return uint(id), true
}
