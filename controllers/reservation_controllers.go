package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/example/periodic-tables/events"
	"github.com/example/periodic-tables/models"
	"github.com/example/periodic-tables/services"
	"github.com/example/periodic-tables/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:      db,
		service: services.NewReservationService(db),
	}
}

// reservationEnvelope is the request wrapper: payloads arrive under "data".
type reservationEnvelope struct {
	Data services.ReservationDraft `json:"data"`
}

// List -> reservations filtered by mobile_number, by date, or everything.
func (rc *ReservationController) List(c *gin.Context) {
	var (
		reservations []models.Reservation
		err          error
	)

	switch {
	case c.Query("mobile_number") != "":
		reservations, err = rc.service.Search(c.Query("mobile_number"))
	case c.Query("date") != "":
		reservations, err = rc.service.ListByDate(c.Query("date"))
	default:
		reservations, err = rc.service.List()
	}
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}
	utils.RespondData(c, http.StatusOK, reservations)
}

// Create -> book a new reservation (status always starts as booked).
func (rc *ReservationController) Create(c *gin.Context) {
	var req reservationEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.service.Create(req.Data)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationCreate, *reservation)
	utils.InfoLogger.Printf("Reservation %d booked for %s %s on %s %s",
		reservation.ID, reservation.FirstName, reservation.LastName,
		reservation.ReservationDate, reservation.ReservationTime)
	utils.RespondData(c, http.StatusCreated, reservation)
}

// Read -> one reservation by id.
func (rc *ReservationController) Read(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}
	reservation, err := rc.service.Get(id)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}
	utils.RespondData(c, http.StatusOK, reservation)
}

// Update -> edit the reservation's fields; blocked once finished.
func (rc *ReservationController) Update(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	var req reservationEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.service.Update(id, req.Data)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationUpdate, *reservation)
	utils.RespondData(c, http.StatusOK, reservation)
}

// UpdateStatus -> move the reservation along the transition table.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := rc.reservationID(c)
	if !ok {
		return
	}

	var req struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.service.ChangeStatus(id, req.Data.Status)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationUpdate, *reservation)
	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondData(c, http.StatusOK, reservation)
}

// Search -> match stored mobile numbers on digits only.
func (rc *ReservationController) Search(c *gin.Context) {
	mobile := c.Query("mobile_number")
	if mobile == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("mobile_number is required"))
		return
	}

	reservations, err := rc.service.Search(mobile)
	if err != nil {
		utils.RespondError(c, services.StatusOf(err), err)
		return
	}
	utils.RespondData(c, http.StatusOK, reservations)
}

func (rc *ReservationController) reservationID(c *gin.Context) (uint, bool) {
	raw := c.Param("reservation_id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Reservation id not found: %s", raw))
		return 0, false
	}
	return uint(id), true
}
