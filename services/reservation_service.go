package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/periodic-tables/models"
)

// ReservationService owns reservation creation rules and the status
// state machine. Every mutation is a single-row write; the storage
// layer's row locking serializes concurrent updates.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// sqlite has no translate(), so formatting characters are stripped with
// nested REPLACE, which both backends support.
const strippedMobile = "REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '')"

// Create validates the draft against the booking pipeline and persists it
// with status booked.
func (rs *ReservationService) Create(draft ReservationDraft) (*models.Reservation, error) {
	if err := runValidators(&draft, time.Now(), createValidators); err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		MobileNumber:    draft.MobileNumber,
		ReservationDate: draft.ReservationDate,
		ReservationTime: draft.ReservationTime,
		People:          *draft.People,
		Status:          models.StatusBooked,
	}
	if err := rs.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Get reads one reservation by id.
func (rs *ReservationService) Get(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := rs.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("Reservation id not found: %d", id)
		}
		return nil, err
	}
	return &reservation, nil
}

// ChangeStatus moves the reservation along the transition table.
func (rs *ReservationService) ChangeStatus(id uint, status string) (*models.Reservation, error) {
	reservation, err := rs.Get(id)
	if err != nil {
		return nil, err
	}

	next := models.ReservationStatus(status)
	if !next.Valid() {
		return nil, ValidationErr("Invalid status: %s. Status must be one of: booked, seated, finished, cancelled", status)
	}
	if reservation.Status == models.StatusFinished {
		return nil, ConflictErr("A finished reservation cannot be updated")
	}
	if !reservation.Status.CanTransition(next) {
		return nil, TransitionErr(reservation.Status, next)
	}

	if err := rs.DB.Model(reservation).Update("status", next).Error; err != nil {
		return nil, err
	}
	reservation.Status = next
	return reservation, nil
}

// Finish closes out a visit. Narrower than ChangeStatus: only a currently
// seated reservation can be finished.
func (rs *ReservationService) Finish(id uint) (*models.Reservation, error) {
	reservation, err := rs.Get(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.StatusSeated {
		return nil, ConflictErr("Only seated reservations can be finished")
	}
	if err := rs.DB.Model(reservation).Update("status", models.StatusFinished).Error; err != nil {
		return nil, err
	}
	reservation.Status = models.StatusFinished
	return reservation, nil
}

// Update replaces the editable fields after re-running the booking
// pipeline. Finished reservations are immutable.
func (rs *ReservationService) Update(id uint, draft ReservationDraft) (*models.Reservation, error) {
	reservation, err := rs.Get(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == models.StatusFinished {
		return nil, ConflictErr("A finished reservation cannot be updated")
	}
	if err := runValidators(&draft, time.Now(), updateValidators); err != nil {
		return nil, err
	}

	reservation.FirstName = draft.FirstName
	reservation.LastName = draft.LastName
	reservation.MobileNumber = draft.MobileNumber
	reservation.ReservationDate = draft.ReservationDate
	reservation.ReservationTime = draft.ReservationTime
	reservation.People = *draft.People

	if err := rs.DB.Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// Search matches on digits only, so "555-1234" finds "(555) 1234".
func (rs *ReservationService) Search(mobile string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := rs.DB.
		Where(strippedMobile+" LIKE ?", "%"+digitsOnly(mobile)+"%").
		Order("reservation_date asc").
		Find(&reservations).Error
	return reservations, err
}

// ListByDate returns the day's reservations in seating order, hiding
// finished ones.
func (rs *ReservationService) ListByDate(date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := rs.DB.
		Where("reservation_date = ?", date).
		Where("status <> ?", models.StatusFinished).
		Order("reservation_time asc").
		Find(&reservations).Error
	return reservations, err
}

// List returns every reservation ordered by date.
func (rs *ReservationService) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := rs.DB.Order("reservation_date asc").Find(&reservations).Error
	return reservations, err
}

func digitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
