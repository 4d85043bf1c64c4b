package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/periodic-tables/models"
)

// TableService owns table creation and the seat/clear transactions that
// keep the occupancy reference and the reservation status in step.
type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

// TableDraft is the client-supplied table payload. An optional
// reservation_id seats that reservation at the new table immediately.
type TableDraft struct {
	TableName     string `json:"table_name"`
	Capacity      *int   `json:"capacity"`
	ReservationID *uint  `json:"reservation_id"`
}

// Create persists a new table. When the draft carries a reservation_id the
// insert and the seating happen in one transaction.
func (ts *TableService) Create(draft TableDraft) (*models.Table, error) {
	if draft.TableName == "" {
		return nil, ValidationErr("A 'table_name' property is required")
	}
	if len(draft.TableName) < 2 {
		return nil, ValidationErr("table_name must be at least 2 characters long")
	}
	if draft.Capacity == nil {
		return nil, ValidationErr("A 'capacity' property is required")
	}
	if *draft.Capacity <= 0 {
		return nil, ValidationErr("capacity must be a number greater than 0")
	}

	table := models.Table{
		TableName: draft.TableName,
		Capacity:  *draft.Capacity,
	}
	err := ts.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&table).Error; err != nil {
			return err
		}
		if draft.ReservationID == nil {
			return nil
		}
		return seatAt(tx, &table, *draft.ReservationID)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// List returns every table ordered by name.
func (ts *TableService) List() ([]models.Table, error) {
	var tables []models.Table
	err := ts.DB.Order("table_name asc").Find(&tables).Error
	return tables, err
}

// Get reads one table by id.
func (ts *TableService) Get(id uint) (*models.Table, error) {
	var table models.Table
	if err := ts.DB.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("Table with id %d cannot be found", id)
		}
		return nil, err
	}
	return &table, nil
}

// Seat assigns a booked reservation to a free table. The occupancy
// reference and the status change commit together or not at all.
func (ts *TableService) Seat(tableID, reservationID uint) (*models.Table, error) {
	var table models.Table
	err := ts.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("Table with id %d cannot be found", tableID)
			}
			return err
		}
		return seatAt(tx, &table, reservationID)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// Clear frees an occupied table, finishing whatever reservation sat at it.
// Both writes commit together or not at all.
func (ts *TableService) Clear(tableID uint) (*models.Table, error) {
	var table models.Table
	err := ts.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("Table with id %d cannot be found", tableID)
			}
			return err
		}
		if !table.Occupied() {
			return ConflictErr("Table is not occupied")
		}

		err := tx.Model(&models.Reservation{}).
			Where("reservation_id = ?", *table.ReservationID).
			Update("status", models.StatusFinished).Error
		if err != nil {
			return err
		}
		if err := tx.Model(&table).Update("reservation_id", nil).Error; err != nil {
			return err
		}
		table.ReservationID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// seatAt runs the occupancy checks and both writes inside the caller's
// transaction.
func seatAt(tx *gorm.DB, table *models.Table, reservationID uint) error {
	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("Reservation %d does not exist", reservationID)
		}
		return err
	}

	if reservation.Status == models.StatusSeated {
		return ConflictErr("Reservation is already seated")
	}
	if table.Occupied() {
		return ConflictErr("Table is occupied")
	}
	if table.Capacity < reservation.People {
		return ValidationErr("Table does not have sufficient capacity for %d people", reservation.People)
	}

	if err := tx.Model(&reservation).Update("status", models.StatusSeated).Error; err != nil {
		return err
	}
	if err := tx.Model(table).Update("reservation_id", reservation.ID).Error; err != nil {
		return err
	}
	table.ReservationID = &reservation.ID
	return nil
}
