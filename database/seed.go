package database

import (
	"gorm.io/gorm"

	"github.com/example/periodic-tables/models"
)

// Seed loads starter fixtures into an empty database so a fresh dev
// instance has something to browse. Existing rows are left alone.
func Seed(db *gorm.DB) error {
	var count int64

	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		tables := []models.Table{
			{TableName: "Bar #1", Capacity: 1},
			{TableName: "Bar #2", Capacity: 1},
			{TableName: "#1", Capacity: 6},
			{TableName: "#2", Capacity: 6},
		}
		if err := db.Create(&tables).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Reservation{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		reservations := []models.Reservation{
			{
				FirstName:       "Rick",
				LastName:        "Sanchez",
				MobileNumber:    "202-555-0164",
				ReservationDate: "2035-12-30",
				ReservationTime: "20:00",
				People:          6,
				Status:          models.StatusBooked,
			},
			{
				FirstName:       "Frank",
				LastName:        "Palicky",
				MobileNumber:    "202-555-0153",
				ReservationDate: "2035-12-30",
				ReservationTime: "20:00",
				People:          1,
				Status:          models.StatusBooked,
			},
			{
				FirstName:       "Bird",
				LastName:        "Person",
				MobileNumber:    "808-555-0141",
				ReservationDate: "2035-12-31",
				ReservationTime: "18:00",
				People:          1,
				Status:          models.StatusBooked,
			},
		}
		if err := db.Create(&reservations).Error; err != nil {
			return err
		}
	}

	return nil
}
