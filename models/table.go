package models

import "time"

// Table holds a weak reference to the reservation currently seated at it.
// ReservationID is NULL while the table is free; no back-pointer is stored
// on Reservation. The seat/clear transactions keep the two rows consistent.
type Table struct {
	ID            uint         `gorm:"column:table_id;primaryKey" json:"table_id"`
	TableName     string       `gorm:"type:varchar(50);not null" json:"table_name"`
	Capacity      int          `gorm:"not null" json:"capacity"`
	ReservationID *uint        `gorm:"index" json:"reservation_id"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Occupied reports whether the table currently holds a seated reservation.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
