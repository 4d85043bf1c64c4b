package models

import "time"

// ReservationStatus is the closed set of lifecycle states a reservation
// can be in. Stored as plain text in the reservations table.
type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "booked"
	StatusSeated    ReservationStatus = "seated"
	StatusFinished  ReservationStatus = "finished"
	StatusCancelled ReservationStatus = "cancelled"
)

// legalTransitions maps a current status to the statuses it may move to.
// finished and cancelled are terminal, so they have no entry.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusFinished, StatusCancelled},
}

// Valid reports whether s is one of the four recognized statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether s -> next is in the transition table.
// Re-asserting the current status (e.g. seated -> seated) is rejected.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID              uint              `gorm:"column:reservation_id;primaryKey" json:"reservation_id"`
	FirstName       string            `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string            `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string            `gorm:"type:varchar(50);not null" json:"mobile_number"`
	ReservationDate string            `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string            `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int               `gorm:"not null" json:"people"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
