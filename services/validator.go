package services

import (
	"time"

	"github.com/example/periodic-tables/models"
)

// ReservationDraft is the client-supplied reservation payload. People is a
// pointer so a missing value can be told apart from an explicit zero.
type ReservationDraft struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          *int   `json:"people"`
	Status          string `json:"status"`
}

// reservationValidator is one step of the creation pipeline. The chain is
// run in order and stops at the first violation.
type reservationValidator func(d *ReservationDraft, now time.Time) *Error

var createValidators = []reservationValidator{
	requireFields,
	peoplePositive,
	timeWellFormed,
	dateTimeParses,
	notInPast,
	duringBusinessHours,
	notOnClosedDay,
	statusBookedOrAbsent,
}

// updateValidators re-checks every field rule; the status rule is owned by
// the transition table instead.
var updateValidators = createValidators[:len(createValidators)-1]

func runValidators(d *ReservationDraft, now time.Time, chain []reservationValidator) error {
	for _, validate := range chain {
		if err := validate(d, now); err != nil {
			return err
		}
	}
	return nil
}

func requireFields(d *ReservationDraft, _ time.Time) *Error {
	fields := []struct {
		name    string
		present bool
	}{
		{"first_name", d.FirstName != ""},
		{"last_name", d.LastName != ""},
		{"mobile_number", d.MobileNumber != ""},
		{"reservation_date", d.ReservationDate != ""},
		{"reservation_time", d.ReservationTime != ""},
		{"people", d.People != nil},
	}
	for _, f := range fields {
		if !f.present {
			return ValidationErr("Field %s is required", f.name)
		}
	}
	return nil
}

func peoplePositive(d *ReservationDraft, _ time.Time) *Error {
	if *d.People <= 0 {
		return ValidationErr("people must be a number greater than 0")
	}
	return nil
}

func timeWellFormed(d *ReservationDraft, _ time.Time) *Error {
	if !ValidTimeFormat(d.ReservationTime) {
		return ValidationErr("reservation_time must be a valid time in HH:MM format")
	}
	return nil
}

func dateTimeParses(d *ReservationDraft, _ time.Time) *Error {
	if _, err := CombineDateTime(d.ReservationDate, d.ReservationTime); err != nil {
		return ValidationErr("Invalid reservation_date or reservation_time format")
	}
	return nil
}

func notInPast(d *ReservationDraft, now time.Time) *Error {
	if IsPast(d.ReservationDate, d.ReservationTime, now) {
		return ValidationErr("Reservation date and time must be in the future")
	}
	return nil
}

func duringBusinessHours(d *ReservationDraft, _ time.Time) *Error {
	if !WithinBusinessHours(d.ReservationTime) {
		return ValidationErr("Reservation must be between 10:30 AM and 9:30 PM")
	}
	return nil
}

func notOnClosedDay(d *ReservationDraft, _ time.Time) *Error {
	if IsClosedDay(d.ReservationDate) {
		return ValidationErr("Reservations cannot be made on %ss as the restaurant is closed", ClosedWeekday)
	}
	return nil
}

func statusBookedOrAbsent(d *ReservationDraft, _ time.Time) *Error {
	if d.Status != "" && d.Status != string(models.StatusBooked) {
		return ValidationErr("Invalid status: %s. Status must be 'booked' or not provided", d.Status)
	}
	return nil
}
