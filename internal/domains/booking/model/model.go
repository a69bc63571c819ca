package model

import (
	"time"

	"velvet/shared/model"
)

const (
	TableName  = "booked_schedules"
	EntityName = "booking"

	FieldID                 = "id"
	FieldBookerID           = "booker_id"
	FieldReceiverID         = "receiver_id"
	FieldBookingType        = "booking_type"
	FieldOriginalPrice      = "original_price"
	FieldDiscountPercentage = "discount_percentage"
	FieldFinalPayment       = "final_payment_amount"
	FieldPaymentStatus      = "payment_status"
	FieldScheduleStatus     = "schedule_status"
	FieldBookingDate        = "booking_date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldSnapshotRef        = "detail_snapshot_ref"
)

const (
	BookingTypeTable = "table"
)

// ScheduleStatus is the lifecycle state of a booking. It is owned exclusively by
// the booking service; nothing else writes the column.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusConfirmed ScheduleStatus = "confirmed"
	ScheduleStatusArrived   ScheduleStatus = "arrived"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusRejected  ScheduleStatus = "rejected"
)

// Terminal reports whether no further transition may leave the status.
func (s ScheduleStatus) Terminal() bool {
	switch s {
	case ScheduleStatusCompleted, ScheduleStatusCancelled, ScheduleStatusRejected:
		return true
	case ScheduleStatusPending, ScheduleStatusConfirmed, ScheduleStatusArrived:
		return false
	}

	return false
}

// CanTransitionTo encodes the full transition table. Any edge not listed here is
// forbidden, including self-transitions.
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	switch s {
	case ScheduleStatusPending:
		switch next {
		case ScheduleStatusConfirmed, ScheduleStatusCancelled, ScheduleStatusRejected:
			return true
		case ScheduleStatusPending, ScheduleStatusArrived, ScheduleStatusCompleted:
			return false
		}
	case ScheduleStatusConfirmed:
		switch next {
		case ScheduleStatusArrived, ScheduleStatusCompleted:
			return true
		case ScheduleStatusPending, ScheduleStatusConfirmed, ScheduleStatusCancelled, ScheduleStatusRejected:
			return false
		}
	case ScheduleStatusArrived:
		return next == ScheduleStatusCompleted
	case ScheduleStatusCompleted, ScheduleStatusCancelled, ScheduleStatusRejected:
		return false
	}

	return false
}

func (s ScheduleStatus) String() string {
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) String() string {
	return string(p)
}

// BookedSchedule is the canonical booking record and the single source of truth
// for both status fields. Pricing fields are written once by the pricing
// calculator; amount overrides must re-run it.
type BookedSchedule struct {
	ID                 string         `db:"id"`
	BookerID           string         `db:"booker_id"`
	ReceiverID         string         `db:"receiver_id"`
	BookingType        string         `db:"booking_type"`
	OriginalPrice      int64          `db:"original_price"`
	DiscountPercentage int            `db:"discount_percentage"`
	FinalPayment       int64          `db:"final_payment_amount"`
	PaymentStatus      PaymentStatus  `db:"payment_status"`
	ScheduleStatus     ScheduleStatus `db:"schedule_status"`
	BookingDate        time.Time      `db:"booking_date"`
	StartTime          time.Time      `db:"start_time"`
	EndTime            time.Time      `db:"end_time"`
	SnapshotRef        string         `db:"detail_snapshot_ref"`
	model.Metadata
}

// CompletableAt returns the instant the booking becomes eligible for
// auto-completion, given the configured grace window.
func (b *BookedSchedule) CompletableAt(graceDays int) time.Time {
	return b.EndTime.AddDate(0, 0, graceDays)
}

// AutoCompletable reports whether the sweep (or a lazy read) may force the
// booking to completed: confirmed, paid, and past the grace window.
func (b *BookedSchedule) AutoCompletable(graceDays int, now time.Time) bool {
	return b.ScheduleStatus == ScheduleStatusConfirmed &&
		b.PaymentStatus == PaymentStatusPaid &&
		now.After(b.CompletableAt(graceDays))
}
