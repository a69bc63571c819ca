package model

import (
	"time"

	"velvet/shared/model"
)

const (
	TableName  = "refund_requests"
	EntityName = "refund_request"

	FieldID               = "id"
	FieldBookedScheduleID = "booked_schedule_id"
	FieldRequesterID      = "requester_id"
	FieldStatus           = "status"
	FieldProofURL         = "proof_url"
	FieldRejectionReason  = "rejection_reason"
	FieldProcessedBy      = "processed_by"
	FieldProcessedAt      = "processed_at"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether the request can no longer change status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Settleable reports whether an accountant may still complete or reject the
// request.
func (s Status) Settleable() bool {
	switch s {
	case StatusPending, StatusProcessing:
		return true
	case StatusCompleted, StatusRejected:
		return false
	}

	return false
}

// RefundRequest is the secondary aggregate raised against one booking. Its
// lifecycle is deliberately decoupled from the booking's schedule status;
// settling the request never mutates the originating booking.
type RefundRequest struct {
	ID               string     `db:"id"`
	BookedScheduleID string     `db:"booked_schedule_id"`
	RequesterID      string     `db:"requester_id"`
	Amount           int64      `db:"amount"`
	Reason           string     `db:"reason"`
	Status           Status     `db:"status"`
	EvidenceURL      string     `db:"evidence_url"`
	ProofURL         string     `db:"proof_url"`
	RejectionReason  string     `db:"rejection_reason"`
	ProcessedBy      string     `db:"processed_by"`
	ProcessedAt      *time.Time `db:"processed_at"`
	model.Metadata
}
