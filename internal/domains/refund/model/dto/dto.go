package dto

import (
	"mime/multipart"

	"velvet/internal/domains/refund/model"
	"velvet/shared"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/timezone"
)

type CreateRefundRequest struct {
	BookedScheduleID string                `json:"booked_schedule_id" validate:"required"`
	Reason           string                `json:"reason"             validate:"required,max=500"`
	Evidence         *multipart.FileHeader `json:"evidence"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	EvidenceFile     multipart.File        `json:"-"`
}

type ProcessRefundRequest struct {
	Note      string                `json:"note"  validate:"omitempty,max=500"`
	Proof     *multipart.FileHeader `json:"proof" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ProofFile multipart.File        `json:"-"`
}

type RejectRefundRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type RefundResponse struct {
	ID               string `json:"id"`
	BookedScheduleID string `json:"booked_schedule_id"`
	RequesterID      string `json:"requester_id"`
	Amount           int64  `json:"amount"`
	Reason           string `json:"reason"`
	Status           string `json:"status"`
	EvidenceURL      string `json:"evidence_url,omitempty"`
	ProofURL         string `json:"proof_url,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	ProcessedBy      string `json:"processed_by,omitempty"`
	ProcessedAt      string `json:"processed_at,omitempty"`
	gDto.Metadata
}

func (r *RefundResponse) FromModel(refund model.RefundRequest) {
	r.ID = refund.ID
	r.BookedScheduleID = refund.BookedScheduleID
	r.RequesterID = refund.RequesterID
	r.Amount = refund.Amount
	r.Reason = refund.Reason
	r.Status = refund.Status.String()
	r.EvidenceURL = refund.EvidenceURL
	r.ProofURL = refund.ProofURL
	r.RejectionReason = refund.RejectionReason
	r.ProcessedBy = refund.ProcessedBy

	if refund.ProcessedAt != nil {
		r.ProcessedAt = timezone.Format(*refund.ProcessedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(refund.Metadata)
}

type GetRefundsResponse struct {
	Refunds   []RefundResponse `json:"refunds"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRefundsResponse) FromModels(models []model.RefundRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Refunds = make([]RefundResponse, len(models))
	for i, mod := range models {
		r.Refunds[i].FromModel(mod)
	}
}
