package dto

import (
	"time"

	"github.com/google/uuid"

	"velvet/internal/domains/booking/model"
	"velvet/internal/domains/booking/pricing"
	"velvet/internal/domains/booking/snapshot"
	"velvet/shared"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	gModel "velvet/shared/model"
	"velvet/shared/timezone"
)

type CreateBookingRequest struct {
	VenueID     string `json:"venue_id"     validate:"required"`
	TableID     string `json:"table_id"     validate:"required"`
	ComboID     string `json:"combo_id"     validate:"required"`
	VoucherCode string `json:"voucher_code" validate:"omitempty,max=50"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	EndTime     string `json:"end_time"     validate:"required"`
	Note        string `json:"note"         validate:"omitempty,max=500"`
}

// Slot parses the requested window. An end time at or before the start time
// rolls over to the next day, since sessions routinely cross midnight.
func (c *CreateBookingRequest) Slot() (date, start, end time.Time, err error) {
	date, err = timezone.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return date, start, end, err
	}

	startClock, err := time.Parse(constant.TimeOnlyFormat, c.StartTime)
	if err != nil {
		return date, start, end, err
	}

	endClock, err := time.Parse(constant.TimeOnlyFormat, c.EndTime)
	if err != nil {
		return date, start, end, err
	}

	start = date.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end = date.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)

	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return date, start, end, nil
}

func (c *CreateBookingRequest) ToModel(bookerID, receiverID, snapshotRef string, amounts pricing.Amounts, user string) (model.BookedSchedule, error) {
	date, start, end, err := c.Slot()
	if err != nil {
		return model.BookedSchedule{}, err
	}

	return model.BookedSchedule{
		ID:                 uuid.NewString(),
		BookerID:           bookerID,
		ReceiverID:         receiverID,
		BookingType:        model.BookingTypeTable,
		OriginalPrice:      amounts.OriginalPrice,
		DiscountPercentage: amounts.DiscountPercentage,
		FinalPayment:       amounts.FinalPayment,
		PaymentStatus:      model.PaymentStatusPending,
		ScheduleStatus:     model.ScheduleStatusPending,
		BookingDate:        date,
		StartTime:          start,
		EndTime:            end,
		SnapshotRef:        snapshotRef,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BookingResponse struct {
	ID                 string `json:"id"`
	BookerID           string `json:"booker_id"`
	ReceiverID         string `json:"receiver_id"`
	BookingType        string `json:"booking_type"`
	OriginalPrice      int64  `json:"original_price"`
	DiscountPercentage int    `json:"discount_percentage"`
	FinalPayment       int64  `json:"final_payment_amount"`
	PaymentStatus      string `json:"payment_status"`
	ScheduleStatus     string `json:"schedule_status"`
	BookingDate        string `json:"booking_date"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	SnapshotRef        string `json:"detail_snapshot_ref"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.BookedSchedule) {
	r.ID = booking.ID
	r.BookerID = booking.BookerID
	r.ReceiverID = booking.ReceiverID
	r.BookingType = booking.BookingType
	r.OriginalPrice = booking.OriginalPrice
	r.DiscountPercentage = booking.DiscountPercentage
	r.FinalPayment = booking.FinalPayment
	r.PaymentStatus = booking.PaymentStatus.String()
	r.ScheduleStatus = booking.ScheduleStatus.String()
	r.BookingDate = timezone.Format(booking.BookingDate, constant.DateOnlyFormat)
	r.StartTime = timezone.Format(booking.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(booking.EndTime, constant.DateFormat)
	r.SnapshotRef = booking.SnapshotRef
	r.Metadata.FromModel(booking.Metadata)
}

type BookingDetailResponse struct {
	Booking BookingResponse  `json:"booking"`
	Detail  *snapshot.Detail `json:"detail,omitempty"`
}

type CreateBookingResponse struct {
	Booking  BookingResponse `json:"booking"`
	Detail   snapshot.Detail `json:"detail"`
	Discount int64           `json:"discount_amount"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookedSchedule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ScanResult is the structured outcome of a QR validation. Guard failures are
// reported here, not as transport errors, so scanners can branch on them.
type ScanResult struct {
	Valid            bool             `json:"valid"`
	AlreadyConfirmed bool             `json:"already_confirmed,omitempty"`
	Reason           string           `json:"reason,omitempty"`
	NewStatus        string           `json:"new_status,omitempty"`
	Booking          *BookingResponse `json:"booking,omitempty"`
}

type QRResponse struct {
	Token any    `json:"token"`
	Image string `json:"image"`
}

type PaymentLinkResponse struct {
	PaymentURL string `json:"payment_url"`
	OrderRef   string `json:"order_ref"`
}

type OverrideAmountRequest struct {
	DiscountPercentage int `json:"discount_percentage" validate:"gte=0"`
}
