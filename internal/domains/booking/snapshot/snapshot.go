package snapshot

import (
	"time"
)

// TableInfo records the table chosen at booking time.
type TableInfo struct {
	TableID   string `json:"table_id"`
	TableName string `json:"table_name"`
	TableType string `json:"table_type,omitempty"`
}

// ComboInfo freezes the combo name and price as they were when the booking was
// made, so later combo edits never change what the customer agreed to pay.
type ComboInfo struct {
	ComboID   string `json:"combo_id"`
	ComboName string `json:"combo_name"`
	Price     int64  `json:"price"`
}

// VoucherInfo freezes the voucher applied to the booking, if any.
type VoucherInfo struct {
	VoucherID          string `json:"voucher_id"`
	Code               string `json:"code"`
	DiscountPercentage int    `json:"discount_percentage"`
}

// Detail is the append-mostly document attached to one booking. It is written
// once at creation; the only later mutation is attaching the generated QR image.
type Detail struct {
	BookingID string       `json:"booking_id"`
	BarName   string       `json:"bar_name"`
	Table     TableInfo    `json:"table"`
	Combo     ComboInfo    `json:"combo"`
	Voucher   *VoucherInfo `json:"voucher,omitempty"`
	Note      string       `json:"note,omitempty"`
	QRImage   string       `json:"qr_image,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
