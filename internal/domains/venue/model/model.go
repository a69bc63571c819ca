package model

import (
	"errors"
	"time"

	"velvet/shared/model"
)

const (
	VenueTableName  = "venues"
	VenueEntityName = "venue"

	ComboTableName  = "combos"
	ComboEntityName = "combo"

	VoucherTableName  = "vouchers"
	VoucherEntityName = "voucher"

	TableTableName  = "venue_tables"
	TableEntityName = "venue_table"
)

const (
	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldCode    = "code"
)

var (
	ErrVoucherInactive  = errors.New("voucher is not active")
	ErrVoucherNotOpen   = errors.New("voucher is outside its validity window")
	ErrVoucherMinSpend  = errors.New("combo price is below the voucher minimum spend")
	ErrVoucherExhausted = errors.New("voucher usage cap reached")
)

type Venue struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	Name      string `db:"name"`
	Address   string `db:"address"`
	model.Metadata
}

// Combo is a fixed-price bundle of table plus service offered by one venue.
type Combo struct {
	ID      string `db:"id"`
	VenueID string `db:"venue_id"`
	Name    string `db:"name"`
	Price   int64  `db:"price"`
	Active  bool   `db:"active"`
	model.Metadata
}

type Voucher struct {
	ID                 string    `db:"id"`
	VenueID            string    `db:"venue_id"`
	Code               string    `db:"code"`
	DiscountPercentage int       `db:"discount_percentage"`
	MinSpend           int64     `db:"min_spend"`
	UsageLimit         int       `db:"usage_limit"`
	UsedCount          int       `db:"used_count"`
	ValidFrom          time.Time `db:"valid_from"`
	ValidTo            time.Time `db:"valid_to"`
	Active             bool      `db:"active"`
	model.Metadata
}

// ValidateFor checks every voucher constraint against the combo price at the
// moment of booking creation.
func (v *Voucher) ValidateFor(comboPrice int64, now time.Time) error {
	if !v.Active {
		return ErrVoucherInactive
	}

	if now.Before(v.ValidFrom) || now.After(v.ValidTo) {
		return ErrVoucherNotOpen
	}

	if comboPrice < v.MinSpend {
		return ErrVoucherMinSpend
	}

	if v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit {
		return ErrVoucherExhausted
	}

	return nil
}

type VenueTable struct {
	ID        string `db:"id"`
	VenueID   string `db:"venue_id"`
	Name      string `db:"name"`
	TableType string `db:"table_type"`
	Capacity  int    `db:"capacity"`
	model.Metadata
}
