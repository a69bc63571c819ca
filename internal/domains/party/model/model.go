package model

import (
	"velvet/shared/model"
)

const (
	CustomerTableName  = "customers"
	CustomerEntityName = "customer"

	StaffTableName  = "staff"
	StaffEntityName = "staff"

	FieldID        = "id"
	FieldAccountID = "account_id"
)

// Customer is the role-scoped identity a paying account acts through.
type Customer struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	FullName  string `db:"full_name"`
	Phone     string `db:"phone"`
	model.Metadata
}

// Staff is a venue employee identity, used for manual lifecycle operations at
// venues without scanning hardware.
type Staff struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	VenueID   string `db:"venue_id"`
	FullName  string `db:"full_name"`
	model.Metadata
}
