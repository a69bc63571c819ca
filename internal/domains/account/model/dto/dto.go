package dto

import (
	"velvet/internal/domains/account/model"
	"velvet/shared"
	gDto "velvet/shared/dto"
	gModel "velvet/shared/model"
	"velvet/shared/timezone"

	"github.com/google/uuid"
)

type CreateAccountRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8"`
	Role     string  `json:"role"                validate:"required,oneof=customer venue staff accountant admin"`
	FullName *string `json:"full_name,omitempty"`

	// Profile fields consumed per role. Phone backs a customer profile,
	// VenueID attaches staff to their venue, VenueName and VenueAddress
	// open a new venue.
	Phone        string `json:"phone,omitempty"`
	VenueID      string `json:"venue_id,omitempty"`
	VenueName    string `json:"venue_name,omitempty"`
	VenueAddress string `json:"venue_address,omitempty"`
}

func (r *CreateAccountRequest) ToModel(username string, hashedPassword string) model.Account {
	return model.Account{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Role:     r.Role,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type AccountResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FullName  *string `json:"full_name,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *AccountResponse) FromModel(model model.Account) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateAccountRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type GetAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAccountsResponse) FromModels(models []model.Account, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accounts = make([]AccountResponse, len(models))
	for i, mod := range models {
		r.Accounts[i].FromModel(mod)
	}
}
