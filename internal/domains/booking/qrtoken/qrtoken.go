package qrtoken

//go:generate go run go.uber.org/mock/mockgen -source=./qrtoken.go -destination=./mocks/qrtoken_mock.go -package=mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"velvet/config"
	"velvet/internal/domains/booking/model"
	"velvet/internal/domains/booking/snapshot"
	"velvet/shared/base64"
	"velvet/shared/constant"
	"velvet/shared/timezone"
)

const (
	// TypeBookingConfirmation marks a token as a table-booking check-in artifact.
	TypeBookingConfirmation = "booking_confirmation"

	pngSize = 256
)

var (
	ErrMalformed        = errors.New("token payload is malformed")
	ErrChecksumMismatch = errors.New("token checksum mismatch")
)

// Token is the self-describing payload rendered into the QR image. It is never
// persisted; it is regenerated on demand from the canonical record and its
// snapshot. The checksum binds booking id and payable amount so a token shown
// with a doctored amount fails validation.
type Token struct {
	Type        string `json:"type"`
	BookingID   string `json:"booking_id"`
	PayerName   string `json:"payer_name"`
	ComboName   string `json:"combo_name"`
	Amount      int64  `json:"amount"`
	BarName     string `json:"bar_name"`
	BookingDate string `json:"booking_date"`
	GeneratedAt string `json:"generated_at"`
	Checksum    string `json:"checksum"`
}

type Service interface {
	Issue(booking model.BookedSchedule, detail snapshot.Detail) Token
	Checksum(bookingID string, amount int64) string
	Verify(token Token) error
	RenderPNG(token Token) (string, error)
}

type serviceImpl struct {
	salt string
}

func New(cfg *config.Config) Service {
	return &serviceImpl{
		salt: cfg.Booking.QRSalt,
	}
}

func (s *serviceImpl) Issue(booking model.BookedSchedule, detail snapshot.Detail) Token {
	return Token{
		Type:        TypeBookingConfirmation,
		BookingID:   booking.ID,
		PayerName:   booking.BookerID,
		ComboName:   detail.Combo.ComboName,
		Amount:      booking.FinalPayment,
		BarName:     detail.BarName,
		BookingDate: timezone.Format(booking.BookingDate, constant.DateOnlyFormat),
		GeneratedAt: timezone.Format(timezone.Now(), constant.DateFormat),
		Checksum:    s.Checksum(booking.ID, booking.FinalPayment),
	}
}

// Checksum is a deterministic digest over booking id, payable amount, and a
// server-side salt. It detects tampering and stale displayed amounts; it is not
// a keyed MAC and carries no expiry.
func (s *serviceImpl) Checksum(bookingID string, amount int64) string {
	sum := sha256.Sum256([]byte(bookingID + "|" + strconv.FormatInt(amount, 10) + "|" + s.salt))

	return hex.EncodeToString(sum[:])
}

// Verify performs the structural and checksum checks. Venue ownership, payment
// state, and the status dispatch happen in the booking service against the
// freshly loaded canonical record.
func (s *serviceImpl) Verify(token Token) error {
	if token.Type != TypeBookingConfirmation || token.BookingID == "" || token.Checksum == "" {
		return ErrMalformed
	}

	if s.Checksum(token.BookingID, token.Amount) != token.Checksum {
		return ErrChecksumMismatch
	}

	return nil
}

// RenderPNG encodes the token as a scannable PNG, returned as a base64 data URL
// suitable for attaching to the detail snapshot.
func (s *serviceImpl) RenderPNG(token Token) (string, error) {
	payload, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("failed to render QR image: %w", err)
	}

	return base64.ToDataURL("image/png", png), nil
}
