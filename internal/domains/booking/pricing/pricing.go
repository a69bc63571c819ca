package pricing

import (
	"errors"
)

var (
	ErrNegativeBasePrice = errors.New("base price must not be negative")
	ErrDiscountBounds    = errors.New("discount percentage out of bounds")
	ErrOverDiscount      = errors.New("discount exceeds base price")
)

// Amounts is the full pricing breakdown stored on a booking. All values are in
// the smallest currency unit.
type Amounts struct {
	OriginalPrice      int64
	DiscountPercentage int
	DiscountAmount     int64
	FinalPayment       int64
}

// ComputeAmounts derives the payable amount from a combo base price and an
// optional voucher discount. maxDiscount is the configured upper bound for the
// percentage. A final amount below zero is an error, never a silent clamp, so
// pricing mistakes surface instead of hiding.
func ComputeAmounts(basePrice int64, discountPercentage, maxDiscount int) (Amounts, error) {
	if basePrice < 0 {
		return Amounts{}, ErrNegativeBasePrice
	}

	if discountPercentage < 0 || discountPercentage > maxDiscount {
		return Amounts{}, ErrDiscountBounds
	}

	discountAmount := basePrice * int64(discountPercentage) / 100

	final := basePrice - discountAmount
	if final < 0 {
		return Amounts{}, ErrOverDiscount
	}

	return Amounts{
		OriginalPrice:      basePrice,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     discountAmount,
		FinalPayment:       final,
	}, nil
}
