package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field constraints shared by the constructors, setters and save hooks.
const (
	MaxPizzaNameLength = 50
	MinPrice           = 1
	MaxPrice           = 30
)

var (
	minPrice = decimal.NewFromInt(MinPrice)
	maxPrice = decimal.NewFromInt(MaxPrice)
)

// ValidatePizzaName rejects names longer than MaxPizzaNameLength characters.
// Empty names are accepted.
func ValidatePizzaName(name string) error {
	if utf8.RuneCountInString(name) > MaxPizzaNameLength {
		return &FieldError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", MaxPizzaNameLength),
		}
	}
	return nil
}

// Exponent window of any price in range written with at most two decimals.
// Values outside it are rejected before comparing, which would otherwise rescale
// the coefficient by 10^|exp|.
const (
	minPriceExponent = -2
	maxPriceExponent = 1
)

// ValidatePrice accepts only whole numbers between MinPrice and MaxPrice inclusive.
// The column holds two decimal places but fractional prices such as 12.50 are rejected.
func ValidatePrice(price decimal.Decimal) error {
	exp := price.Exponent()
	if exp < minPriceExponent || exp > maxPriceExponent ||
		!price.IsInteger() || price.LessThan(minPrice) || price.GreaterThan(maxPrice) {
		return &FieldError{
			Field:  "price",
			Reason: fmt.Sprintf("must be an integer between %d and %d", MinPrice, MaxPrice),
		}
	}
	return nil
}
