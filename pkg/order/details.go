package order

import (
	"fmt"
	"strings"
)

// CheckoutDetails is the shipping information captured by the checkout form.
type CheckoutDetails struct {
	Address     string `json:"address" bson:"address" validate:"notblank"`
	PhoneNumber string `json:"phone_number" bson:"phone_number" validate:"notblank"`
	Notes       string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Normalize trims surrounding whitespace from every field.
func (d CheckoutDetails) Normalize() CheckoutDetails {
	return CheckoutDetails{
		Address:     strings.TrimSpace(d.Address),
		PhoneNumber: strings.TrimSpace(d.PhoneNumber),
		Notes:       strings.TrimSpace(d.Notes),
	}
}

// Validate reports the blank required fields, wrapping ErrMissingDetails.
func (d CheckoutDetails) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingDetails, strings.Join(missing, ", "))
	}
	return nil
}
