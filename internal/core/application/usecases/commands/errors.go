package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
)

var (
	ErrRestaurantUnavailable = errors.New("restaurant unavailable")
	ErrDuplicateRequest      = errors.New("duplicate request")
)

// RestaurantUnavailableError explains why a restaurant cannot be used. It
// only unwraps to ErrRestaurantUnavailable so a registry "not found" is
// never mistaken for a missing order.
type RestaurantUnavailableError struct {
	RestaurantID kernel.UUID
	Reason       string
	Cause        error
}

func newRestaurantUnavailableError(id kernel.UUID, reason string, cause error) *RestaurantUnavailableError {
	return &RestaurantUnavailableError{RestaurantID: id, Reason: reason, Cause: cause}
}

func (e *RestaurantUnavailableError) Error() string {
	msg := fmt.Sprintf("%s: restaurant %s is %s", ErrRestaurantUnavailable, e.RestaurantID, e.Reason)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *RestaurantUnavailableError) Unwrap() error {
	return ErrRestaurantUnavailable
}
