package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// TransportMode is the fulfillment channel chosen when the order is placed.
type TransportMode string

const (
	Human TransportMode = "human"
	Drone TransportMode = "drone"
)

func ParseTransportMode(s string) (TransportMode, error) {
	mode := TransportMode(s)
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

func (m TransportMode) Validate() error {
	if m != Human && m != Drone {
		return errs.NewValueIsInvalidErrorWithCause("transport mode", fmt.Errorf("%q is not human or drone", string(m)))
	}
	return nil
}

func (m TransportMode) String() string {
	return string(m)
}
