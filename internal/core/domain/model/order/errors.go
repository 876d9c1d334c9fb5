package order

import "errors"

var (
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyAssigned is returned when a driver or drone is already bound
	// to the order, including when a concurrent writer won the race.
	ErrAlreadyAssigned = errors.New("order is already assigned")

	// ErrAlreadySettled is returned when a split has already been stamped.
	ErrAlreadySettled = errors.New("order is already settled")

	// ErrMissingLocation is returned when drone delivery lacks coordinates.
	ErrMissingLocation = errors.New("delivery location has no coordinates")

	// ErrNotSettled guards the delivered state, which always carries a split.
	ErrNotSettled = errors.New("order must be settled before delivery")
)
