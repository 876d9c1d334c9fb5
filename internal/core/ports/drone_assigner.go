package ports

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

var ErrAssignmentFailed = errors.New("drone assignment failed")

// AssignmentFailedError carries the drone service's explanation of a
// rejected mission request.
type AssignmentFailedError struct {
	Detail string
	Cause  error
}

func NewAssignmentFailedError(detail string, cause error) *AssignmentFailedError {
	return &AssignmentFailedError{Detail: detail, Cause: cause}
}

func (e *AssignmentFailedError) Error() string {
	switch {
	case e.Detail != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (cause: %v)", ErrAssignmentFailed, e.Detail, e.Cause)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", ErrAssignmentFailed, e.Detail)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", ErrAssignmentFailed, e.Cause)
	default:
		return ErrAssignmentFailed.Error()
	}
}

func (e *AssignmentFailedError) Unwrap() error {
	return ErrAssignmentFailed
}

type DroneAssignmentRequest struct {
	OrderID kernel.UUID
	From    kernel.Coordinates
	To      kernel.Coordinates
}

// DroneAssigner requests a drone mission. Implementations return an
// AssignmentFailedError for every failure, including timeouts.
type DroneAssigner interface {
	Assign(ctx context.Context, req DroneAssignmentRequest) (order.DroneMission, error)
}
