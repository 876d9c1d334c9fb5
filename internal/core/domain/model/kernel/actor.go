package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Role is the kind of party acting on an order.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDriver     Role = "driver"
	RoleDrone      Role = "drone"
	RoleAdmin      Role = "admin"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor constructor")

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDriver, RoleDrone, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Actor is the authenticated party behind a command. Restaurant staff carry
// the restaurant they act for.
type Actor struct {
	id           UUID
	role         Role
	restaurantID *UUID
	guard        guard.ConstructorGuard
}

func NewActor(id UUID, role Role, restaurantID *UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleRestaurant && restaurantID == nil {
		return Actor{}, errs.NewValueIsRequiredError("restaurant actor must carry a restaurant ID")
	}

	actor := Actor{id: id, role: role, guard: guard.NewConstructorGuard()}
	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return Actor{}, err
		}
		rid := *restaurantID
		actor.restaurantID = &rid
	}
	return actor, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) RestaurantID() *UUID {
	if a.restaurantID == nil {
		return nil
	}
	rid := *a.restaurantID
	return &rid
}

// Is reports whether the actor holds one of the given roles.
func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.role == r {
			return true
		}
	}
	return false
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
