package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("customer", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := kernel.NewActor(id, kernel.RoleCustomer, nil)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, id, a.ID())
		assert.True(t, a.Is(kernel.RoleCustomer, kernel.RoleAdmin))
		assert.False(t, a.Is(kernel.RoleDriver))
		assert.Nil(t, a.RestaurantID())
	})

	t.Run("restaurant requires restaurant id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurant, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("restaurant with restaurant id", func(t *testing.T) {
		rid := kernel.NewUUID()

		a, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurant, &rid)

		require.NoError(t, err)
		assert.Equal(t, rid, *a.RestaurantID())
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.Role("courier"), nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("nil id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.RoleAdmin, nil)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value", func(t *testing.T) {
		var a kernel.Actor

		assert.Equal(t, kernel.ErrActorIsNotConstructed, a.Validate())
	})
}
