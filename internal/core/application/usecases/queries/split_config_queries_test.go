package queries_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeConfig(t *testing.T, s *store, actor kernel.Actor, rid *kernel.UUID) (queries.SplitConfigView, error) {
	t.Helper()
	query, err := queries.NewGetActiveSplitConfigQuery(actor, rid)
	require.NoError(t, err)
	return queries.NewGetActiveSplitConfigQueryHandler(s.db).Handle(t.Context(), query)
}

func TestGetActiveSplitConfigQueryHandler(t *testing.T) {
	s := newStore(t)
	admin := newActor(t, kernel.RoleAdmin, nil)
	global := s.activate(nil, 1)
	rid := kernel.NewUUID()
	own := s.activate(&rid, 1)

	t.Run("global", func(t *testing.T) {
		view, err := activeConfig(t, s, admin, nil)

		require.NoError(t, err)
		assert.Equal(t, global.ID().Bytes(), view.ID)
		assert.Equal(t, "global", view.Scope)
		assert.Nil(t, view.RestaurantID)
		assert.True(t, view.Active)
		assert.True(t, view.AdminRate.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, "percent", view.Method)
	})

	t.Run("restaurant_scope", func(t *testing.T) {
		view, err := activeConfig(t, s, admin, &rid)

		require.NoError(t, err)
		assert.Equal(t, own.ID().Bytes(), view.ID)
		require.NotNil(t, view.RestaurantID)
		assert.Equal(t, rid.Bytes(), *view.RestaurantID)
	})

	t.Run("falls_back_to_global", func(t *testing.T) {
		other := kernel.NewUUID()

		view, err := activeConfig(t, s, admin, &other)

		require.NoError(t, err)
		assert.Equal(t, global.ID().Bytes(), view.ID)
	})

	t.Run("staff_read_their_restaurant", func(t *testing.T) {
		view, err := activeConfig(t, s, staffOf(t, rid), nil)

		require.NoError(t, err)
		assert.Equal(t, own.ID().Bytes(), view.ID)
	})
}

func TestGetActiveSplitConfigQueryHandler_NoConfig(t *testing.T) {
	s := newStore(t)

	_, err := activeConfig(t, s, newActor(t, kernel.RoleAdmin, nil), nil)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetActiveSplitConfigQuery_Forbidden(t *testing.T) {
	rid := kernel.NewUUID()
	other := kernel.NewUUID()

	_, err := queries.NewGetActiveSplitConfigQuery(staffOf(t, rid), &other)
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = queries.NewGetActiveSplitConfigQuery(newActor(t, kernel.RoleCustomer, nil), nil)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestListSplitConfigsQueryHandler_History(t *testing.T) {
	s := newStore(t)
	admin := newActor(t, kernel.RoleAdmin, nil)
	s.activate(nil, 1)
	s.activate(nil, 2)
	latest := s.activate(nil, 3)
	rid := kernel.NewUUID()
	s.activate(&rid, 1)

	query, err := queries.NewListSplitConfigsQuery(admin, nil)
	require.NoError(t, err)
	views, err := queries.NewListSplitConfigsQueryHandler(s.db).Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{views[0].Version, views[1].Version, views[2].Version})
	assert.Equal(t, latest.ID().Bytes(), views[0].ID)
	assert.True(t, views[0].Active)
	assert.False(t, views[1].Active)
	assert.False(t, views[2].Active)

	scoped, err := queries.NewListSplitConfigsQuery(admin, &rid)
	require.NoError(t, err)
	restaurantViews, err := queries.NewListSplitConfigsQueryHandler(s.db).Handle(t.Context(), scoped)
	require.NoError(t, err)
	assert.Len(t, restaurantViews, 1)
}

func TestNewListSplitConfigsQuery_AdminOnly(t *testing.T) {
	rid := kernel.NewUUID()

	_, err := queries.NewListSplitConfigsQuery(staffOf(t, rid), &rid)

	require.ErrorIs(t, err, errs.ErrForbidden)
}
