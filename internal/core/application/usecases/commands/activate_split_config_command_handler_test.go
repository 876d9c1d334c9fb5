package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedTerms(t *testing.T) splitconfig.Terms {
	t.Helper()
	terms, err := splitconfig.NewFixedTerms(usd(t, 300), splitconfig.RemainderByPercent, splitconfig.RemainderRates{
		Admin:      decimal.NewFromInt(15),
		Restaurant: decimal.NewFromInt(85),
	})
	require.NoError(t, err)
	return terms
}

func TestActivateSplitConfigCommandHandler_Handle_NextVersion(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, kernel.RoleAdmin, nil)
	restaurantID := kernel.NewUUID()

	cmd, err := commands.NewActivateSplitConfigCommand(kernel.NewUUID(), &restaurantID, fixedTerms(t), admin)
	require.NoError(t, err)

	repo := new(MockSplitConfigRepository)
	uow := new(MockUoW)
	var activated *splitconfig.SplitConfig

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SplitConfigRepository").Return(repo).Once(),
		repo.On("LatestVersion", ctx, mock.Anything).Return(4, nil).Once(),
		repo.On("Activate", ctx, mock.AnythingOfType("*splitconfig.SplitConfig")).
			Run(func(args mock.Arguments) { activated = args.Get(1).(*splitconfig.SplitConfig) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSplitConfigUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewActivateSplitConfigCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, activated)
	assert.Equal(t, cmd.ConfigID(), activated.ID())
	assert.Equal(t, 5, activated.Version())
	assert.True(t, activated.IsActive())
	assert.Equal(t, splitconfig.ScopeRestaurant, activated.Scope())
	assert.Equal(t, splitconfig.MethodFixed, activated.Method())
	assert.Equal(t, admin.ID(), activated.CreatedBy())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestActivateSplitConfigCommandHandler_Handle_FirstGlobalConfig(t *testing.T) {
	ctx := t.Context()
	terms := percentConfig(t).Terms()

	cmd, err := commands.NewActivateSplitConfigCommand(kernel.NewUUID(), nil, terms, newActor(t, kernel.RoleAdmin, nil))
	require.NoError(t, err)
	assert.Nil(t, cmd.RestaurantID())

	repo := new(MockSplitConfigRepository)
	repo.On("LatestVersion", ctx, (*kernel.UUID)(nil)).Return(0, nil).Once()
	repo.On("Activate", ctx, mock.MatchedBy(func(cfg *splitconfig.SplitConfig) bool {
		return cfg.Version() == 1 && cfg.Scope() == splitconfig.ScopeGlobal
	})).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SplitConfigRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockSplitConfigUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewActivateSplitConfigCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}

func TestActivateSplitConfigCommandHandler_Handle_OnlyAdmins(t *testing.T) {
	restaurantID := kernel.NewUUID()
	staff := newActor(t, kernel.RoleRestaurant, &restaurantID)

	cmd, err := commands.NewActivateSplitConfigCommand(kernel.NewUUID(), &restaurantID, fixedTerms(t), staff)
	require.NoError(t, err)

	factory := new(MockSplitConfigUoWFactory)
	handler := commands.NewActivateSplitConfigCommandHandler(factory)

	require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestNewActivateSplitConfigCommand_RejectsInvalidTerms(t *testing.T) {
	bad := splitconfig.RestoreTerms(splitconfig.MethodPercent, splitconfig.Rates{
		Admin:      decimal.NewFromInt(50),
		Restaurant: decimal.NewFromInt(60),
	}, kernel.Money{}, splitconfig.RemainderUnset, splitconfig.RemainderRates{}, "USD")

	_, err := commands.NewActivateSplitConfigCommand(kernel.NewUUID(), nil, bad, newActor(t, kernel.RoleAdmin, nil))

	require.ErrorIs(t, err, splitconfig.ErrInvalidConfig)
}
