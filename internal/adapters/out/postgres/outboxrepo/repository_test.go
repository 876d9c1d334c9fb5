package outboxrepo_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/outbox"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

func openRepo(t *testing.T) *outboxrepo.GormOutboxRepository {
	t.Helper()
	repo, _ := openRepoDB(t)
	return repo
}

func openRepoDB(t *testing.T) (*outboxrepo.GormOutboxRepository, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t, &outboxrepo.MessageDTO{})
	return outboxrepo.NewGormOutboxRepository(db), db
}

func newMessage(t *testing.T, createdAt time.Time) *outbox.Message {
	t.Helper()
	m, err := outbox.NewMessage(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"order.created",
		[]byte(`{"orderId":"x"}`),
		"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		createdAt,
	)
	require.NoError(t, err)
	return m
}

func TestGormOutboxRepository_AddAndGetPending(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()
	late := newMessage(t, testNow.Add(time.Minute))
	early := newMessage(t, testNow)

	require.NoError(t, repo.Add(ctx, late, early))

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[0].ID().IsEqual(early.ID()))
	assert.True(t, pending[1].ID().IsEqual(late.ID()))

	got := pending[0]
	assert.True(t, got.AggregateID().IsEqual(early.AggregateID()))
	assert.Equal(t, "order.created", got.EventType())
	assert.JSONEq(t, `{"orderId":"x"}`, string(got.Payload()))
	assert.Equal(t, early.Traceparent(), got.Traceparent())
	assert.Equal(t, outbox.StatusPending, got.Status())
	assert.Zero(t, got.Attempts())
	assert.Nil(t, got.ProcessedAt())
}

func TestGormOutboxRepository_GetPending_Limit(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()
	for i := range 5 {
		require.NoError(t, repo.Add(ctx, newMessage(t, testNow.Add(time.Duration(i)*time.Second))))
	}

	pending, err := repo.GetPending(ctx, 3)

	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestGormOutboxRepository_GetPending_ClaimsRows(t *testing.T) {
	repo, db := openRepoDB(t)
	ctx := t.Context()
	first := newMessage(t, testNow)
	second := newMessage(t, testNow.Add(time.Second))
	require.NoError(t, repo.Add(ctx, first, second))

	claimed, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 2)

	again, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, again, "claimed rows must not be handed out twice")

	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, db.Model(&outboxrepo.MessageDTO{}).
		Where("id = ?", first.ID().Bytes()).
		Update("claimed_until", expired).Error)

	require.NoError(t, second.RecordFailure(errors.New("smtp down"), 5, testNow.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, second))

	reclaimed, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reclaimed, 2)
	assert.True(t, reclaimed[0].ID().IsEqual(first.ID()))
	assert.True(t, reclaimed[1].ID().IsEqual(second.ID()))
	assert.Equal(t, 1, reclaimed[1].Attempts())
}

func TestGormOutboxRepository_Add_Empty(t *testing.T) {
	repo := openRepo(t)

	require.NoError(t, repo.Add(t.Context()))
}

func TestGormOutboxRepository_Add_RejectsZeroMessage(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()

	err := repo.Add(ctx, newMessage(t, testNow), &outbox.Message{})
	require.ErrorIs(t, err, outbox.ErrMessageIsNotConstructed)

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestGormOutboxRepository_Update(t *testing.T) {
	t.Run("sent_message_leaves_pending", func(t *testing.T) {
		repo := openRepo(t)
		ctx := t.Context()
		m := newMessage(t, testNow)
		require.NoError(t, repo.Add(ctx, m))

		require.NoError(t, m.MarkSent(testNow.Add(time.Second)))
		require.NoError(t, repo.Update(ctx, m))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("retried_message_stays_pending", func(t *testing.T) {
		repo := openRepo(t)
		ctx := t.Context()
		m := newMessage(t, testNow)
		require.NoError(t, repo.Add(ctx, m))

		require.NoError(t, m.RecordFailure(errors.New("smtp down"), 5, testNow.Add(time.Second)))
		require.NoError(t, repo.Update(ctx, m))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].Attempts())
		assert.Equal(t, "smtp down", pending[0].LastError())
	})

	t.Run("exhausted_message_fails", func(t *testing.T) {
		repo := openRepo(t)
		ctx := t.Context()
		m := newMessage(t, testNow)
		require.NoError(t, repo.Add(ctx, m))

		require.NoError(t, m.RecordFailure(errors.New("bad payload"), 1, testNow.Add(time.Second)))
		require.NoError(t, repo.Update(ctx, m))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("unknown_message_is_not_found", func(t *testing.T) {
		repo := openRepo(t)
		m := newMessage(t, testNow)
		require.NoError(t, m.MarkSent(testNow))

		err := repo.Update(t.Context(), m)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
