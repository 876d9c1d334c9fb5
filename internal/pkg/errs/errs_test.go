package errs_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("row locked")

	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("orderId", "o-1"),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: o-1",
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("orderId", "o-1", cause),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: param is: orderId, ID is: o-1 (cause: row locked)",
		},
		{
			name:     "object not found with a numeric id",
			err:      errs.NewObjectNotFoundError("version", 3),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: %!s(int=3)",
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("currency"),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: currency",
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("currency", cause),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: currency (cause: row locked)",
		},
		{
			name:     "value is out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: 0 is quantity, min value is 1, max value is 1000",
		},
		{
			name:     "value is out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("latitude", 91, -90, 90, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: 91 is latitude, min value is -90, max value is 90 (cause: row locked)",
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("delivery address"),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: delivery address",
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("delivery address", cause),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: delivery address (cause: row locked)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestValueIsOutOfRangeError_Fields(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("rate", "101", 0, 100)

	assert.Equal(t, "rate", err.ParamName)
	assert.Equal(t, "101", err.Value)
	assert.Equal(t, 0, err.Min)
	assert.Equal(t, 100, err.Max)
	require.NoError(t, err.Cause)
}

func TestValueIsOutOfRangeError_SanitizesNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("item name", "Pizza\nMargherita", 1, 200)

	assert.Contains(t, err.Error(), "Pizza Margherita")
	assert.NotContains(t, err.Error(), "\n")
}

func TestForbiddenError(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("driver", "deliver order")

		assert.Equal(t, "driver", err.Actor)
		assert.Equal(t, "deliver order", err.Action)
		require.NoError(t, err.Cause)
		assert.Equal(t, "forbidden: driver cannot deliver order", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})

	t.Run("NewForbiddenErrorWithCause", func(t *testing.T) {
		cause := errors.New("order is assigned to another driver")
		err := errs.NewForbiddenErrorWithCause("driver", "deliver order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"forbidden: driver cannot deliver order (cause: order is assigned to another driver)",
			err.Error())
	})
}

func TestInvalidStateError(t *testing.T) {
	t.Run("NewInvalidStateError", func(t *testing.T) {
		err := errs.NewInvalidStateError("order", "Accepted")

		assert.Equal(t, "order", err.Object)
		assert.Equal(t, "Accepted", err.State)
		assert.Equal(t, "invalid state: order is Accepted", err.Error())
		assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
	})

	t.Run("NewInvalidStateErrorWithCause", func(t *testing.T) {
		cause := errors.New("only terminal orders can be deleted")
		err := errs.NewInvalidStateErrorWithCause("order", "InTransit", cause)

		assert.Equal(t,
			"invalid state: order is InTransit (cause: only terminal orders can be deleted)",
			err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrInvalidState)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	})
}
