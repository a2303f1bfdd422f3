package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"groundhandling/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderID", "123")

		assert.Equal(t, "orderID", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("registry unavailable")
		err := errs.NewObjectNotFoundErrorWithCause("orderID", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderID, ID is: 123 (cause: registry unavailable)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderID", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("orderID", "17")

	assert.Equal(t, "orderID", err.ParamName)
	assert.Equal(t, "object already exists: orderID 17", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("flightID")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: flightID", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown kind")
		err := errs.NewValueIsInvalidErrorWithCause("kind", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: kind (cause: unknown kind)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("threshold", 150, 1, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is out of range: 150 is threshold, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("attempts", -5, 0, 100, cause)

		assert.Equal(t,
			"value is out of range: -5 is attempts, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("passengers")

		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: passengers", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("passengers", cause)

		assert.Equal(t, "value is required: passengers (cause: missing required field)", err.Error())
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "object already exists", errs.ErrObjectAlreadyExists.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("submit: %w", errs.NewObjectAlreadyExistsError("orderID", "1"))
		require.ErrorIs(t, wrapped, errs.ErrObjectAlreadyExists)

		wrapped = fmt.Errorf("lookup: %w", errs.NewObjectNotFoundError("orderID", "1"))
		require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
	})

	t.Run("errors.As recovers the typed error", func(t *testing.T) {
		var target *errs.ValueIsRequiredError
		wrapped := fmt.Errorf("new order: %w", errs.NewValueIsRequiredError("flightID"))
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "flightID", target.ParamName)
	})
}
