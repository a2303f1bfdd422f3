package guard_test

import (
	"errors"
	"strings"
	"testing"

	"groundhandling/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStandNotConstructed = errors.New("Stand must be created via NewStand")

// stand is a minimal guarded value object, shaped like the domain ones.
type stand struct {
	code  string
	guard guard.ConstructorGuard
}

func newStand(code string) (stand, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return stand{}, errors.New("stand code is required")
	}
	return stand{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (s stand) Validate() error {
	return s.guard.Validate(errStandNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("should pass for a constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errStandNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return the given error for a zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.ErrorIs(t, g.Validate(errStandNotConstructed), errStandNotConstructed)
	})

	t.Run("should fall back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, err.Error(), "constructor")
	})

	t.Run("should survive copies", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		assert.NoError(t, copied.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	t.Run("should validate a value built by its constructor", func(t *testing.T) {
		s, err := newStand(" A12 ")

		require.NoError(t, err)
		assert.Equal(t, "A12", s.code)
		assert.NoError(t, s.Validate())
	})

	t.Run("should reject a literal that bypassed the constructor", func(t *testing.T) {
		s := stand{code: "A12"}

		assert.ErrorIs(t, s.Validate(), errStandNotConstructed)
	})

	t.Run("should reject the zero value returned with a constructor error", func(t *testing.T) {
		s, err := newStand("  ")

		require.Error(t, err)
		assert.ErrorIs(t, s.Validate(), errStandNotConstructed)
	})
}
