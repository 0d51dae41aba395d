package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "wardrobe.backend/internal/domain/errors"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := normalizeEmail("  Ann.Lee@Shop.TEST ")
	require.NoError(t, err)
	assert.Equal(t, "ann.lee@shop.test", got)

	for _, raw := range []string{"", "ann", "Ann <ann@shop.test>", "ann@shop.test, bob@shop.test"} {
		_, err := normalizeEmail(raw)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput, raw)
	}
}

func TestCodesMatch(t *testing.T) {
	assert.True(t, codesMatch("AB12CD", "AB12CD"))
	assert.True(t, codesMatch("AB12CD", " AB12CD\n"))
	assert.False(t, codesMatch("AB12CD", "ab12cd"))
	assert.False(t, codesMatch("AB12CD", "AB12C"))
	assert.False(t, codesMatch("AB12CD", ""))
}
