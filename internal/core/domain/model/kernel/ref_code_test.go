package kernel_test

import (
	"strings"
	"testing"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefCode(t *testing.T) {
	t.Run("produces_16_characters_from_alphabet", func(t *testing.T) {
		code, err := kernel.GenerateRefCode()
		require.NoError(t, err)

		s := code.String()
		assert.Len(t, s, kernel.RefCodeLength)
		for _, c := range s {
			assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'),
				"unexpected character %q in ref code %q", c, s)
		}
	})

	t.Run("consecutive_codes_differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			code, err := kernel.GenerateRefCode()
			require.NoError(t, err)
			assert.False(t, seen[code.String()], "duplicate code %q", code.String())
			seen[code.String()] = true
		}
	})
}

func TestRefCodeFromString(t *testing.T) {
	t.Run("accepts_valid_code", func(t *testing.T) {
		code, err := kernel.RefCodeFromString("k3x09qm2a7fzp1wd")
		require.NoError(t, err)
		assert.Equal(t, "k3x09qm2a7fzp1wd", code.String())
		require.NoError(t, code.Validate())
	})

	t.Run("rejects_wrong_length", func(t *testing.T) {
		_, err := kernel.RefCodeFromString("short")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.RefCodeFromString(strings.Repeat("a", 17))
		require.Error(t, err)
	})

	t.Run("rejects_characters_outside_alphabet", func(t *testing.T) {
		for _, s := range []string{
			"K3X09QM2A7FZP1WD", // uppercase
			"k3x09qm2a7fzp1w-", // punctuation
			"k3x09qm2a7fzp1w ", // whitespace
		} {
			_, err := kernel.RefCodeFromString(s)
			require.Error(t, err, "expected rejection of %q", s)
		}
	})
}

func TestRefCode_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var code kernel.RefCode
		require.ErrorIs(t, code.Validate(), errs.ErrValueIsRequired)
	})
}

func TestRefCode_IsEqual(t *testing.T) {
	a, err := kernel.RefCodeFromString("k3x09qm2a7fzp1wd")
	require.NoError(t, err)
	b, err := kernel.RefCodeFromString("k3x09qm2a7fzp1wd")
	require.NoError(t, err)
	c, err := kernel.GenerateRefCode()
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
