package order_test

import (
	"testing"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	t.Run("first order of an empty store is 1001", func(t *testing.T) {
		token, err := order.NextToken(order.DefaultTokenPrefix, 0)

		require.NoError(t, err)
		assert.Equal(t, "CAF-1001", token.String())
	})

	t.Run("follows the count", func(t *testing.T) {
		token, err := order.NextToken("X", 41)

		require.NoError(t, err)
		assert.Equal(t, "X1042", token.String())
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		_, err := order.NextToken(order.DefaultTokenPrefix, -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestTokenFromSequence(t *testing.T) {
	token, err := order.TokenFromSequence("CAF-", 1)
	require.NoError(t, err)
	assert.Equal(t, "CAF-1001", token.String())

	_, err = order.TokenFromSequence("CAF-", 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRestoreToken(t *testing.T) {
	token, err := order.RestoreToken("CAF-1234")
	require.NoError(t, err)
	require.NoError(t, token.Validate())

	_, err = order.RestoreToken(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero order.Token
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}
