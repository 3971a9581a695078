package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartBelowMinStock(t *testing.T) {
	// нулевой порог отключает проверку
	require.False(t, (&Part{Quantity: 0, MinQuantity: 0}).BelowMinStock())

	require.True(t, (&Part{Quantity: 1, MinQuantity: 2}).BelowMinStock())
	require.False(t, (&Part{Quantity: 2, MinQuantity: 2}).BelowMinStock())
	require.False(t, (&Part{Quantity: 5, MinQuantity: 2}).BelowMinStock())
}
