package helper_util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmb-ti/accountrenewal/model"
)

func TestParseExpiration(t *testing.T) {
	at := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)

	for _, v := range []interface{}{nil, ""} {
		e, err := ParseExpiration(v)
		require.NoError(t, err)
		assert.True(t, e.IsNever())
	}

	e, err := ParseExpiration(at)
	require.NoError(t, err)
	assert.True(t, e.Equal(model.ExpiresAt(at)))

	e, err = ParseExpiration("2024-07-10T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, e.Equal(model.ExpiresAt(at)))

	_, err = ParseExpiration(42)
	assert.Error(t, err)
	_, err = ParseExpiration("next week")
	assert.Error(t, err)
}

func TestFormatExpiration(t *testing.T) {
	assert.Nil(t, FormatExpiration(model.Never()))
	assert.Equal(t, "2024-07-10T00:00:00Z", FormatExpiration(model.ExpiresAt(time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC))))
}

func TestFormatExpiration_KeepsSubSecondPrecision(t *testing.T) {
	at := time.Date(2024, time.July, 10, 9, 30, 15, 123456789, time.UTC)

	stored := FormatExpiration(model.ExpiresAt(at))
	assert.Equal(t, "2024-07-10T09:30:15.123456789Z", stored)

	e, err := ParseExpiration(stored)
	require.NoError(t, err)
	got, ok := e.Time()
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}
