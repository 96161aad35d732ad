package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:30").IsAfter("11:00"))
	assert.True(t, TimeString("11:00").Equal("11:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan("14:30"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	assert.Error(t, ts.Scan(42))
}
