package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		cents   int64
		wantErr bool
	}{
		{in: "10", cents: 1000},
		{in: "3.50", cents: 350},
		{in: "3.5", cents: 350},
		{in: "0", cents: 0},
		{in: "0.00", cents: 0},
		{in: " 12.34 ", cents: 1234},
		{in: "3.999", cents: 400},
		{in: "3.994", cents: 399},
		{in: ".5", cents: 50},
		{in: "-1", wantErr: true},
		{in: "-0.01", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: ".", wantErr: true},
		{in: "+5", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			cents, err := ParsePrice(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, cents)
		})
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.50", FormatCents(1050))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "10.00", FormatCents(1000))
	assert.Equal(t, "123.45", FormatCents(12345))
}

func TestMulCents(t *testing.T) {
	t.Parallel()

	total, err := MulCents(350, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), total)

	total, err = MulCents(0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = MulCents(1<<60, 1000)
	require.Error(t, err)
}
