package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Sample
		wantErr bool
	}{
		{"binary literal", "1010", Sample{Value: 10, Known: true}, false},
		{"single one", "1", Sample{Value: 1, Known: true}, false},
		{"single zero", "0", Sample{Value: 0, Known: true}, false},
		{"surrounding whitespace", "  0110\t", Sample{Value: 6, Known: true}, false},
		{"embedded x", "10x0", Unknown, false},
		{"high impedance", "z", Unknown, false},
		{"upper case X", "X", Unknown, false},
		{"upper case Z in vector", "1Z01", Unknown, false},
		{"empty", "", Unknown, true},
		{"blank", "   ", Unknown, true},
		{"not binary", "102", Unknown, true},
		{"real value", "1.5", Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.token)
			if tt.wantErr {
				var decodeErr *DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, tt.token, decodeErr.Token)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSample_RecoversAsUnknown(t *testing.T) {
	assert.Equal(t, Unknown, DecodeSample("garbage"))
	assert.Equal(t, Sample{Value: 3, Known: true}, DecodeSample("11"))
}

func TestSample_Plot(t *testing.T) {
	assert.Equal(t, 10.0, Sample{Value: 10, Known: true}.Plot())
	assert.Equal(t, UnknownSentinel, Unknown.Plot())
	assert.Less(t, Unknown.Plot(), Sample{Value: 0, Known: true}.Plot())
}

func TestDecode_WiderThan64Bits(t *testing.T) {
	token := "1" + strings.Repeat("0", 65)

	got, err := Decode(token)
	require.NoError(t, err)

	assert.True(t, got.Known)
	assert.Equal(t, ^uint64(0), got.Value)
	require.NotNil(t, got.Wide)
	assert.Equal(t, 66, got.Wide.BitLen())
	assert.InDelta(t, math.Ldexp(1, 65), got.Plot(), 1)
	assert.Greater(t, got.Plot(), UnknownSentinel)
}

func TestDecode_WideUnknownStaysUnknown(t *testing.T) {
	got, err := Decode(strings.Repeat("1", 70) + "x")
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}
