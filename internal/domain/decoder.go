package domain

import (
	"errors"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
)

// UnknownSentinel is the plot value used for samples whose value is unknown (x/z).
// It lies below every valid unsigned magnitude so indeterminate stretches stay
// visually distinct from a logic low.
const UnknownSentinel = -1.0

// Sample is a decoded value token. Known is false for x/z and undecodable tokens.
//
// Buses wider than 64 bits keep their exact magnitude in Wide; Value then saturates at
// math.MaxUint64.
type Sample struct {
	Value uint64
	Wide  *big.Int
	Known bool
}

// Unknown is the sample of an indeterminate value.
var Unknown = Sample{}

// Plot returns the sample as a plottable number, mapping Unknown to UnknownSentinel.
func (s Sample) Plot() float64 {
	if !s.Known {
		return UnknownSentinel
	}

	if s.Wide != nil {
		f, _ := new(big.Float).SetInt(s.Wide).Float64()
		return f
	}

	return float64(s.Value)
}

// Decode turns a raw value token into a sample.
//
// Tokens containing x or z (any case) decode to Unknown without error. Empty or
// malformed tokens return Unknown and a *DecodeError. Literals wider than 64 bits are
// known samples carrying their magnitude in Wide.
func Decode(token string) (Sample, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Unknown, &DecodeError{Token: token, Err: errors.New("empty token")}
	}

	if strings.ContainsAny(trimmed, "xXzZ") {
		return Unknown, nil
	}

	value, err := strconv.ParseUint(trimmed, 2, 64)
	if errors.Is(err, strconv.ErrRange) {
		return decodeWide(token, trimmed)
	}

	if err != nil {
		return Unknown, &DecodeError{Token: token, Err: err}
	}

	return Sample{Value: value, Known: true}, nil
}

func decodeWide(token, digits string) (Sample, error) {
	wide, ok := new(big.Int).SetString(digits, 2)
	if !ok {
		return Unknown, &DecodeError{Token: token, Err: strconv.ErrSyntax}
	}

	return Sample{Value: ^uint64(0), Wide: wide, Known: true}, nil
}

// DecodeSample decodes token, recovering decode failures as Unknown.
func DecodeSample(token string) Sample {
	sample, err := Decode(token)
	if err != nil {
		slog.Debug("value token recovered as unknown", "token", token, "error", err)
	}

	return sample
}
