package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidMarkers reports unusable variant markers (empty or identical).
var ErrInvalidMarkers = errors.New("invalid variant markers")

// DecodeError reports a value token that cannot be decoded to a magnitude.
type DecodeError struct {
	Token string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode value token %q: %v", e.Token, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AmbiguousClassificationError reports a signal path that matches both variant markers.
type AmbiguousClassificationError struct {
	Path            string
	BaselineMarker  string
	CandidateMarker string
}

func (e *AmbiguousClassificationError) Error() string {
	return fmt.Sprintf("signal %q matches both variant markers %q and %q",
		e.Path, e.BaselineMarker, e.CandidateMarker)
}

// DuplicateKeyError reports two paths of one variant collapsing onto the same comparison key.
type DuplicateKeyError struct {
	Key    string
	Marker string
	First  string
	Second string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("comparison key %q for marker %q derived from both %q and %q",
		e.Key, e.Marker, e.First, e.Second)
}
