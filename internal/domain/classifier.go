package domain

import (
	"fmt"
	"strings"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// hierarchySeparator separates scope names in a hierarchical signal path.
const hierarchySeparator = "."

// Classify partitions signal paths into the baseline and candidate variants.
//
// A path belongs to a variant when it contains that variant's marker as a literal
// substring. Paths matching neither marker are out of scope and skipped; a path matching
// both is an *AmbiguousClassificationError. The comparison key is the remainder of the
// path after the first occurrence of the marker, without a leading separator. Two paths
// of one variant yielding the same key are a *DuplicateKeyError.
func Classify(paths []string, baselineMarker, candidateMarker string) (m.VariantKeySet, m.VariantKeySet, error) {
	if err := validateMarkers(baselineMarker, candidateMarker); err != nil {
		return nil, nil, err
	}

	baseline := make(m.VariantKeySet)
	candidate := make(m.VariantKeySet)

	for _, path := range paths {
		inBaseline := strings.Contains(path, baselineMarker)
		inCandidate := strings.Contains(path, candidateMarker)

		switch {
		case inBaseline && inCandidate:
			return nil, nil, &AmbiguousClassificationError{
				Path:            path,
				BaselineMarker:  baselineMarker,
				CandidateMarker: candidateMarker,
			}
		case inBaseline:
			if err := addKey(baseline, path, baselineMarker); err != nil {
				return nil, nil, err
			}
		case inCandidate:
			if err := addKey(candidate, path, candidateMarker); err != nil {
				return nil, nil, err
			}
		}
	}

	return baseline, candidate, nil
}

// ComparisonKey strips marker and the separator following it from path.
// The second result is false when path does not contain marker.
func ComparisonKey(path, marker string) (string, bool) {
	idx := strings.Index(path, marker)
	if idx < 0 || marker == "" {
		return "", false
	}

	key := path[idx+len(marker):]

	return strings.TrimPrefix(key, hierarchySeparator), true
}

func addKey(set m.VariantKeySet, path, marker string) error {
	key, _ := ComparisonKey(path, marker)

	if existing, ok := set[key]; ok {
		return &DuplicateKeyError{Key: key, Marker: marker, First: existing, Second: path}
	}

	set[key] = path

	return nil
}

func validateMarkers(baselineMarker, candidateMarker string) error {
	if strings.TrimSpace(baselineMarker) == "" || strings.TrimSpace(candidateMarker) == "" {
		return fmt.Errorf("%w: markers must not be empty", ErrInvalidMarkers)
	}

	if baselineMarker == candidateMarker {
		return fmt.Errorf("%w: baseline and candidate marker are both %q", ErrInvalidMarkers, baselineMarker)
	}

	return nil
}
