package domain

import (
	"fmt"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	m "trojanscope.dev/pkg/trojanscope/internal/model"
)

// NamespaceDiff returns a unified diff between the sorted comparison keys of both
// variants. It is empty when both variants expose the same keys.
func NamespaceDiff(baseline, candidate m.VariantSignalSet, baselineName, candidateName string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        keyLines(baseline),
		B:        keyLines(candidate),
		FromFile: baselineName,
		ToFile:   candidateName,
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff signal namespaces: %w", err)
	}

	return text, nil
}

func keyLines(set m.VariantSignalSet) []string {
	lines := make([]string, 0, len(set))
	for key := range set {
		lines = append(lines, key+"\n")
	}

	sort.Strings(lines)

	return lines
}
