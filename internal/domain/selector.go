package domain

import "strings"

// Select narrows paths down to a bounded subset worth plotting.
//
// Keywords are tried in priority order; each pass appends, in original order, the
// not yet selected paths containing the keyword (case-insensitive). Selection stops as
// soon as maxCount paths are chosen. If fewer than minCount paths matched, the remaining
// paths are appended in original order until minCount is reached.
func Select(paths []string, keywords []string, minCount, maxCount int) []string {
	if maxCount <= 0 {
		return []string{}
	}

	if minCount > maxCount {
		minCount = maxCount
	}

	selected := make([]string, 0, maxCount)
	seen := make(map[string]bool, maxCount)

	lowered := make([]string, len(paths))
	for i, path := range paths {
		lowered[i] = strings.ToLower(path)
	}

	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)

		for i, path := range paths {
			if len(selected) >= maxCount {
				return selected
			}

			if seen[path] || !strings.Contains(lowered[i], kw) {
				continue
			}

			selected = append(selected, path)
			seen[path] = true
		}
	}

	for _, path := range paths {
		if len(selected) >= minCount {
			break
		}

		if seen[path] {
			continue
		}

		selected = append(selected, path)
		seen[path] = true
	}

	return selected
}
