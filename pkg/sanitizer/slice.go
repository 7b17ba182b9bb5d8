package sanitizer

import "strings"

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizePerks(perks []string) []string {
	return NormalizeStringSlice(perks, NormalizePerk)
}

// NormalizePhotos trims refs and drops blanks. Order and repeats are kept;
// the first photo is the cover.
func NormalizePhotos(photos []string) []string {
	result := make([]string, 0, len(photos))
	for _, photo := range photos {
		if photo = strings.TrimSpace(photo); photo != "" {
			result = append(result, photo)
		}
	}
	return result
}
