package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// fuzzyRatio is a normalized edit-distance similarity in [0,1].
// Two empty strings are considered identical.
func fuzzyRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	r := 1 - float64(d)/float64(longest)
	if r < 0 {
		return 0
	}
	return r
}

func normSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := norm(it)
		if k == "" {
			continue
		}
		out[k] = struct{}{}
	}
	return out
}

// jaccard computes |a∩b| / |a∪b| over normalized string sets.
// Two empty sets have zero overlap.
func jaccard(a, b []string) float64 {
	sa := normSet(a)
	sb := normSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for k := range sa {
		if _, ok := sb[k]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// matchedFraction is |required ∩ offered| / |required| over normalized sets.
func matchedFraction(required, offered []string) float64 {
	req := normSet(required)
	if len(req) == 0 {
		return 0
	}
	off := normSet(offered)
	matched := 0
	for k := range req {
		if _, ok := off[k]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}
