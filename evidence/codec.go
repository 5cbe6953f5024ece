package evidence

import (
	"strconv"
	"strings"
)

// SplitList zerlegt raw an sep. Ein leerer raw-Wert (NULL) ergibt eine
// leere Liste, leere Segmente fallen weg.
func SplitList(raw, sep string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitIntList wie SplitList, nicht-numerische Segmente werden zu 0.
// malformed zählt diese Segmente, damit der Aufrufer sie loggen kann.
func SplitIntList(raw, sep string) (values []int64, malformed int) {
	parts := SplitList(raw, sep)
	values = make([]int64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			malformed++
			n = 0
		}
		values = append(values, n)
	}
	return values, malformed
}

// SplitPMIDs: mit Komma wird gesplittet und getrimmt, sonst ist der
// ganze Wert eine einzelne PMID.
func SplitPMIDs(raw string) []string {
	out := []string{}
	if !strings.Contains(raw, ",") {
		if raw != "" {
			out = append(out, raw)
		}
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList ist die Umkehrung von SplitList.
func JoinList(items []string, sep string) string {
	return strings.Join(items, sep)
}

// Dedupe entfernt Duplikate, die erste Position gewinnt.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
