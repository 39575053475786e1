// Package ranking orders history records by the midpoint's resolved
// locality. The sort is an in-place quicksort with the last element as
// pivot; equal keys are swapped during partitioning, so the ordering among
// ties is not stable and callers must not depend on it.
package ranking

import "github.com/samirrijal/meetpoint/internal/core/domain"

// Mode selects how Rank orders the records.
type Mode int

const (
	// Default reverses arrival order: most recent record first.
	Default Mode = iota
	// Ascending sorts by midpoint locality, A to Z, empty keys first.
	Ascending
	// Descending sorts by midpoint locality, Z to A, empty keys last.
	Descending
)

// ParseMode maps the select-control values to a Mode. Unknown strings fall
// back to Default.
func ParseMode(s string) Mode {
	switch s {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	default:
		return Default
	}
}

// Rank returns the records ordered by mode. The input slice is never
// mutated; the sort runs on a private copy.
//
// Worst case is O(n²) when the input is already ordered against the pivot
// choice. History stays small enough per session that this is acceptable.
func Rank(records []domain.ResultRecord, mode Mode) []domain.ResultRecord {
	out := make([]domain.ResultRecord, len(records))

	if mode == Default {
		for i := range records {
			out[len(records)-1-i] = records[i]
		}
		return out
	}

	copy(out, records)
	if len(out) > 1 {
		quicksort(out, 0, len(out)-1, mode == Descending)
	}
	return out
}

func quicksort(rs []domain.ResultRecord, low, high int, desc bool) {
	if low >= high {
		return
	}
	p := partition(rs, low, high, desc)
	quicksort(rs, low, p-1, desc)
	quicksort(rs, p+1, high, desc)
}

// partition uses the last element as pivot and scans left to right. The
// comparison is <= (or >= descending), so equal keys cross the pivot and
// ties come out reordered.
func partition(rs []domain.ResultRecord, low, high int, desc bool) int {
	pivot := rs[high].SortKey()
	i := low - 1
	for j := low; j < high; j++ {
		key := rs[j].SortKey()
		keep := key <= pivot
		if desc {
			keep = key >= pivot
		}
		if keep {
			i++
			rs[i], rs[j] = rs[j], rs[i]
		}
	}
	rs[i+1], rs[high] = rs[high], rs[i+1]
	return i + 1
}
