package elev

import "slices"

// StopSet is a set of floors kept in ascending order.
type StopSet []int

func (s StopSet) Len() int { return len(s) }

func (s StopSet) Contains(floor int) bool {
	_, found := slices.BinarySearch(s, floor)
	return found
}

// Add inserts floor and reports whether it was new.
func (s *StopSet) Add(floor int) bool {
	i, found := slices.BinarySearch(*s, floor)
	if found {
		return false
	}
	*s = slices.Insert(*s, i, floor)
	return true
}

// Remove deletes floor and reports whether it was present.
func (s *StopSet) Remove(floor int) bool {
	i, found := slices.BinarySearch(*s, floor)
	if !found {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

// CeilingFrom returns the smallest stop >= floor.
func (s StopSet) CeilingFrom(floor int) (int, bool) {
	i, _ := slices.BinarySearch(s, floor)
	if i == len(s) {
		return 0, false
	}
	return s[i], true
}

// FloorFrom returns the largest stop <= floor.
func (s StopSet) FloorFrom(floor int) (int, bool) {
	i, found := slices.BinarySearch(s, floor)
	if found {
		return s[i], true
	}
	if i == 0 {
		return 0, false
	}
	return s[i-1], true
}

// AtOrAbove returns the stops >= floor, ascending.
func (s StopSet) AtOrAbove(floor int) []int {
	i, _ := slices.BinarySearch(s, floor)
	return s[i:]
}

// AtOrBelow returns the stops <= floor, ascending.
func (s StopSet) AtOrBelow(floor int) []int {
	i, found := slices.BinarySearch(s, floor)
	if found {
		i++
	}
	return s[:i]
}

// CountBetween counts stops strictly between a and b, in either order.
func (s StopSet) CountBetween(a, b int) int {
	lo, hi := min(a, b), max(a, b)
	if hi-lo < 2 {
		return 0
	}
	i, found := slices.BinarySearch(s, lo)
	if found {
		i++
	}
	j, _ := slices.BinarySearch(s, hi)
	return max(j-i, 0)
}

// Ordered returns a copy in travel order: descending when going down,
// ascending otherwise.
func (s StopSet) Ordered(descending bool) []int {
	out := slices.Clone([]int(s))
	if descending {
		slices.Reverse(out)
	}
	return out
}
