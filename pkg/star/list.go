/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package star

/*****************************************************************************************************************/

import (
	"sort"

	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
)

/*****************************************************************************************************************/

// List is an ordered collection of Star pointers (C3), tagged with the
// catalog it was fetched from and carrying a FreePointers flag that records
// whether this List owns its stars (and so is responsible for their
// lifetime) or merely borrows references another List owns. The spec's
// invariant — exactly one list owns each star at any time — is a contract
// this type documents but cannot fully enforce at compile time; CopyRefs is
// the one sanctioned way to move ownership between two Lists.
type List struct {
	Name        string
	CatalogID   int32 // star.Origin of the catalog this list was fetched from, or 0
	CatalogMeta any   // *catalog.Meta, kept untyped here to avoid an import cycle

	FreePointers bool

	stars []*Star

	// decIndex is the declination-sorted index, populated on demand by
	// PrepareIndex and invalidated by any structural mutation.
	decIndex   []*Star
	indexStale bool
}

/*****************************************************************************************************************/

// NewList returns an empty, owning List.
func NewList(name string) *List {
	return &List{Name: name, FreePointers: true, indexStale: true}
}

/*****************************************************************************************************************/

// NewBorrowingList returns an empty List that never frees its stars.
func NewBorrowingList(name string) *List {
	return &List{Name: name, FreePointers: false, indexStale: true}
}

/*****************************************************************************************************************/

// Len returns the number of stars currently in the list.
func (l *List) Len() int { return len(l.stars) }

/*****************************************************************************************************************/

// Stars returns the list's underlying star slice. Callers must not retain
// it across a mutating call (AddRefAtTail/Remove/Clear), which may
// reallocate.
func (l *List) Stars() []*Star { return l.stars }

/*****************************************************************************************************************/

// At returns the star at position i.
func (l *List) At(i int) *Star { return l.stars[i] }

/*****************************************************************************************************************/

// AddRefAtTail appends a star reference to the end of the list.
func (l *List) AddRefAtTail(s *Star) {
	l.stars = append(l.stars, s)
	l.indexStale = true
}

/*****************************************************************************************************************/

// Remove removes the first occurrence of s (by pointer identity) from the
// list. It reports whether a star was removed.
func (l *List) Remove(s *Star) bool {
	for i, cur := range l.stars {
		if cur == s {
			l.stars = append(l.stars[:i], l.stars[i+1:]...)
			l.indexStale = true

			return true
		}
	}

	return false
}

/*****************************************************************************************************************/

// Clear empties the list. Per the ownership contract, callers are
// responsible for having already transferred ownership (via CopyRefs) of
// any star this List still owns before calling Clear, if those stars must
// survive; Clear itself never "frees" anything explicit since Go is
// garbage-collected — it exists to mark the List's lifecycle boundary
// (Prepare → Merge/Search/Filter → Clear) the spec describes.
func (l *List) Clear() {
	l.stars = nil
	l.decIndex = nil
	l.indexStale = true
}

/*****************************************************************************************************************/

// PrepareIndex (re)builds the declination-sorted index used by matchers to
// bound their scan to a declination band, only if the index is stale.
func (l *List) PrepareIndex() {
	if !l.indexStale && l.decIndex != nil {
		return
	}

	l.decIndex = make([]*Star, len(l.stars))
	copy(l.decIndex, l.stars)

	sort.SliceStable(l.decIndex, func(i, j int) bool {
		di, _, _ := l.decIndex[i].GetRaDec()
		dj, _, _ := l.decIndex[j].GetRaDec()

		return decOf(l.decIndex[i]) < decOf(l.decIndex[j]) || (decOf(l.decIndex[i]) == decOf(l.decIndex[j]) && di < dj)
	})

	l.indexStale = false
}

/*****************************************************************************************************************/

func decOf(s *Star) float64 {
	_, dec, err := s.GetRaDec()
	if err != nil {
		return 0
	}

	return dec
}

/*****************************************************************************************************************/

// IndexPrepared reports whether PrepareIndex has been run since the last
// structural mutation.
func (l *List) IndexPrepared() bool { return !l.indexStale && l.decIndex != nil }

/*****************************************************************************************************************/

// InDeclinationBand returns the subset of the prepared index whose
// declination lies within [decCenter-halfWidth, decCenter+halfWidth],
// located by binary search over the sorted index. Falls back to a linear
// scan of the raw star slice when the index has not been prepared.
func (l *List) InDeclinationBand(decCenter, halfWidth float64) []*Star {
	if !l.IndexPrepared() {
		out := make([]*Star, 0, len(l.stars))

		for _, s := range l.stars {
			d := decOf(s)

			if d >= decCenter-halfWidth && d <= decCenter+halfWidth {
				out = append(out, s)
			}
		}

		return out
	}

	lo := decCenter - halfWidth
	hi := decCenter + halfWidth

	start := sort.Search(len(l.decIndex), func(i int) bool { return decOf(l.decIndex[i]) >= lo })
	end := sort.Search(len(l.decIndex), func(i int) bool { return decOf(l.decIndex[i]) > hi })

	if start >= end {
		return nil
	}

	out := make([]*Star, end-start)
	copy(out, l.decIndex[start:end])

	return out
}

/*****************************************************************************************************************/

// GetStar returns the star in this list equal by pointer identity to s, if
// present — used to test "does this list already own this exact star".
func (l *List) GetStar(s *Star) *Star {
	for _, cur := range l.stars {
		if cur == s {
			return cur
		}
	}

	return nil
}

/*****************************************************************************************************************/

// Sort stably reorders the list by the value of property id (as a double),
// breaking ties by (Dec, RA) ascending, per spec §4.2. Stars lacking the
// property sort after those that have it, ordered among themselves by
// (Dec, RA) ascending.
func (l *List) Sort(id registry.ID, reverse bool) {
	sort.SliceStable(l.stars, func(i, j int) bool {
		a, aOk := l.stars[i].Get(id).Float()
		b, bOk := l.stars[j].Get(id).Float()

		switch {
		case aOk && !bOk:
			return true
		case !aOk && bOk:
			return false
		case !aOk && !bOk:
			return tieBreak(l.stars[i], l.stars[j])
		case a == b:
			return tieBreak(l.stars[i], l.stars[j])
		}

		if reverse {
			return a > b
		}

		return a < b
	})

	l.indexStale = true
}

/*****************************************************************************************************************/

func tieBreak(a, b *Star) bool {
	aDec, aRa, _ := raDecFallback(a)
	bDec, bRa, _ := raDecFallback(b)

	if aDec != bDec {
		return aDec < bDec
	}

	return aRa < bRa
}

/*****************************************************************************************************************/

func raDecFallback(s *Star) (dec, ra float64, err error) {
	ra, dec, err = s.GetRaDec()

	return dec, ra, err
}

/*****************************************************************************************************************/

// CopyRefs appends every star of src to the end of l. If swap is true,
// ownership moves from src to l: src.FreePointers is cleared and l's is set,
// preserving the "exactly one owner" invariant (spec §4.2, §8 property 7).
func (l *List) CopyRefs(src *List, swap bool) {
	l.stars = append(l.stars, src.stars...)
	l.indexStale = true

	if swap {
		l.FreePointers = true
		src.FreePointers = false
	}
}

/*****************************************************************************************************************/

// Clone returns a deep copy: new Star values, a new owning List.
func (l *List) Clone() *List {
	out := NewList(l.Name)
	out.CatalogID = l.CatalogID
	out.CatalogMeta = l.CatalogMeta

	out.stars = make([]*Star, len(l.stars))
	for i, s := range l.stars {
		out.stars[i] = s.Clone()
	}

	return out
}
