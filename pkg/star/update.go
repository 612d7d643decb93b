/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package star

/*****************************************************************************************************************/

import "github.com/JMMC-OpenDev/vobscore/pkg/registry"

/*****************************************************************************************************************/

// OverwriteMask is a bitset over meta_id naming the properties a catalog is
// authorized to overwrite even when the destination star already has a
// value set (spec §3.6 CatalogMeta.overwrite_mask).
type OverwriteMask struct {
	bits []uint64
}

/*****************************************************************************************************************/

// NewOverwriteMask returns an empty mask sized to hold n meta_ids.
func NewOverwriteMask(n int) OverwriteMask {
	return OverwriteMask{bits: make([]uint64, (n+63)/64)}
}

/*****************************************************************************************************************/

// Allow marks id as overwritable.
func (m OverwriteMask) Allow(id registry.ID) {
	word, bit := int(id)/64, uint(int(id)%64)

	if word >= len(m.bits) {
		return
	}

	m.bits[word] |= 1 << bit
}

/*****************************************************************************************************************/

// Test reports whether id is marked overwritable.
func (m OverwriteMask) Test(id registry.ID) bool {
	word, bit := int(id)/64, uint(int(id)%64)

	if word >= len(m.bits) {
		return false
	}

	return m.bits[word]&(1<<bit) != 0
}

/*****************************************************************************************************************/

// OverwriteMode governs how Update resolves a property already set on the
// destination star and not named in the OverwriteMask.
type OverwriteMode int

/*****************************************************************************************************************/

const (
	// OverwriteModeNone never overwrites an already-set property outside the
	// mask, regardless of confidence.
	OverwriteModeNone OverwriteMode = iota

	// OverwriteModePartial additionally overwrites when the incoming
	// property's confidence strictly exceeds the destination's.
	OverwriteModePartial

	// OverwriteModeAll overwrites every property the source has set,
	// irrespective of mask or confidence.
	OverwriteModeAll
)

/*****************************************************************************************************************/

// UpdateCounters accumulates a per-meta_id count of properties actually
// changed by Update calls, for diagnostics and scenario-level reporting.
type UpdateCounters struct {
	counts []int
}

/*****************************************************************************************************************/

// NewUpdateCounters returns a zeroed counter set sized to hold n meta_ids.
func NewUpdateCounters(n int) *UpdateCounters {
	return &UpdateCounters{counts: make([]int, n)}
}

/*****************************************************************************************************************/

func (c *UpdateCounters) increment(id registry.ID) {
	if c == nil {
		return
	}

	if int(id) < 0 || int(id) >= len(c.counts) {
		return
	}

	c.counts[id]++
}

/*****************************************************************************************************************/

// Count returns how many times Update has changed the property at id.
func (c *UpdateCounters) Count(id registry.ID) int {
	if c == nil || int(id) < 0 || int(id) >= len(c.counts) {
		return 0
	}

	return c.counts[id]
}

/*****************************************************************************************************************/

// Update folds every set property of src into dst (spec §4.1 "Update
// protocol"). For each property set on src, the value (+origin+confidence
// +error) is copied into dst when: dst does not already have it set, OR
// mode is OverwriteModeAll, OR id is allowed by mask, OR mode is
// OverwriteModePartial and src's confidence strictly exceeds dst's. counters
// may be nil. Update returns true if at least one property changed.
func (dst *Star) Update(src *Star, mask OverwriteMask, mode OverwriteMode, counters *UpdateCounters) bool {
	changed := false

	for id := 0; id < len(src.props); id++ {
		sp := src.props[id]

		if !sp.set {
			continue
		}

		dp := dst.props[id]

		shouldCopy := !dp.set ||
			mode == OverwriteModeAll ||
			mask.Test(registry.ID(id)) ||
			(mode == OverwriteModePartial && sp.confidence > dp.confidence)

		if !shouldCopy {
			continue
		}

		dst.props[id] = sp
		counters.increment(registry.ID(id))
		changed = true
	}

	return changed
}
