/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package star

/*****************************************************************************************************************/

import (
	"testing"

	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
)

/*****************************************************************************************************************/

func TestUpdateFillsUnsetProperties(t *testing.T) {
	wk := registry.NewWellKnown()
	dst := New(wk)
	src := New(wk)

	src.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)

	mask := NewOverwriteMask(wk.Registry.Len())
	counters := NewUpdateCounters(wk.Registry.Len())

	changed := dst.Update(src, mask, OverwriteModeNone, counters)
	if !changed {
		t.Fatal("expected Update to report a change")
	}

	v, ok := dst.Get(wk.MagV).Float()
	if !ok || v != 6.0 {
		t.Errorf("got (%v, %v); want (6.0, true)", v, ok)
	}

	if counters.Count(wk.MagV) != 1 {
		t.Errorf("counter = %v; want 1", counters.Count(wk.MagV))
	}
}

/*****************************************************************************************************************/

func TestUpdateModeNoneLeavesSetPropertyAlone(t *testing.T) {
	wk := registry.NewWellKnown()
	dst := New(wk)
	src := New(wk)

	dst.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceLow, false)
	src.SetFloat(wk.MagV, 7.0, CatalogBase+1, ConfidenceHigh, false)

	mask := NewOverwriteMask(wk.Registry.Len())

	changed := dst.Update(src, mask, OverwriteModeNone, nil)
	if changed {
		t.Fatal("expected no change under OverwriteModeNone with no mask entry")
	}

	v, _ := dst.Get(wk.MagV).Float()
	if v != 6.0 {
		t.Errorf("value changed unexpectedly: got %v", v)
	}
}

/*****************************************************************************************************************/

func TestUpdateMaskAllowsOverwrite(t *testing.T) {
	wk := registry.NewWellKnown()
	dst := New(wk)
	src := New(wk)

	dst.SetFloat(wk.RA, 10.0, CatalogBase, ConfidenceHigh, false)
	src.SetFloat(wk.RA, 10.5, CatalogBase+1, ConfidenceHigh, false)

	mask := NewOverwriteMask(wk.Registry.Len())
	mask.Allow(wk.RA)

	changed := dst.Update(src, mask, OverwriteModeNone, nil)
	if !changed {
		t.Fatal("expected mask-allowed property to be overwritten")
	}

	v, _ := dst.Get(wk.RA).Float()
	if v != 10.5 {
		t.Errorf("got %v; want 10.5", v)
	}
}

/*****************************************************************************************************************/

func TestUpdateModePartialRequiresHigherConfidence(t *testing.T) {
	wk := registry.NewWellKnown()
	dst := New(wk)
	src := New(wk)

	dst.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceMedium, false)
	src.SetFloat(wk.MagV, 6.2, CatalogBase+1, ConfidenceLow, false)

	mask := NewOverwriteMask(wk.Registry.Len())

	if dst.Update(src, mask, OverwriteModePartial, nil) {
		t.Error("expected no overwrite when src confidence is lower")
	}

	src2 := New(wk)
	src2.SetFloat(wk.MagV, 6.3, CatalogBase+1, ConfidenceHigh, false)

	if !dst.Update(src2, mask, OverwriteModePartial, nil) {
		t.Error("expected overwrite when src confidence is strictly higher")
	}

	v, _ := dst.Get(wk.MagV).Float()
	if v != 6.3 {
		t.Errorf("got %v; want 6.3", v)
	}
}

/*****************************************************************************************************************/

func TestUpdateModeAllOverwritesRegardlessOfConfidence(t *testing.T) {
	wk := registry.NewWellKnown()
	dst := New(wk)
	src := New(wk)

	dst.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)
	src.SetFloat(wk.MagV, 9.9, CatalogBase+1, ConfidenceNo, false)

	mask := NewOverwriteMask(wk.Registry.Len())

	if !dst.Update(src, mask, OverwriteModeAll, nil) {
		t.Error("expected OverwriteModeAll to overwrite unconditionally")
	}

	v, _ := dst.Get(wk.MagV).Float()
	if v != 9.9 {
		t.Errorf("got %v; want 9.9", v)
	}
}

/*****************************************************************************************************************/

// TestIdempotentUpdateOfEqualStar exercises spec §8 testable property 1 at
// the Star level: Update of a clone with an identical value set changes no
// values (only possibly the bookkeeping of which catalog "wins" when modes
// allow overwrite, which we pin to Mode=None here).
func TestIdempotentUpdateOfEqualStar(t *testing.T) {
	wk := registry.NewWellKnown()
	a := New(wk)

	a.SetFloat(wk.RA, 10.0, CatalogBase, ConfidenceHigh, false)
	a.SetFloat(wk.Dec, 20.0, CatalogBase, ConfidenceHigh, false)
	a.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)

	b := a.Clone()

	mask := NewOverwriteMask(wk.Registry.Len())

	if b.Update(a, mask, OverwriteModeNone, nil) {
		t.Error("expected merging an identical star to report no change")
	}

	ra, _ := b.Get(wk.RA).Float()
	dec, _ := b.Get(wk.Dec).Float()
	mag, _ := b.Get(wk.MagV).Float()

	if ra != 10.0 || dec != 20.0 || mag != 6.0 {
		t.Errorf("values drifted after idempotent update: ra=%v dec=%v mag=%v", ra, dec, mag)
	}
}
