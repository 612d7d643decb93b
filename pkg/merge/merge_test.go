/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package merge

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/match"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

func mkRefStar(t *testing.T, wk *registry.WellKnown, ra, dec, magV float64) *star.Star {
	t.Helper()

	s := star.New(wk)

	if err := s.SetRaDec(ra, dec, star.CatalogBase, star.ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	s.SetFloat(wk.MagV, magV, star.CatalogBase, star.ConfidenceHigh, false)

	return s
}

/*****************************************************************************************************************/

func newSimpleMeta(registrySize int) catalog.Meta {
	return catalog.Meta{
		CatalogID:   catalog.ASCC,
		Name:        "test-catalog",
		PrecisionAs: 1.5,
		OverwriteMask: star.NewOverwriteMask(registrySize),
	}
}

/*****************************************************************************************************************/

// TestMergeSeedIntoEmptyScenarioS1 exercises spec §8 scenario S1.
func TestMergeSeedIntoEmptyScenarioS1(t *testing.T) {
	wk := registry.NewWellKnown()

	seed := star.NewList("seed")
	seed.AddRefAtTail(mkRefStar(t, wk, 10.000, 20.000, 6.0))
	seed.AddRefAtTail(mkRefStar(t, wk, 10.100, 20.000, 7.0))

	into := star.NewList("into")

	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}
	meta := newSimpleMeta(wk.Registry.Len())

	if err := Merge(into, seed, list, meta, false); err != nil {
		t.Fatal(err)
	}

	if into.Len() != 2 {
		t.Fatalf("into.Len() = %d; want 2", into.Len())
	}

	for _, s := range into.Stars() {
		if s.Get(wk.MagV).Origin() != star.CatalogBase {
			t.Errorf("expected origin=CatalogBase for seeded star")
		}

		if s.Get(wk.MagV).Confidence() != star.ConfidenceHigh {
			t.Errorf("expected confidence=HIGH for seeded star")
		}
	}
}

/*****************************************************************************************************************/

// TestIdempotentMergeOfEqualLists exercises spec §8 universal property 1.
func TestIdempotentMergeOfEqualLists(t *testing.T) {
	wk := registry.NewWellKnown()

	base := star.NewList("base")
	base.AddRefAtTail(mkRefStar(t, wk, 10.0, 20.0, 6.0))
	base.AddRefAtTail(mkRefStar(t, wk, 11.0, 21.0, 7.0))

	into := star.NewList("into")
	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}
	meta := newSimpleMeta(wk.Registry.Len())

	if err := Merge(into, base, list, meta, false); err != nil {
		t.Fatal(err)
	}

	clone := base.Clone()

	if err := Merge(into, clone, list, meta, true); err != nil {
		t.Fatal(err)
	}

	if into.Len() != 2 {
		t.Errorf("into.Len() = %d; want 2 (no new stars from idempotent merge)", into.Len())
	}

	for _, s := range into.Stars() {
		v, _ := s.Get(wk.MagV).Float()

		if v != 6.0 && v != 7.0 {
			t.Errorf("unexpected mag_v after idempotent merge: %v", v)
		}
	}
}

/*****************************************************************************************************************/

// TestSeedThenUpdateRestoresScenario exercises spec §8 universal property 2.
func TestSeedThenUpdateRestoresScenario(t *testing.T) {
	wk := registry.NewWellKnown()

	a := star.NewList("a")
	a.AddRefAtTail(mkRefStar(t, wk, 10.0, 20.0, 6.0))

	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}
	meta := newSimpleMeta(wk.Registry.Len())

	seeded := star.NewList("seeded")
	if err := Merge(seeded, a.Clone(), list, meta, false); err != nil {
		t.Fatal(err)
	}

	updated := star.NewList("updated")
	if err := Merge(updated, a.Clone(), list, meta, false); err != nil {
		t.Fatal(err)
	}

	if err := Merge(updated, a.Clone(), list, meta, true); err != nil {
		t.Fatal(err)
	}

	if seeded.Len() != updated.Len() {
		t.Errorf("seeded.Len()=%d updated.Len()=%d; want equal", seeded.Len(), updated.Len())
	}
}

/*****************************************************************************************************************/

func TestThresholdZeroForPrimaryCatalog(t *testing.T) {
	if v := Threshold(1.5, 2.0, true); v != 0 {
		t.Errorf("Threshold(primary) = %v; want 0", v)
	}
}

/*****************************************************************************************************************/

func TestThresholdFloorsAtMinScoreTh(t *testing.T) {
	v := Threshold(0.2, 0.2, false)
	if v != MinScoreTh {
		t.Errorf("Threshold() = %v; want floor %v", v, MinScoreTh)
	}
}

/*****************************************************************************************************************/

func TestMultipleRowsCatalogUpdatesEveryMatch(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkRefStar(t, wk, 10.0, 20.0, 6.0)

	into := star.NewList("into")
	into.AddRefAtTail(ref)
	into.PrepareIndex()

	c1 := star.New(wk)
	if err := c1.SetRaDec(10.0, 20.0, catalog.PhotometryLibrary, star.ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	c1.SetTargetID("q1", catalog.PhotometryLibrary)
	c1.SetFloat(wk.MagB, 6.5, catalog.PhotometryLibrary, star.ConfidenceHigh, false)

	from := star.NewList("from")
	from.AddRefAtTail(c1)

	meta := catalog.Meta{
		CatalogID: catalog.PhotometryLibrary, Name: "phot", PrecisionAs: 3.0, MultipleRows: true,
		OverwriteMask: star.NewOverwriteMask(wk.Registry.Len()),
	}

	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}

	if err := Merge(into, from, list, meta, true); err != nil {
		t.Fatal(err)
	}

	v, ok := ref.Get(wk.MagB).Float()
	if !ok || v != 6.5 {
		t.Errorf("got (%v,%v); want (6.5,true)", v, ok)
	}
}

/*****************************************************************************************************************/

// TestMergePathABuildsMapAtMatesRadius exercises spec §4.4.2 step 5: the
// distance map must be built at the expanded MatesRadiusArcsec so a
// candidate beyond the true xmatch radius but within the mates radius is
// still enumerated and classified BAD_DIST, rather than vanishing as NONE
// because it never entered a map gated by the narrow radius alone.
func TestMergePathABuildsMapAtMatesRadius(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkRefStar(t, wk, 10.0, 0.0, 10.0)

	into := star.NewList("into")
	into.AddRefAtTail(ref)
	into.PrepareIndex()

	cand := star.New(wk)
	if err := cand.SetRaDec(10.0+2.0/3600.0, 0.0, catalog.TwoMASS, star.ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	from := star.NewList("from")
	from.AddRefAtTail(cand)

	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}
	meta := catalog.Meta{
		CatalogID: catalog.TwoMASS, Name: "2mass", PrecisionAs: 1.5,
		OverwriteMask: star.NewOverwriteMask(wk.Registry.Len()),
	}

	if err := Merge(into, from, list, meta, true); err != nil {
		t.Fatal(err)
	}

	if ref.XMAllFlag()&match.BadDist.Flag() == 0 {
		t.Errorf("xm_all_flag = %#x; want BAD_DIST bit set for a 2\" candidate against a 1.5\" xmatch radius", ref.XMAllFlag())
	}
}

/*****************************************************************************************************************/

// TestMergePathAPrecessesHighProperMotionCandidateScenarioS5 exercises spec
// §8 scenario S5: a reference star with large proper motion, seeded at its
// own catalog's epoch, must still match a candidate recorded years later at
// the same physical position once both are compared at a common epoch.
// Without epoch precession the raw separation (~8.7") would fail any
// realistic xmatch radius and classify BAD_DIST instead of GOOD.
func TestMergePathAPrecessesHighProperMotionCandidateScenarioS5(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkRefStar(t, wk, 0.0, 0.0, 10.0)
	ref.SetPmRaDec(1000.0, 0.0, star.CatalogBase, star.ConfidenceHigh, false)

	into := star.NewList("into")
	into.AddRefAtTail(ref)
	into.PrepareIndex()
	into.CatalogMeta = &catalog.Meta{CatalogID: star.CatalogBase, Name: "base", EpochFrom: 1991.25, EpochTo: 1991.25, SingleEpoch: true}

	// 2MASS carries no proper motion of its own: the candidate's recorded
	// position is 8.75 years newer than the reference's native epoch, and a
	// physical star moving at 1000 mas/yr in RA drifts ~8.75" over that
	// span — comparable to the raw separation below.
	cand := star.New(wk)
	if err := cand.SetRaDec(0.002425, 0.0, catalog.TwoMASS, star.ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	from := star.NewList("from")
	from.AddRefAtTail(cand)

	list := criteria.List{criteria.RaDecRadius(1.5 / 3600.0)}
	meta := catalog.Meta{
		CatalogID: catalog.TwoMASS, Name: "2mass", PrecisionAs: 1.5,
		EpochFrom: 2000.0, EpochTo: 2000.0, SingleEpoch: true, PrecessEpoch: true,
		OverwriteMask: star.NewOverwriteMask(wk.Registry.Len()),
	}

	if err := Merge(into, from, list, meta, true); err != nil {
		t.Fatal(err)
	}

	if ref.XMAllFlag()&match.Good.Flag() == 0 {
		t.Errorf("xm_all_flag = %#x; want GOOD bit set once both stars are compared at a common epoch", ref.XMAllFlag())
	}

	if ref.XMAllFlag()&match.BadDist.Flag() != 0 {
		t.Errorf("xm_all_flag = %#x; BAD_DIST set, precession did not bring the candidate onto the reference epoch", ref.XMAllFlag())
	}

	// The candidate's own coordinates must be restored to their original,
	// catalog-recorded value once matching is done.
	ra, _, err := cand.GetRaDec()
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(ra-0.002425) > 1e-9 {
		t.Errorf("candidate RA = %v after merge; want restored to 0.002425", ra)
	}
}
