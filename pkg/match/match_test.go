/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package match

/*****************************************************************************************************************/

import (
	"testing"

	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

func mkStar(t *testing.T, wk *registry.WellKnown, ra, dec, magG float64) *star.Star {
	t.Helper()

	s := star.New(wk)

	if err := s.SetRaDec(ra, dec, star.CatalogBase, star.ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	s.SetFloat(wk.MagG, magG, star.CatalogBase, star.ConfidenceHigh, false)

	return s
}

/*****************************************************************************************************************/

// TestMatchOneAmbiguousScenarioS2 exercises spec §8 scenario S2.
func TestMatchOneAmbiguousScenarioS2(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 0.0, 0.0, 10.00)
	c1 := mkStar(t, wk, 0.0003, 0.0, 10.10)
	c2 := mkStar(t, wk, 0.0004, 0.0, 10.15)

	list := criteria.List{criteria.RaDecRadius(2.0 / 3600.0), criteria.MagnitudeDelta(wk.MagG, 1.0)}

	info := MatchOne(ref, []*star.Star{c1, c2}, list, 2.0, 0.5)

	if info.Type != GoodAmbiguousMatchScore {
		t.Fatalf("match type = %v; want GOOD_AMBIGUOUS_MATCH_SCORE", info.Type)
	}

	if diff := info.BestEntry.DistAngAs - 1.08; diff > 0.01 || diff < -0.01 {
		t.Errorf("best distAng = %v; want ~1.08", info.BestEntry.DistAngAs)
	}
}

/*****************************************************************************************************************/

// TestMatchOneRadiusCutScenarioS4 exercises spec §8 scenario S4.
func TestMatchOneRadiusCutScenarioS4(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 0.0, 0.0, 10.0)
	cand := mkStar(t, wk, 2.0/3600.0, 0.0, 10.0)

	list := criteria.List{criteria.RaDecRadius(10.0 / 3600.0)}

	info := MatchOne(ref, []*star.Star{cand}, list, 1.5, 0.5)

	if info.Type != BadDist {
		t.Fatalf("match type = %v; want BAD_DIST", info.Type)
	}
}

/*****************************************************************************************************************/

func TestMatchOneNoneWhenNoCandidatesPass(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 0.0, 0.0, 10.0)
	far := mkStar(t, wk, 10.0, 10.0, 10.0)

	list := criteria.List{criteria.RaDecRadius(1.0 / 3600.0)}

	info := MatchOne(ref, []*star.Star{far}, list, 1.0, 0.5)

	if info.Type != None {
		t.Fatalf("match type = %v; want NONE", info.Type)
	}
}

/*****************************************************************************************************************/

// TestMatchClosestRefSymmetryFailureScenarioS3 exercises spec §8 scenario S3.
func TestMatchClosestRefSymmetryFailureScenarioS3(t *testing.T) {
	wk := registry.NewWellKnown()

	r1 := mkStar(t, wk, 0.0, 0.0, 10.0)
	r2 := mkStar(t, wk, 0.0008, 0.0, 10.0)
	c := mkStar(t, wk, 0.00025, 0.0, 10.0)

	list := criteria.List{criteria.RaDecRadius(MatesRadiusArcsec / 3600.0)}

	results := MatchClosestRef([]*star.Star{r1, r2}, []*star.Star{c}, list, 2.0, 0.5)

	var r2Result *GroupResult

	for i := range results {
		if results[i].Ref == r2 {
			r2Result = &results[i]
		}
	}

	if r2Result == nil {
		t.Fatal("expected a result for r2")
	}

	if r2Result.Info.Type != BadBest {
		t.Errorf("r2 match type = %v; want BAD_BEST", r2Result.Info.Type)
	}
}

/*****************************************************************************************************************/

// TestMatchSymmetryUniversalProperty exercises spec §8 universal property 3:
// a GOOD match in one orientation is GOOD in the reverse orientation for a
// single isolated ref/candidate pair under symmetric criteria.
func TestMatchSymmetryUniversalProperty(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 10.0, 20.0, 6.0)
	cand := mkStar(t, wk, 10.0001, 20.0, 6.0)

	list := criteria.List{criteria.RaDecRadius(1.0 / 3600.0)}

	forward := MatchOne(ref, []*star.Star{cand}, list, 1.0, 0.1)
	reverse := MatchOne(cand, []*star.Star{ref}, list, 1.0, 0.1)

	if forward.Type != Good || reverse.Type != Good {
		t.Errorf("expected GOOD both ways: forward=%v reverse=%v", forward.Type, reverse.Type)
	}
}

/*****************************************************************************************************************/

// TestRadiusMonotonicity exercises spec §8 universal property 4: expanding
// the radius never decreases the number of matches admitted to the distance
// map.
func TestRadiusMonotonicity(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 0.0, 0.0, 10.0)
	near := mkStar(t, wk, 0.0001, 0.0, 10.0)
	far := mkStar(t, wk, 0.002, 0.0, 10.0)

	narrow := criteria.List{criteria.RaDecRadius(1.0 / 3600.0)}
	wide := criteria.List{criteria.RaDecRadius(10.0 / 3600.0)}

	nNarrow := len(buildDistanceMap(ref, []*star.Star{near, far}, narrow))
	nWide := len(buildDistanceMap(ref, []*star.Star{near, far}, wide))

	if nWide < nNarrow {
		t.Errorf("wider radius admitted fewer matches: narrow=%d wide=%d", nNarrow, nWide)
	}
}

/*****************************************************************************************************************/

// TestThresholdMonotonicity exercises spec §8 universal property 5: raising
// threshold_score never converts an ambiguous match into GOOD.
func TestThresholdMonotonicity(t *testing.T) {
	wk := registry.NewWellKnown()

	ref := mkStar(t, wk, 0.0, 0.0, 10.00)
	c1 := mkStar(t, wk, 0.0003, 0.0, 10.10)
	c2 := mkStar(t, wk, 0.0004, 0.0, 10.15)

	list := criteria.List{criteria.RaDecRadius(2.0 / 3600.0), criteria.MagnitudeDelta(wk.MagG, 1.0)}

	low := MatchOne(ref, []*star.Star{c1, c2}, list, 2.0, 0.01)
	high := MatchOne(ref, []*star.Star{c1, c2}, list, 2.0, 0.5)

	if low.Type != Good && high.Type == Good {
		t.Errorf("raising threshold turned an ambiguous match into GOOD: low=%v high=%v", low.Type, high.Type)
	}

	if high.Type == Good {
		t.Error("expected higher threshold to remain ambiguous, not collapse to GOOD")
	}
}
