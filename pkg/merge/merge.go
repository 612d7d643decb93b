/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package merge implements the three-mode Merger (spec §4.5), grounded on
// original_source/SearchCal/vobs/src/vobsSTAR_LIST.cpp's Merge: path A
// (closest-ref enrichment, grouped by targetId) and path B (seed/add union).
package merge

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"sort"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/match"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// MinScoreTh is the Merger's floor on threshold_score (spec §4.5).
const MinScoreTh = 0.5

/*****************************************************************************************************************/

// Threshold computes threshold_score = max(MIN_SCORE_TH, min(1.0,
// precision_as/2, xmRadius_as/2)), with an explicit zero for the primary
// seeding catalog (isPrimary=true, per spec §4.5: "0 for the main primary
// catalog").
func Threshold(precisionAs, xmRadiusAs float64, isPrimary bool) float64 {
	if isPrimary {
		return 0
	}

	return math.Max(MinScoreTh, math.Min(1.0, math.Min(precisionAs/2, xmRadiusAs/2)))
}

/*****************************************************************************************************************/

// Merge applies from onto into, matching with list and tuning with meta
// (precision, epochs, overwrite mask), per spec §4.5. updateOnly selects between path A (closest-ref enrichment) and
// path B (seed/add union) once into is non-empty.
func Merge(into, from *star.List, list criteria.List, meta catalog.Meta, updateOnly bool) error {
	if into.Len() == 0 && !updateOnly {
		into.CopyRefs(from, true)
		into.CatalogMeta = &meta
		into.CatalogID = from.CatalogID

		return nil
	}

	into.PrepareIndex()

	radiusAs, ok := list.Radius()
	if !ok {
		return fmt.Errorf("merge: criteria list has no positional criterion")
	}

	radiusAs *= 3600.0

	threshold := Threshold(meta.PrecisionAs, radiusAs, false)

	if updateOnly && len(list) > 0 {
		return mergePathA(into, from, list, meta, radiusAs, threshold)
	}

	return mergePathB(into, from, list, meta, radiusAs, threshold, updateOnly)
}

/*****************************************************************************************************************/

// mergePathA is the closest-ref enrichment path used by all secondary
// queries: group `from` by targetId, locate the reference stars in a
// declination band around each group, and fold matches in via Update. The
// band is centred on the Dec of the group's first candidate after sorting
// (its lowest Dec), not on the query center the group was fetched around;
// reference stars outside that band are not matched against the group.
func mergePathA(into, from *star.List, list criteria.List, meta catalog.Meta, radiusAs, threshold float64) error {
	groups := groupByTargetID(from)

	// pm_slack = |Δepoch| · 0.1 arcsec/yr (spec §4.5), already in arcsec.
	pmSlackAs := 0.0
	if meta.PrecessEpoch {
		pmSlackAs = math.Abs(meta.EpochTo-meta.EpochFrom) * 0.1
	}

	halfWidth := (radiusAs + pmSlackAs) / 3600.0

	mapList := match.WidenForMateSearch(list)

	for _, g := range groups {
		_, centerDec, err := g.candidates[0].GetRaDec()
		if err != nil {
			continue
		}

		nearby := into.InDeclinationBand(centerDec, halfWidth)

		restore := func() {}

		if meta.PrecessEpoch {
			if refMeta, ok := into.CatalogMeta.(*catalog.Meta); ok {
				restore = precessCandidatesToRefEpoch(nearby, g.candidates, refMeta, meta)
			}
		}

		if meta.MultipleRows || meta.MatchMode == catalog.MatchAll {
			applyMultipleRows(nearby, g.candidates, list, meta)
			restore()

			continue
		}

		results := match.MatchClosestRef(nearby, g.candidates, mapList, radiusAs, threshold)
		restore()

		for _, r := range results {
			applyGroupResult(r, meta)
		}
	}

	return nil
}

/*****************************************************************************************************************/

type targetGroup struct {
	targetID   string
	candidates []*star.Star
}

/*****************************************************************************************************************/

// groupByTargetID sorts from by (targetId, Dec, RA) and partitions it into
// contiguous groups of equal targetId (spec §4.5 path A step 1).
func groupByTargetID(from *star.List) []targetGroup {
	stars := append([]*star.Star(nil), from.Stars()...)

	sort.SliceStable(stars, func(i, j int) bool {
		ti, _ := stars[i].TargetID()
		tj, _ := stars[j].TargetID()

		if ti != tj {
			return ti < tj
		}

		rai, deci, _ := stars[i].GetRaDec()
		raj, decj, _ := stars[j].GetRaDec()

		if deci != decj {
			return deci < decj
		}

		return rai < raj
	})

	var groups []targetGroup

	var cur *targetGroup

	for _, s := range stars {
		id, _ := s.TargetID()

		if cur == nil || cur.targetID != id {
			groups = append(groups, targetGroup{targetID: id})
			cur = &groups[len(groups)-1]
		}

		cur.candidates = append(cur.candidates, s)
	}

	return groups
}

/*****************************************************************************************************************/

// applyMultipleRows implements the simpler path taken by catalogs flagged
// multiple_rows (spec §4.5): every matching candidate updates its
// reference, with no symmetry check.
func applyMultipleRows(refs []*star.Star, candidates []*star.Star, list criteria.List, meta catalog.Meta) {
	for _, ref := range refs {
		nMates := 0

		for _, c := range candidates {
			if !list.Passes(ref, c) {
				continue
			}

			nMates++
			updateReferenceFromCandidate(ref, c, meta)
		}

		if nMates > 0 {
			ref.RaiseGroupSize(int64(nMates))
		}
	}
}

/*****************************************************************************************************************/

func applyGroupResult(r match.GroupResult, meta catalog.Meta) {
	ref := r.Ref

	switch r.Info.Type {
	case match.None:
		return
	case match.BadDist, match.BadBest:
		ref.OrXMFlags(r.Info.Type.Flag(), true)

		return
	}

	updateReferenceFromCandidate(ref, r.Info.Best, meta)

	ref.RaiseGroupSize(int64(r.Info.NMates))
	ref.OrXMFlags(r.Info.Type.Flag(), true)
	ref.AppendXMLog(fmt.Sprintf(
		"%s: dist=%.3f\" score=%.3f mates=%d", meta.Name, r.Info.BestEntry.DistAngAs, r.Info.BestEntry.Score, r.Info.NMates,
	))
}

/*****************************************************************************************************************/

// updateReferenceFromCandidate clears bookkeeping fields the candidate
// should not contribute to the reference (targetId, JD), optionally clears
// the reference's own coordinates first (coordinate-overwrite catalogs),
// and folds the candidate's properties in via Update.
func updateReferenceFromCandidate(ref, cand *star.Star, meta catalog.Meta) {
	cand.ClearTargetID()
	cand.ClearJDDate()

	if meta.OverwriteCoordinates {
		ref.ClearValue(ref.WellKnown().RA)
		ref.ClearValue(ref.WellKnown().Dec)
	}

	ref.Update(cand, meta.OverwriteMask, star.OverwriteModePartial, nil)
}

/*****************************************************************************************************************/

// mergePathB is the seed/add union path (spec §4.5 path B): every source
// star either updates a matched reference via the index, or — when not
// update-only and it carries a position — is appended as a new reference.
func mergePathB(
	into, from *star.List, list criteria.List, meta catalog.Meta, radiusAs, threshold float64, updateOnly bool,
) error {
	for _, s := range from.Stars() {
		_, dec, err := s.GetRaDec()
		if err != nil {
			continue
		}

		halfWidth := radiusAs / 3600.0
		nearby := into.InDeclinationBand(dec, halfWidth)

		info := match.MatchOne(s, nearby, list, radiusAs, threshold)

		switch info.Type {
		case match.Good, match.GoodAmbiguousMatchScore, match.GoodAmbiguousMatchScoreBetter:
			updateReferenceFromCandidate(info.Best, s, meta)
			info.Best.OrXMFlags(info.Type.Flag(), true)
		default:
			if updateOnly {
				continue
			}

			into.AddRefAtTail(s)
			into.PrepareIndex()
		}
	}

	return nil
}
