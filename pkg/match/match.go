/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package match implements the scored distance-map matcher (spec §4.4),
// grounded on original_source/SearchCal/vobs/src/vobsSTAR_LIST.cpp's
// GetStarMatchingCriteriaUsingDistMap (single-match) and
// GetStarsMatchingCriteriaUsingDistMap (many-to-many).
package match

/*****************************************************************************************************************/

import (
	"math"
	"sort"

	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/geometry"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// Tuneable constants from spec §4.5.
const (
	MatesRadiusArcsec = 3.0

	BetterMinScoreThLo = 0.01
	BetterScoreRatioLo = 2.0
	BetterMinScoreThHi = 0.1
)

/*****************************************************************************************************************/

// Type is the tagged match outcome (spec §4.4.4); the integer xmatch flag
// mapping is derived from it, never the other way around.
type Type int

/*****************************************************************************************************************/

const (
	None Type = iota
	BadDist
	BadBest
	Good
	GoodAmbiguousMatchScore
	GoodAmbiguousMatchScoreBetter
	GoodAmbiguousRefScore
	GoodAmbiguousRefScoreBetter
)

/*****************************************************************************************************************/

// Flag returns the xmatch bit this Type raises (spec §4.4.4: "each maps to
// a bit flag").
func (t Type) Flag() int64 {
	switch t {
	case None:
		return 0
	case BadDist:
		return 1 << 0
	case BadBest:
		return 1 << 1
	case Good:
		return 1 << 2
	case GoodAmbiguousMatchScore:
		return 1 << 3
	case GoodAmbiguousMatchScoreBetter:
		return 1 << 4
	case GoodAmbiguousRefScore:
		return 1 << 5
	case GoodAmbiguousRefScoreBetter:
		return 1 << 6
	default:
		return 0
	}
}

/*****************************************************************************************************************/

func (t Type) String() string {
	switch t {
	case None:
		return "NONE"
	case BadDist:
		return "BAD_DIST"
	case BadBest:
		return "BAD_BEST"
	case Good:
		return "GOOD"
	case GoodAmbiguousMatchScore:
		return "GOOD_AMBIGUOUS_MATCH_SCORE"
	case GoodAmbiguousMatchScoreBetter:
		return "GOOD_AMBIGUOUS_MATCH_SCORE_BETTER"
	case GoodAmbiguousRefScore:
		return "GOOD_AMBIGUOUS_REF_SCORE"
	case GoodAmbiguousRefScoreBetter:
		return "GOOD_AMBIGUOUS_REF_SCORE_BETTER"
	default:
		return "UNKNOWN"
	}
}

/*****************************************************************************************************************/

// WidenForMateSearch returns a copy of list with its leading positional
// criterion widened to at least MatesRadiusArcsec (spec §4.4.2 step 5): the
// map-building pass must enumerate every candidate within the wider mates
// radius so MatchClosestRef's symmetry check and NMates count see the full
// mate set, even though the true xmatch radius used to classify the closest
// match (step 3) stays narrow. A candidate sitting between the two radii
// must surface as BadDist, not silently vanish as None.
func WidenForMateSearch(list criteria.List) criteria.List {
	if len(list) == 0 {
		return list
	}

	matesRadiusDeg := MatesRadiusArcsec / 3600.0

	widened := append(criteria.List(nil), list...)

	switch widened[0].Kind {
	case criteria.KindRaDecRadius:
		if widened[0].RadiusDeg < matesRadiusDeg {
			widened[0] = criteria.RaDecRadius(matesRadiusDeg)
		}
	case criteria.KindRaDecBox:
		if widened[0].DRaDeg < matesRadiusDeg || widened[0].DDecDeg < matesRadiusDeg {
			widened[0] = criteria.RaDecBox(math.Max(widened[0].DRaDeg, matesRadiusDeg), math.Max(widened[0].DDecDeg, matesRadiusDeg))
		}
	}

	return widened
}

/*****************************************************************************************************************/

// Entry is one scored candidate in a distance map.
type Entry struct {
	Candidate *star.Star
	DistAngAs float64
	DistMag   float64
	HasMag    bool
	Score     float64
}

/*****************************************************************************************************************/

// Info is the result of matching one reference star against a candidate
// set (spec §4.4.1).
type Info struct {
	Type       Type
	Best       *star.Star
	BestEntry  Entry
	NMates     int
	SecondBest *Entry
}

/*****************************************************************************************************************/

// magMetaIDs extracts the meta_ids named by MagnitudeDelta criteria, used to
// compute distMag (spec §4.4's score definition).
func magMetaIDs(list criteria.List) []registry.ID {
	var ids []registry.ID

	for _, c := range list {
		if c.Kind == criteria.KindMagnitudeDelta {
			ids = append(ids, c.MetaID)
		}
	}

	return ids
}

/*****************************************************************************************************************/

// score computes (distAng_as, distMag, hasMag, combined score) for a
// ref/candidate pair already known to pass the geometric criteria.
func score(ref, cand *star.Star, magIDs []registry.ID) Entry {
	ra1, dec1, _ := ref.GetRaDec()
	ra2, dec2, _ := cand.GetRaDec()

	distAng := geometry.AngularSeparationArcsec(ra1, dec1, ra2, dec2)

	var distMag float64

	hasMag := len(magIDs) > 0

	for _, id := range magIDs {
		a, aOk := ref.Get(id).Float()
		b, bOk := cand.Get(id).Float()

		if !aOk || !bOk {
			hasMag = false

			break
		}

		distMag += math.Abs(a - b)
	}

	sc := distAng
	if hasMag {
		sc = math.Sqrt(distAng*distAng + distMag*distMag)
	}

	return Entry{Candidate: cand, DistAngAs: distAng, DistMag: distMag, HasMag: hasMag, Score: sc}
}

/*****************************************************************************************************************/

// buildDistanceMap scores every candidate that passes list against ref and
// returns the entries sorted ascending by score.
func buildDistanceMap(ref *star.Star, candidates []*star.Star, list criteria.List) []Entry {
	magIDs := magMetaIDs(list)

	entries := make([]Entry, 0, len(candidates))

	for _, c := range candidates {
		if !list.Passes(ref, c) {
			continue
		}

		entries = append(entries, score(ref, c, magIDs))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score < entries[j].Score })

	return entries
}

/*****************************************************************************************************************/

// better implements spec §4.4.1's "better" predicate: a second entry is
// decisively worse than the first when its score exceeds the first's by a
// wide margin at either the LO or HI threshold/ratio pairing.
func better(deltaScore, e1Score, e2Score float64) bool {
	ratio := math.Inf(1)
	if e1Score > 0 {
		ratio = e2Score / e1Score
	}

	hi := deltaScore >= BetterMinScoreThHi && ratio >= BetterScoreRatioLo
	lo := deltaScore >= BetterMinScoreThLo && ratio >= BetterScoreRatioLo

	return hi || lo
}

/*****************************************************************************************************************/

// MatchOne matches a single reference star against a candidate set
// (spec §4.4.1).
func MatchOne(ref *star.Star, candidates []*star.Star, list criteria.List, radiusAs, thresholdScore float64) Info {
	entries := buildDistanceMap(ref, candidates, list)

	if len(entries) == 0 {
		return Info{Type: None}
	}

	e1 := entries[0]

	if e1.DistAngAs > radiusAs {
		return Info{Type: BadDist, Best: e1.Candidate, BestEntry: e1, NMates: len(entries)}
	}

	if len(entries) > 1 {
		e2 := entries[1]
		delta := math.Abs(e2.Score - e1.Score)

		if delta < thresholdScore {
			t := GoodAmbiguousMatchScore
			if better(delta, e1.Score, e2.Score) {
				t = GoodAmbiguousMatchScoreBetter
			}

			e2c := e2

			return Info{Type: t, Best: e1.Candidate, BestEntry: e1, NMates: len(entries), SecondBest: &e2c}
		}
	}

	return Info{Type: Good, Best: e1.Candidate, BestEntry: e1, NMates: len(entries)}
}

/*****************************************************************************************************************/

// GroupResult is one reference star's outcome from MatchClosestRef.
type GroupResult struct {
	Ref  *star.Star
	Info Info
}

/*****************************************************************************************************************/

// MatchClosestRef runs the many-to-many symmetric matcher (spec §4.4.2) for
// a batch of reference stars sharing a query group against a shared
// candidate pool. list gates which candidates enter the distance maps at
// all, so callers building the map at the expanded mates radius must pass a
// list already widened via WidenForMateSearch; xmRadiusAs is the true
// xmatch radius, re-applied when classifying each reference's best match.
func MatchClosestRef(refs []*star.Star, candidates []*star.Star, list criteria.List, xmRadiusAs, thresholdScore float64) []GroupResult {
	forward := make(map[*star.Star][]Entry, len(refs))

	for _, r := range refs {
		forward[r] = buildDistanceMap(r, candidates, list)
	}

	reverse := make(map[*star.Star][]Entry, len(candidates))

	for _, c := range candidates {
		reverse[c] = buildDistanceMap(c, refs, list)
	}

	results := make([]GroupResult, 0, len(refs))

	for _, r := range refs {
		entries := forward[r]

		if len(entries) == 0 {
			results = append(results, GroupResult{Ref: r, Info: Info{Type: None}})

			continue
		}

		e1 := entries[0]

		if e1.DistAngAs > xmRadiusAs {
			results = append(results, GroupResult{
				Ref: r, Info: Info{Type: BadDist, Best: e1.Candidate, BestEntry: e1, NMates: len(entries)},
			})

			continue
		}

		// Symmetry check: the candidate's own best reference must be r.
		revEntries := reverse[e1.Candidate]

		symmetryOK := len(revEntries) > 0 && revEntries[0].Candidate == r

		if !symmetryOK {
			results = append(results, GroupResult{
				Ref: r, Info: Info{Type: BadBest, Best: e1.Candidate, BestEntry: e1, NMates: len(entries)},
			})

			continue
		}

		info := Info{Type: Good, Best: e1.Candidate, BestEntry: e1, NMates: len(entries)}

		if len(entries) > 1 {
			e2 := entries[1]
			delta := math.Abs(e2.Score - e1.Score)

			if delta < thresholdScore {
				info.Type = GoodAmbiguousMatchScore
				if better(delta, e1.Score, e2.Score) {
					info.Type = GoodAmbiguousMatchScoreBetter
				}

				e2c := e2
				info.SecondBest = &e2c
			}
		}

		if len(revEntries) > 1 {
			re2 := revEntries[1]
			delta := math.Abs(re2.Score - revEntries[0].Score)

			if delta < thresholdScore && info.Type == Good {
				info.Type = GoodAmbiguousRefScore
				if better(delta, revEntries[0].Score, re2.Score) {
					info.Type = GoodAmbiguousRefScoreBetter
				}
			}
		}

		results = append(results, GroupResult{Ref: r, Info: info})
	}

	return results
}
