/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package criteria implements the tagged-union Criterion type (spec §3.5)
// and its pass/fail semantics against a candidate/reference star pair
// (spec §4.3). A criteria list is evaluated left to right; by convention the
// first entry is always a positional criterion (RaDecRadius or RaDecBox).
package criteria

/*****************************************************************************************************************/

import (
	"math"
	"strings"

	"github.com/JMMC-OpenDev/vobscore/pkg/geometry"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// Kind distinguishes the Criterion variants.
type Kind int

/*****************************************************************************************************************/

const (
	KindRaDecRadius Kind = iota
	KindRaDecBox
	KindIdEquality
	KindMagnitudeDelta
	KindGaiaMagComposite
)

/*****************************************************************************************************************/

// Criterion is a tagged union over the five match-criterion variants of
// spec §3.5. Only the fields relevant to Kind are meaningful.
type Criterion struct {
	Kind Kind

	// RaDecRadius
	RadiusDeg float64

	// RaDecBox
	DRaDeg  float64
	DDecDeg float64

	// IdEquality / MagnitudeDelta
	MetaID registry.ID

	// MagnitudeDelta
	DeltaMag float64

	// GaiaMagComposite
	NSigma float64
}

/*****************************************************************************************************************/

// RaDecRadius returns a great-circle radius criterion.
func RaDecRadius(radiusDeg float64) Criterion {
	return Criterion{Kind: KindRaDecRadius, RadiusDeg: radiusDeg}
}

/*****************************************************************************************************************/

// RaDecBox returns a RA/Dec box criterion.
func RaDecBox(dRaDeg, dDecDeg float64) Criterion {
	return Criterion{Kind: KindRaDecBox, DRaDeg: dRaDeg, DDecDeg: dDecDeg}
}

/*****************************************************************************************************************/

// IdEquality returns a string-equality (after trim) criterion over metaID.
func IdEquality(metaID registry.ID) Criterion {
	return Criterion{Kind: KindIdEquality, MetaID: metaID}
}

/*****************************************************************************************************************/

// MagnitudeDelta returns a |m1-m2| <= deltaMag criterion over metaID.
func MagnitudeDelta(metaID registry.ID, deltaMag float64) Criterion {
	return Criterion{Kind: KindMagnitudeDelta, MetaID: metaID, DeltaMag: deltaMag}
}

/*****************************************************************************************************************/

// GaiaMagComposite returns the GAIA composite-magnitude criterion marker.
// Passes always reports true for it and the match scorer does not read it,
// so it has no effect on candidate admission or scoring.
func GaiaMagComposite(nSigma float64) Criterion {
	return Criterion{Kind: KindGaiaMagComposite, NSigma: nSigma}
}

/*****************************************************************************************************************/

// List is an ordered criteria list; by convention entry 0 is a positional
// criterion.
type List []Criterion

/*****************************************************************************************************************/

// Radius returns the effective search radius in degrees of the list's
// leading positional criterion, and whether one was found.
func (l List) Radius() (float64, bool) {
	if len(l) == 0 {
		return 0, false
	}

	switch l[0].Kind {
	case KindRaDecRadius:
		return l[0].RadiusDeg, true
	case KindRaDecBox:
		return math.Max(l[0].DRaDeg, l[0].DDecDeg), true
	default:
		return 0, false
	}
}

/*****************************************************************************************************************/

// Passes reports whether ref and cand satisfy every criterion in the list
// (spec §4.3). A positional failure short-circuits the remaining checks.
func (l List) Passes(ref, cand *star.Star) bool {
	for _, c := range l {
		if !c.passes(ref, cand) {
			return false
		}
	}

	return true
}

/*****************************************************************************************************************/

func (c Criterion) passes(ref, cand *star.Star) bool {
	switch c.Kind {
	case KindRaDecRadius:
		ra1, dec1, err1 := ref.GetRaDec()
		ra2, dec2, err2 := cand.GetRaDec()

		if err1 != nil || err2 != nil {
			return false
		}

		return geometry.AngularSeparation(ra1, dec1, ra2, dec2) <= c.RadiusDeg

	case KindRaDecBox:
		ra1, dec1, err1 := ref.GetRaDec()
		ra2, dec2, err2 := cand.GetRaDec()

		if err1 != nil || err2 != nil {
			return false
		}

		return geometry.WithinBox(ra1, dec1, ra2, dec2, c.DRaDeg, c.DDecDeg)

	case KindIdEquality:
		a, aOk := ref.Get(c.MetaID).String()
		b, bOk := cand.Get(c.MetaID).String()

		if !aOk || !bOk {
			return false
		}

		return strings.TrimSpace(a) == strings.TrimSpace(b)

	case KindMagnitudeDelta:
		a, aOk := ref.Get(c.MetaID).Float()
		b, bOk := cand.Get(c.MetaID).Float()

		// spec §4.3: "both magnitudes must be set; else criterion passes".
		if !aOk || !bOk {
			return true
		}

		return math.Abs(a-b) <= c.DeltaMag

	case KindGaiaMagComposite:
		return true

	default:
		return false
	}
}
