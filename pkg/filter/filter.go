/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package filter implements the composable post-merge filter pipeline
// (spec §4.7), grounded on
// original_source/SearchCal/vobs/include/vobsFILTER.h.
package filter

/*****************************************************************************************************************/

import (
	"gonum.org/v1/gonum/stat"

	"github.com/JMMC-OpenDev/vobscore/pkg/geometry"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// Filter mutates a StarList in place, keeping only the stars it admits.
type Filter interface {
	Apply(list *star.List)
}

/*****************************************************************************************************************/

// Pipeline runs a sequence of Filters in order.
type Pipeline []Filter

/*****************************************************************************************************************/

// Apply runs every stage of the pipeline in order.
func (p Pipeline) Apply(list *star.List) {
	for _, f := range p {
		f.Apply(list)
	}
}

/*****************************************************************************************************************/

func keepWhere(list *star.List, keep func(*star.Star) bool) {
	for _, s := range append([]*star.Star(nil), list.Stars()...) {
		if !keep(s) {
			list.Remove(s)
		}
	}
}

/*****************************************************************************************************************/

// OriginFilter keeps stars where a property's origin equals a given
// catalog_id.
type OriginFilter struct {
	MetaID    registry.ID
	CatalogID star.Origin
}

/*****************************************************************************************************************/

func (f OriginFilter) Apply(list *star.List) {
	keepWhere(list, func(s *star.Star) bool {
		p := s.Get(f.MetaID)

		return p.IsSet() && p.Origin() == f.CatalogID
	})
}

/*****************************************************************************************************************/

// MagnitudeFilter keeps stars with a given-band magnitude in
// [center-range, center+range].
type MagnitudeFilter struct {
	MetaID registry.ID
	Center float64
	Range  float64
}

/*****************************************************************************************************************/

func (f MagnitudeFilter) Apply(list *star.List) {
	keepWhere(list, func(s *star.Star) bool {
		v, ok := s.Get(f.MetaID).Float()

		return ok && v >= f.Center-f.Range && v <= f.Center+f.Range
	})
}

/*****************************************************************************************************************/

// MagnitudeStats summarizes the distribution of MetaID magnitudes present
// in list, using gonum/stat. Stars lacking the property are excluded.
func MagnitudeStats(list *star.List, metaID registry.ID) (mean, stddev float64, n int) {
	var values []float64

	for _, s := range list.Stars() {
		if v, ok := s.Get(metaID).Float(); ok {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return 0, 0, 0
	}

	mean, std := stat.MeanStdDev(values, nil)

	return mean, std, len(values)
}

/*****************************************************************************************************************/

// DistanceFilter keeps stars within a radius (degrees) of a target
// position — post-merge cleanup around the science target.
type DistanceFilter struct {
	TargetRA, TargetDec float64
	RadiusDeg           float64
}

/*****************************************************************************************************************/

func (f DistanceFilter) Apply(list *star.List) {
	keepWhere(list, func(s *star.Star) bool {
		ra, dec, err := s.GetRaDec()
		if err != nil {
			return false
		}

		return geometry.AngularSeparation(f.TargetRA, f.TargetDec, ra, dec) <= f.RadiusDeg
	})
}

/*****************************************************************************************************************/

// DiameterOKFilter keeps stars whose computed-diameter quality flag is set
// (production-mode filtering downstream of diameter computation, out of
// this core's scope beyond reading the flag property).
type DiameterOKFilter struct {
	MetaID registry.ID
}

/*****************************************************************************************************************/

func (f DiameterOKFilter) Apply(list *star.List) {
	keepWhere(list, func(s *star.Star) bool {
		v, ok := s.Get(f.MetaID).Bool()

		return ok && v
	})
}

/*****************************************************************************************************************/

// DuplicateFilter groups stars by ~coincident coordinates and either keeps
// one per group or flags every member of a group as a duplicate
// (spec §4.7, §8 scenario S6).
type DuplicateFilter struct {
	// ToleranceArcsec is the coordinate-coincidence tolerance.
	ToleranceArcsec float64

	// FlagAll, when true, raises DuplicateFlagID on every member of a
	// duplicate group instead of removing all but the first.
	FlagAll         bool
	DuplicateFlagID registry.ID
}

/*****************************************************************************************************************/

func (f DuplicateFilter) Apply(list *star.List) {
	toleranceDeg := f.ToleranceArcsec / 3600.0

	stars := append([]*star.Star(nil), list.Stars()...)

	seen := make([]bool, len(stars))

	for i := range stars {
		if seen[i] {
			continue
		}

		ra1, dec1, err1 := stars[i].GetRaDec()
		if err1 != nil {
			continue
		}

		for j := i + 1; j < len(stars); j++ {
			if seen[j] {
				continue
			}

			ra2, dec2, err2 := stars[j].GetRaDec()
			if err2 != nil {
				continue
			}

			if geometry.AngularSeparation(ra1, dec1, ra2, dec2) > toleranceDeg {
				continue
			}

			seen[j] = true

			if f.FlagAll {
				stars[i].SetBool(f.DuplicateFlagID, true, star.OriginComputed, star.ConfidenceHigh, true)
				stars[j].SetBool(f.DuplicateFlagID, true, star.OriginComputed, star.ConfidenceHigh, true)
			} else {
				list.Remove(stars[j])
			}
		}
	}

	if f.FlagAll {
		for i, dup := range seen {
			if dup {
				stars[i].SetBool(f.DuplicateFlagID, true, star.OriginComputed, star.ConfidenceHigh, true)
			}
		}
	}
}

/*****************************************************************************************************************/

// BlacklistFilter removes stars whose identifier matches an entry in a
// preloaded local blacklist (SPEC_FULL.md supplemented feature, grounded on
// original_source/SearchCal/vobs/src/vobsCATALOG_BADCAL_LOCAL.cpp — a local
// "bad calibrators" catalog consulted during filtering).
type BlacklistFilter struct {
	MetaID    registry.ID
	Blacklist map[string]struct{}
}

/*****************************************************************************************************************/

func (f BlacklistFilter) Apply(list *star.List) {
	keepWhere(list, func(s *star.Star) bool {
		id, ok := s.Get(f.MetaID).String()
		if !ok {
			return true
		}

		_, blacklisted := f.Blacklist[id]

		return !blacklisted
	})
}
