/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package merge

/*****************************************************************************************************************/

import (
	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// julianDayEpoch converts a Julian day to a Julian epoch (spec §4.4.3).
func julianDayEpoch(jd float64) float64 {
	return 2000.0 + (jd-2451545.0)/365.25
}

/*****************************************************************************************************************/

// medianEpoch returns a catalog's representative observation epoch, falling
// back to J2000 when the catalog carries no epoch range at all.
func medianEpoch(meta catalog.Meta) float64 {
	if meta.EpochFrom == 0 && meta.EpochTo == 0 {
		return 2000.0
	}

	return (meta.EpochFrom + meta.EpochTo) / 2
}

/*****************************************************************************************************************/

// starEpoch returns the epoch a candidate star's coordinates were recorded
// at: its own jd_date when the catalog is multi-epoch, otherwise the
// catalog's median epoch (spec §4.4.3).
func starEpoch(s *star.Star, meta catalog.Meta) float64 {
	if !meta.SingleEpoch {
		if jd, ok := s.JDDate(); ok {
			return julianDayEpoch(jd)
		}
	}

	return medianEpoch(meta)
}

/*****************************************************************************************************************/

// precessedCandidate remembers enough to undo a transient epoch correction.
type precessedCandidate struct {
	star               *star.Star
	pmRA, pmDec        float64
	fromEpoch, toEpoch float64
}

/*****************************************************************************************************************/

// precessCandidatesToRefEpoch transiently propagates every candidate onto
// the reference list's own native epoch (spec §4.4.3), so the distance map
// compares like-for-like positions rather than penalising high-proper-motion
// stars observed at different epochs. Mode BOTH uses the candidate's own
// proper motion when the catalog records one; mode LIST-only borrows the
// proper motion of the first nearby reference star that carries one, since
// the candidate catalog itself has none. A candidate whose epoch already
// matches the reference epoch, or for which no proper motion is available
// from either side, is left untouched. The returned func undoes every
// correction it applied; call it once matching against this group is done.
func precessCandidatesToRefEpoch(refs, candidates []*star.Star, refMeta *catalog.Meta, candMeta catalog.Meta) func() {
	if refMeta == nil || len(refs) == 0 || len(candidates) == 0 {
		return func() {}
	}

	wk := refs[0].WellKnown()
	refEpoch := medianEpoch(*refMeta)

	var applied []precessedCandidate

	for _, c := range candidates {
		fromEpoch := starEpoch(c, candMeta)
		if fromEpoch == refEpoch {
			continue
		}

		pmRA, okRA := c.Get(wk.PMRA).Float()
		pmDec, okDec := c.Get(wk.PMDec).Float()

		if !okRA || !okDec {
			pmRA, pmDec, okRA, okDec = 0, 0, false, false

			for _, r := range refs {
				rRA, rOkRA := r.Get(wk.PMRA).Float()
				rDec, rOkDec := r.Get(wk.PMDec).Float()

				if rOkRA && rOkDec {
					pmRA, pmDec, okRA, okDec = rRA, rDec, true, true

					break
				}
			}
		}

		if !okRA || !okDec {
			continue
		}

		if err := c.CorrectRaDecEpoch(pmRA, pmDec, fromEpoch, refEpoch); err != nil {
			continue
		}

		applied = append(applied, precessedCandidate{
			star: c, pmRA: pmRA, pmDec: pmDec, fromEpoch: fromEpoch, toEpoch: refEpoch,
		})
	}

	return func() {
		for _, p := range applied {
			_ = p.star.CorrectRaDecEpoch(p.pmRA, p.pmDec, p.toEpoch, p.fromEpoch)
		}
	}
}
