/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package star

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/JMMC-OpenDev/vobscore/pkg/geometry"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
)

/*****************************************************************************************************************/

// Star is a fixed-schema bag of Properties, one slot per registered
// meta_id, plus the well-known ids it needs for its convenience accessors
// (RA, Dec, proper motion, cross-match bookkeeping). Stars are created by a
// CatalogClient or CatalogLoader, mutated only by the Merger and Filters,
// and destroyed by whichever StarList owns them.
type Star struct {
	wk    *registry.WellKnown
	props []Property
}

/*****************************************************************************************************************/

// New allocates a Star with one (unset) Property slot per registered
// meta_id in wk's registry.
func New(wk *registry.WellKnown) *Star {
	return &Star{
		wk:    wk,
		props: make([]Property, wk.Registry.Len()),
	}
}

/*****************************************************************************************************************/

// WellKnown returns the registry this star was allocated against.
func (s *Star) WellKnown() *registry.WellKnown { return s.wk }

/*****************************************************************************************************************/

// Get returns the property stored at id, or the zero (unset) Property if id
// is out of range.
func (s *Star) Get(id registry.ID) Property {
	if int(id) < 0 || int(id) >= len(s.props) {
		return Property{}
	}

	return s.props[id]
}

/*****************************************************************************************************************/

// IsSet reports whether the property at id carries a value.
func (s *Star) IsSet(id registry.ID) bool {
	return s.Get(id).IsSet()
}

/*****************************************************************************************************************/

// ClearValue removes any value at id, restoring it to "not set".
func (s *Star) ClearValue(id registry.ID) {
	if int(id) < 0 || int(id) >= len(s.props) {
		return
	}

	s.props[id] = Property{}
}

/*****************************************************************************************************************/

// setIfAllowed writes p at id unless a value is already set and overwrite
// is false, matching spec §4.1: "sets only if unset or overwrite".
func (s *Star) setIfAllowed(id registry.ID, p Property, overwrite bool) bool {
	if int(id) < 0 || int(id) >= len(s.props) {
		return false
	}

	if s.props[id].set && !overwrite {
		return false
	}

	s.props[id] = p

	return true
}

/*****************************************************************************************************************/

// SetString sets a string-typed property.
func (s *Star) SetString(id registry.ID, v string, origin Origin, confidence Confidence, overwrite bool) bool {
	return s.setIfAllowed(id, stringProperty(v, origin, confidence), overwrite)
}

/*****************************************************************************************************************/

// SetInt sets an int/long-typed property.
func (s *Star) SetInt(id registry.ID, v int64, origin Origin, confidence Confidence, overwrite bool) bool {
	return s.setIfAllowed(id, intProperty(v, origin, confidence), overwrite)
}

/*****************************************************************************************************************/

// SetBool sets a bool-typed property.
func (s *Star) SetBool(id registry.ID, v bool, origin Origin, confidence Confidence, overwrite bool) bool {
	return s.setIfAllowed(id, boolProperty(v, origin, confidence), overwrite)
}

/*****************************************************************************************************************/

// SetFloat sets a double-typed property.
func (s *Star) SetFloat(id registry.ID, v float64, origin Origin, confidence Confidence, overwrite bool) bool {
	return s.setIfAllowed(id, floatProperty(v, origin, confidence), overwrite)
}

/*****************************************************************************************************************/

// SetFloatWithError sets a double-typed property carrying a measurement
// error (σ).
func (s *Star) SetFloatWithError(
	id registry.ID, v, errVal float64, origin Origin, confidence Confidence, overwrite bool,
) bool {
	return s.setIfAllowed(id, floatProperty(v, origin, confidence).WithError(errVal), overwrite)
}

/*****************************************************************************************************************/

// GetRaDec returns the star's sky position. It fails if RA or Dec is unset,
// per spec §4.1.
func (s *Star) GetRaDec() (ra, dec float64, err error) {
	raP := s.Get(s.wk.RA)
	decP := s.Get(s.wk.Dec)

	ra, raOk := raP.Float()
	dec, decOk := decP.Float()

	if !raOk || !decOk {
		return 0, 0, fmt.Errorf("star: RA/Dec not set")
	}

	return ra, dec, nil
}

/*****************************************************************************************************************/

// SetRaDec sets the star's sky position, enforcing RA ∈ [0,360) and
// Dec ∈ [-90,90] (spec §3.3 invariant).
func (s *Star) SetRaDec(ra, dec float64, origin Origin, confidence Confidence, overwrite bool) error {
	if dec < -90 || dec > 90 {
		return fmt.Errorf("star: dec %f out of range [-90,90]", dec)
	}

	ra = geometry.NormalizeRa(ra)

	s.SetFloat(s.wk.RA, ra, origin, confidence, overwrite)
	s.SetFloat(s.wk.Dec, dec, origin, confidence, overwrite)

	return nil
}

/*****************************************************************************************************************/

// GetPmRaDec returns the star's proper motion in mas/yr. It fails if either
// component is unset.
func (s *Star) GetPmRaDec() (pmRa, pmDec float64, err error) {
	pmRaP := s.Get(s.wk.PMRA)
	pmDecP := s.Get(s.wk.PMDec)

	pmRa, raOk := pmRaP.Float()
	pmDec, decOk := pmDecP.Float()

	if !raOk || !decOk {
		return 0, 0, fmt.Errorf("star: proper motion not set")
	}

	return pmRa, pmDec, nil
}

/*****************************************************************************************************************/

// HasPm reports whether both pmRA and pmDEC are set, enforcing the spec's
// "if pm is set, both pmRA and pmDEC are set" invariant at the read side:
// a star with only one of the pair set is treated as having no usable PM.
func (s *Star) HasPm() bool {
	return s.IsSet(s.wk.PMRA) && s.IsSet(s.wk.PMDec)
}

/*****************************************************************************************************************/

// SetPmRaDec sets proper motion; both components are required together so
// the invariant in spec §3.3 cannot be violated through this accessor.
func (s *Star) SetPmRaDec(pmRa, pmDec float64, origin Origin, confidence Confidence, overwrite bool) {
	s.SetFloat(s.wk.PMRA, pmRa, origin, confidence, overwrite)
	s.SetFloat(s.wk.PMDec, pmDec, origin, confidence, overwrite)
}

/*****************************************************************************************************************/

// CorrectRaDecEpoch propagates the star's RA/Dec in place from epochFrom to
// epochTo using the supplied proper motion (mas/yr). Matcher-side precession
// (spec §4.4.3) calls this once to move onto a common epoch and a second
// time with the epochs swapped to restore the original coordinates.
func (s *Star) CorrectRaDecEpoch(pmRa, pmDec, epochFrom, epochTo float64) error {
	ra, dec, err := s.GetRaDec()
	if err != nil {
		return err
	}

	newRa, newDec := geometry.PropagateLinear(ra, dec, pmRa, pmDec, epochFrom, epochTo)

	raProp := s.Get(s.wk.RA)
	decProp := s.Get(s.wk.Dec)

	s.props[s.wk.RA] = floatProperty(newRa, raProp.origin, raProp.confidence)
	s.props[s.wk.Dec] = floatProperty(newDec, decProp.origin, decProp.confidence)

	return nil
}

/*****************************************************************************************************************/

// TargetID returns the query-center identifier a CatalogClient stamped on
// this row, used by the Merger to reconstruct query groups.
func (s *Star) TargetID() (string, bool) { return s.Get(s.wk.TargetID).String() }

/*****************************************************************************************************************/

// SetTargetID sets the query-center identifier.
func (s *Star) SetTargetID(v string, origin Origin) {
	s.SetString(s.wk.TargetID, v, origin, ConfidenceHigh, true)
}

/*****************************************************************************************************************/

// ClearTargetID removes the query-center identifier, as done to a matched
// candidate before it is folded into a reference star (spec §4.5 Path A).
func (s *Star) ClearTargetID() { s.ClearValue(s.wk.TargetID) }

/*****************************************************************************************************************/

// JDDate returns the Julian date of observation, if the source supplied one.
func (s *Star) JDDate() (float64, bool) { return s.Get(s.wk.JDDate).Float() }

/*****************************************************************************************************************/

// SetJDDate sets the Julian date of observation.
func (s *Star) SetJDDate(jd float64, origin Origin) {
	s.SetFloat(s.wk.JDDate, jd, origin, ConfidenceHigh, true)
}

/*****************************************************************************************************************/

// ClearJDDate removes the Julian date, mirroring ClearTargetID.
func (s *Star) ClearJDDate() { s.ClearValue(s.wk.JDDate) }

/*****************************************************************************************************************/

// GroupSize returns the number of mates found within the mate radius during
// matching (0 if never set).
func (s *Star) GroupSize() int64 {
	v, _ := s.Get(s.wk.GroupSize).Int()

	return v
}

/*****************************************************************************************************************/

// RaiseGroupSize sets GroupSize to max(current, n), per spec §4.5.
func (s *Star) RaiseGroupSize(n int64) {
	if n > s.GroupSize() {
		s.SetInt(s.wk.GroupSize, n, OriginComputed, ConfidenceHigh, true)
	}
}

/*****************************************************************************************************************/

// XMLog returns the accumulated cross-match diagnostic log.
func (s *Star) XMLog() string {
	v, _ := s.Get(s.wk.XMLog).String()

	return v
}

/*****************************************************************************************************************/

// AppendXMLog appends a short diagnostic line to the star's xm_log property.
func (s *Star) AppendXMLog(line string) {
	cur := s.XMLog()

	if cur != "" {
		cur += "; "
	}

	cur += line

	s.SetString(s.wk.XMLog, cur, OriginComputed, ConfidenceHigh, true)
}

/*****************************************************************************************************************/

// XMMainFlag returns the OR of match-type flags raised by main catalogs.
func (s *Star) XMMainFlag() int64 {
	v, _ := s.Get(s.wk.XMMainFlag).Int()

	return v
}

/*****************************************************************************************************************/

// XMAllFlag returns the OR of match-type flags raised by all catalogs.
func (s *Star) XMAllFlag() int64 {
	v, _ := s.Get(s.wk.XMAllFlag).Int()

	return v
}

/*****************************************************************************************************************/

// OrXMFlags ORs bit into xm_all_flag always, and into xm_main_flag when main
// is true (spec §4.4.4: "flags are ORed into the reference star's
// xm_main_flag (main catalogs) and xm_all_flag").
func (s *Star) OrXMFlags(bit int64, main bool) {
	s.SetInt(s.wk.XMAllFlag, s.XMAllFlag()|bit, OriginComputed, ConfidenceHigh, true)

	if main {
		s.SetInt(s.wk.XMMainFlag, s.XMMainFlag()|bit, OriginComputed, ConfidenceHigh, true)
	}
}

/*****************************************************************************************************************/

// Clone deep-copies the star's property array (but not its WellKnown
// pointer, which is always shared process-wide).
func (s *Star) Clone() *Star {
	out := &Star{
		wk:    s.wk,
		props: make([]Property, len(s.props)),
	}

	copy(out.props, s.props)

	return out
}
