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

func newTestStar(t *testing.T) (*Star, *registry.WellKnown) {
	t.Helper()

	wk := registry.NewWellKnown()

	return New(wk), wk
}

/*****************************************************************************************************************/

func TestStarGetSetRoundTrip(t *testing.T) {
	s, wk := newTestStar(t)

	if s.IsSet(wk.MagV) {
		t.Fatal("expected mag_v to be unset on a new star")
	}

	if ok := s.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false); !ok {
		t.Fatal("expected first Set to succeed")
	}

	v, ok := s.Get(wk.MagV).Float()
	if !ok || v != 6.0 {
		t.Errorf("got (%v, %v); want (6.0, true)", v, ok)
	}
}

/*****************************************************************************************************************/

func TestStarSetWithoutOverwriteIsNoop(t *testing.T) {
	s, wk := newTestStar(t)

	s.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)

	if ok := s.SetFloat(wk.MagV, 7.0, CatalogBase+1, ConfidenceLow, false); ok {
		t.Fatal("expected Set without overwrite to fail when already set")
	}

	v, _ := s.Get(wk.MagV).Float()
	if v != 6.0 {
		t.Errorf("value changed despite overwrite=false: got %v", v)
	}
}

/*****************************************************************************************************************/

func TestStarSetWithOverwrite(t *testing.T) {
	s, wk := newTestStar(t)

	s.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)
	s.SetFloat(wk.MagV, 7.0, CatalogBase+1, ConfidenceLow, true)

	v, _ := s.Get(wk.MagV).Float()
	if v != 7.0 {
		t.Errorf("got %v; want 7.0", v)
	}
}

/*****************************************************************************************************************/

func TestUnsetPropertyReportsNoConfidence(t *testing.T) {
	s, wk := newTestStar(t)

	if c := s.Get(wk.MagV).Confidence(); c != ConfidenceNo {
		t.Errorf("unset property confidence = %v; want NO", c)
	}
}

/*****************************************************************************************************************/

func TestRaDecInvariant(t *testing.T) {
	s, _ := newTestStar(t)

	if err := s.SetRaDec(10, 91, CatalogBase, ConfidenceHigh, false); err == nil {
		t.Error("expected an error for dec > 90")
	}

	if err := s.SetRaDec(370, 10, CatalogBase, ConfidenceHigh, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ra, _, _ := s.GetRaDec()
	if ra != 10 {
		t.Errorf("RA not normalized: got %v; want 10", ra)
	}
}

/*****************************************************************************************************************/

func TestGetRaDecFailsWhenUnset(t *testing.T) {
	s, _ := newTestStar(t)

	if _, _, err := s.GetRaDec(); err == nil {
		t.Error("expected GetRaDec to fail on a star with no position set")
	}
}

/*****************************************************************************************************************/

func TestHasPmRequiresBothComponents(t *testing.T) {
	s, wk := newTestStar(t)

	s.SetFloat(wk.PMRA, 10, CatalogBase, ConfidenceHigh, false)

	if s.HasPm() {
		t.Error("expected HasPm to be false with only pmRA set")
	}

	s.SetFloat(wk.PMDec, -5, CatalogBase, ConfidenceHigh, false)

	if !s.HasPm() {
		t.Error("expected HasPm to be true once both components are set")
	}
}

/*****************************************************************************************************************/

func TestCorrectRaDecEpochRoundTrip(t *testing.T) {
	s, _ := newTestStar(t)

	if err := s.SetRaDec(10, 20, CatalogBase, ConfidenceHigh, false); err != nil {
		t.Fatal(err)
	}

	if err := s.CorrectRaDecEpoch(50, -30, 1991.25, 2016.0); err != nil {
		t.Fatal(err)
	}

	if err := s.CorrectRaDecEpoch(50, -30, 2016.0, 1991.25); err != nil {
		t.Fatal(err)
	}

	ra, dec, _ := s.GetRaDec()

	if diff := ra - 10; diff > 1e-7 || diff < -1e-7 {
		t.Errorf("RA did not round-trip: got %v", ra)
	}

	if diff := dec - 20; diff > 1e-7 || diff < -1e-7 {
		t.Errorf("Dec did not round-trip: got %v", dec)
	}
}

/*****************************************************************************************************************/

func TestOrXMFlagsMainVsAll(t *testing.T) {
	s, _ := newTestStar(t)

	s.OrXMFlags(0x04, false)

	if s.XMMainFlag() != 0 {
		t.Errorf("xm_main_flag changed for a non-main catalog: %v", s.XMMainFlag())
	}

	if s.XMAllFlag() != 0x04 {
		t.Errorf("xm_all_flag = %v; want 0x04", s.XMAllFlag())
	}

	s.OrXMFlags(0x10, true)

	if s.XMMainFlag() != 0x10 {
		t.Errorf("xm_main_flag = %v; want 0x10", s.XMMainFlag())
	}

	if s.XMAllFlag() != 0x14 {
		t.Errorf("xm_all_flag = %v; want 0x14", s.XMAllFlag())
	}
}

/*****************************************************************************************************************/

func TestRaiseGroupSizeNeverDecreases(t *testing.T) {
	s, _ := newTestStar(t)

	s.RaiseGroupSize(3)
	s.RaiseGroupSize(1)

	if s.GroupSize() != 3 {
		t.Errorf("group_size = %v; want 3 (never decreases)", s.GroupSize())
	}

	s.RaiseGroupSize(5)

	if s.GroupSize() != 5 {
		t.Errorf("group_size = %v; want 5", s.GroupSize())
	}
}

/*****************************************************************************************************************/

func TestClonesAreIndependent(t *testing.T) {
	s, wk := newTestStar(t)

	s.SetFloat(wk.MagV, 6.0, CatalogBase, ConfidenceHigh, false)

	clone := s.Clone()
	clone.SetFloat(wk.MagV, 9.0, CatalogBase, ConfidenceHigh, true)

	v, _ := s.Get(wk.MagV).Float()
	if v != 6.0 {
		t.Errorf("mutating a clone affected the original: got %v", v)
	}
}
