/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package catalog describes the external catalog surface: per-catalog
// metadata (spec §3.6), the CatalogClient/CatalogLoader/AstroKernel
// contracts a caller must supply (spec §6.1-§6.3), and a concrete TAP-backed
// CatalogClient implementation.
package catalog

/*****************************************************************************************************************/

import (
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// MatchMode governs how the Merger's path A treats a catalog's candidates
// (spec §3.6, §4.5).
type MatchMode int

/*****************************************************************************************************************/

const (
	// MatchBest runs the full ambiguity/symmetry check and keeps only the
	// single best match per reference star.
	MatchBest MatchMode = iota

	// MatchAll applies every passing candidate row to its reference star
	// with no symmetry check, for catalogs flagged multiple_rows (e.g.
	// photometry libraries, double-star catalogs).
	MatchAll
)

/*****************************************************************************************************************/

// Meta is a catalog's cross-match and merge tuning (spec §3.6).
type Meta struct {
	CatalogID   star.Origin
	Name        string
	PrecisionAs float64 // effective positional resolution, in arcsec

	EpochFrom float64
	EpochTo   float64

	SingleEpoch  bool
	MultipleRows bool
	PrecessEpoch bool

	// OverwriteCoordinates, when true, instructs the Merger to clear the
	// reference star's RA/Dec before Update so a stale index entry is never
	// left pointing at superseded coordinates (spec §4.5, "Catalogs flagged
	// for coordinate overwrite").
	OverwriteCoordinates bool

	OverwriteMask star.OverwriteMask
	MatchMode     MatchMode
}

/*****************************************************************************************************************/

// Catalog ids, reserved starting at star.CatalogBase per pkg/star's
// Origin numbering scheme.
const (
	ASCC star.Origin = star.CatalogBase + iota
	BSC
	DENIS
	TwoMASS
	AKARI
	USNO
	CIO
	WDS
	PhotometryLibrary
)

/*****************************************************************************************************************/

// WellKnownMeta returns the representative metadata table used by the
// example scenarios (SPEC_FULL.md "Supplemented features"), grounded on
// original_source/SearchCal/vobs/src/vobsCATALOG_*.cpp's per-catalog tuning.
func WellKnownMeta(registrySize int) map[star.Origin]Meta {
	return map[star.Origin]Meta{
		ASCC: {
			CatalogID: ASCC, Name: "I/280 ASCC-2.5",
			PrecisionAs: 1.5, EpochFrom: 1991.25, EpochTo: 1991.25,
			SingleEpoch: true, PrecessEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		BSC: {
			CatalogID: BSC, Name: "V/50 Bright Star Catalogue",
			PrecisionAs: 1.5, EpochFrom: 2000.0, EpochTo: 2000.0,
			SingleEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		DENIS: {
			CatalogID: DENIS, Name: "B/denis DENIS",
			PrecisionAs: 3.0, EpochFrom: 1996.0, EpochTo: 2002.0,
			PrecessEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		TwoMASS: {
			CatalogID: TwoMASS, Name: "II/246 2MASS",
			PrecisionAs: 3.5, EpochFrom: 1997.0, EpochTo: 2001.0,
			PrecessEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		AKARI: {
			CatalogID: AKARI, Name: "II/297 AKARI/IRC",
			PrecisionAs: 3.0, EpochFrom: 2006.0, EpochTo: 2007.0,
			PrecessEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		USNO: {
			CatalogID: USNO, Name: "I/284 USNO-B1.0",
			PrecisionAs: 3.0, EpochFrom: 1950.0, EpochTo: 2000.0,
			PrecessEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		CIO: {
			CatalogID: CIO, Name: "II/225 CIO Catalogue",
			PrecisionAs: 3.0, SingleEpoch: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchBest,
		},
		WDS: {
			CatalogID: WDS, Name: "B/wds Washington Double Star Catalog",
			PrecisionAs: 2.0, SingleEpoch: true, MultipleRows: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchAll,
		},
		PhotometryLibrary: {
			CatalogID: PhotometryLibrary, Name: "II/7A UBVRIJKLMNH photometric library",
			PrecisionAs: 3.0, SingleEpoch: true, MultipleRows: true,
			OverwriteMask: star.NewOverwriteMask(registrySize),
			MatchMode:     MatchAll,
		},
	}
}
