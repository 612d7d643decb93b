/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/criteria"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/scenario"
)

/*****************************************************************************************************************/

// BrightV returns the default calibrator-search scenario: seed from ASCC,
// then enrich with a chain of update-only entries, each tuned to its
// source's positional resolution. Entry ordering and the seed/enrich shape
// are grounded on
// original_source/SearchCal/sclsvr/src/sclsvrSCENARIO_BRIGHT_V.cpp.
func BrightV(wk *registry.WellKnown) *scenario.Scenario {
	known := catalog.WellKnownMeta(wk.Registry.Len())

	radec := func(arcsec float64) criteria.List {
		return criteria.List{criteria.RaDecRadius(arcsec / 3600.0)}
	}

	s := scenario.New("bright_v")

	s.Add(scenario.Entry{
		CatalogID:    catalog.ASCC,
		CatalogMeta:  known[catalog.ASCC],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionClearMerge,
		Criteria:     radec(1.5),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.TwoMASS,
		CatalogMeta:  known[catalog.TwoMASS],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(3.5),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.DENIS,
		CatalogMeta:  known[catalog.DENIS],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(1.5),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.PhotometryLibrary,
		CatalogMeta:  known[catalog.PhotometryLibrary],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(3.0),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.CIO,
		CatalogMeta:  known[catalog.CIO],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(1.5),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.BSC,
		CatalogMeta:  known[catalog.BSC],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(2.0),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.WDS,
		CatalogMeta:  known[catalog.WDS],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(2.0),
	})

	s.Add(scenario.Entry{
		CatalogID:    catalog.AKARI,
		CatalogMeta:  known[catalog.AKARI],
		QueryOptions: catalog.Query{Geometry: catalog.Cone(1.0)},
		MergeAction:  scenario.ActionUpdateOnly,
		Criteria:     radec(1.5),
	})

	return s
}
