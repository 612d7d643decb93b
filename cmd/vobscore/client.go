/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/registry"
	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// coneQuery is the ADQL template shared by the VizieR TAP-backed catalogs
// this front end demonstrates against, adapted from the teacher's
// GAIA/SIMBAD ADQL templates (pkg/catalog/gaia.go, pkg/catalog/simbad.go).
const coneQuery = `
SELECT TOP {{.Limit}} ra, dec, pmra, pmdec, designation, mag_v
FROM catalog
WHERE 1=CONTAINS(
  POINT('ICRS', ra, dec),
  CIRCLE('ICRS', {{.RA}}, {{.Dec}}, {{.Radius}})
)
`

/*****************************************************************************************************************/

// MultiCatalogClient dispatches Fetch to one TapCatalogClient per catalog_id
// (each VizieR table has its own column layout), generalizing the teacher's
// per-catalog service clients into a single router (spec §6.1).
type MultiCatalogClient struct {
	byCatalog map[star.Origin]*catalog.TapCatalogClient
}

/*****************************************************************************************************************/

func (c *MultiCatalogClient) Fetch(ctx context.Context, catalogID star.Origin, query catalog.Query) (*star.List, error) {
	client, ok := c.byCatalog[catalogID]
	if !ok {
		return nil, fmt.Errorf("cmd: no CatalogClient registered for catalog_id %d", catalogID)
	}

	return client.Fetch(ctx, catalogID, query)
}

/*****************************************************************************************************************/

// NewMultiCatalogClient builds a demonstration CatalogClient pointed at a
// VizieR TAP endpoint for every catalog the default scenario references.
// This is a thin front-end wiring, not a production VO client: real column
// layouts differ per table and would need their own Column mapping, but the
// shape (one TapCatalogClient per source, ADQL template + column map) is
// the one the core's CatalogClient contract expects.
func NewMultiCatalogClient(wk *registry.WellKnown, serviceURL string, timeout time.Duration) (*MultiCatalogClient, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("cmd: parse TAP service url: %w", err)
	}

	columns := []catalog.Column{
		{Index: 0, ID: wk.RA, Kind: catalog.ColumnFloat},
		{Index: 1, ID: wk.Dec, Kind: catalog.ColumnFloat},
		{Index: 2, ID: wk.PMRA, Kind: catalog.ColumnFloat},
		{Index: 3, ID: wk.PMDec, Kind: catalog.ColumnFloat},
		{Index: 4, ID: wk.Designation, Kind: catalog.ColumnString},
		{Index: 5, ID: wk.MagV, Kind: catalog.ColumnFloat},
	}

	byCatalog := make(map[star.Origin]*catalog.TapCatalogClient)

	for _, catalogID := range []star.Origin{
		catalog.ASCC, catalog.BSC, catalog.DENIS, catalog.TwoMASS,
		catalog.AKARI, catalog.USNO, catalog.CIO, catalog.WDS, catalog.PhotometryLibrary,
	} {
		byCatalog[catalogID] = catalog.NewTapCatalogClient(*u, timeout, nil, coneQuery, columns, 200, wk)
	}

	return &MultiCatalogClient{byCatalog: byCatalog}, nil
}
