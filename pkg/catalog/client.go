/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package catalog

/*****************************************************************************************************************/

import (
	"context"

	"github.com/JMMC-OpenDev/vobscore/pkg/star"
)

/*****************************************************************************************************************/

// GeometryKind discriminates a Query's search region.
type GeometryKind int

/*****************************************************************************************************************/

const (
	GeometryCone GeometryKind = iota
	GeometryBox
)

/*****************************************************************************************************************/

// Geometry is the search-region half of a Query (spec §6.1).
type Geometry struct {
	Kind GeometryKind

	// GeometryCone
	RadiusDeg float64

	// GeometryBox
	DRaDeg  float64
	DDecDeg float64
}

/*****************************************************************************************************************/

// Cone returns a cone-search geometry of the given radius in degrees.
func Cone(radiusDeg float64) Geometry { return Geometry{Kind: GeometryCone, RadiusDeg: radiusDeg} }

/*****************************************************************************************************************/

// Box returns a box-search geometry of the given half-widths in degrees.
func Box(dRaDeg, dDecDeg float64) Geometry {
	return Geometry{Kind: GeometryBox, DRaDeg: dRaDeg, DDecDeg: dDecDeg}
}

/*****************************************************************************************************************/

// Query is the request shape a CatalogClient or CatalogLoader consumes
// (spec §6.1).
type Query struct {
	CenterRA  float64
	CenterDec float64
	Geometry  Geometry

	Band            string
	MagMin, MagMax  float64

	// SeedList, when non-nil, lets a catalog that supports targeted joins
	// query per-row instead of by a single cone/box.
	SeedList *star.List

	// RawOptions is an opaque, catalog-specific string (e.g. additional
	// ADQL predicates) passed through uninterpreted by the core.
	RawOptions string
}

/*****************************************************************************************************************/

// CatalogClient is the external remote-fetch capability the core consumes
// (spec §6.1). Implementations are responsible for tagging every returned
// star's targetId (to the query's seed identifier, when SeedList is used)
// and jdDate (when the source supplies an observation epoch).
type CatalogClient interface {
	Fetch(ctx context.Context, catalogID star.Origin, query Query) (*star.List, error)
}

/*****************************************************************************************************************/

// CatalogLoader is the external local-file capability the core consumes
// (spec §6.2): loading a line-per-star local catalog text file, re-reading
// it only when its mtime has advanced since the last Load.
type CatalogLoader interface {
	Load(path string) (*star.List, error)
}

/*****************************************************************************************************************/

// AstroKernel is the external pure-computation capability the core consumes
// (spec §6.3). Only AngularDistance is part of this core's contract
// surface; spectral-type parsing and diameter/extinction computation belong
// to downstream post-processing.
type AstroKernel interface {
	AngularDistance(ra1, dec1, ra2, dec2 float64) float64
}
