/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package vobserr defines the sentinel error kinds of the Core API.
// internal/service returns them as the Kind of its Error type, next to the
// underlying error; callers compare with errors.Is. ErrBadData and
// ErrIndexCorruption are declared here but no package returns them.
package vobserr

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

var (
	// ErrInvalidRequest indicates malformed geometry, an unknown band, or a
	// negative radius in the incoming request.
	ErrInvalidRequest = errors.New("vobscore: invalid request")

	// ErrUnknownCatalog indicates a scenario entry references a catalog_id
	// that has no registered CatalogMeta.
	ErrUnknownCatalog = errors.New("vobscore: unknown catalog")

	// ErrFetchFailure is surfaced from a CatalogClient: network error, parse
	// error, or a remote error message.
	ErrFetchFailure = errors.New("vobscore: catalog fetch failed")

	// ErrBadData indicates a required coordinate is missing on an incoming
	// star; the row is skipped, never fatal to the scenario.
	ErrBadData = errors.New("vobscore: bad star data")

	// ErrIndexCorruption indicates a StarList invariant was violated, e.g.
	// RA/DEC cleared while the list's declination index was prepared. Fatal.
	ErrIndexCorruption = errors.New("vobscore: star list index corruption")

	// ErrCancelled indicates cooperative cancellation observed between
	// scenario entries.
	ErrCancelled = errors.New("vobscore: cancelled")
)
