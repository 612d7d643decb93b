/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package service implements the Core API (spec §6.4) and the concurrency
// model of spec §5: one sequential scenario execution per request, with
// multiple requests able to run in parallel threads sharing only the
// read-only property registry and a process-wide parse critical section.
package service

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/JMMC-OpenDev/vobscore/pkg/catalog"
	"github.com/JMMC-OpenDev/vobscore/pkg/vobserr"
)

/*****************************************************************************************************************/

// Error is a Core API error wrapping one of vobserr's sentinel kinds
// (spec §7); callers compare with errors.Is against the vobserr sentinels
// rather than against a parallel enum.
type Error struct {
	Kind error // one of vobserr.Err*
	Err  error
}

/*****************************************************************************************************************/

func (e *Error) Error() string { return fmt.Sprintf("%v: %v", e.Kind, e.Err) }

func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

/*****************************************************************************************************************/

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

/*****************************************************************************************************************/

// Request carries the caller's query parameters for one RunScenario call
// (spec §6.4: "request carries the user's ra/dec, geometry, band, magnitude
// range, and output flags").
type Request struct {
	RA, Dec  float64
	Geometry catalog.Geometry
	Band     string
	MagMin   float64
	MagMax   float64

	// IncludeFiltered, when true, skips every Entry's PostFilter so the
	// caller can inspect an unfiltered working list (an output flag per
	// spec §6.4).
	IncludeFiltered bool
}

/*****************************************************************************************************************/

func (r Request) validate() error {
	if r.Dec < -90 || r.Dec > 90 {
		return newError(vobserr.ErrInvalidRequest, "dec %v out of range [-90,90]", r.Dec)
	}

	switch r.Geometry.Kind {
	case catalog.GeometryCone:
		if r.Geometry.RadiusDeg <= 0 {
			return newError(vobserr.ErrInvalidRequest, "cone radius must be positive, got %v", r.Geometry.RadiusDeg)
		}
	case catalog.GeometryBox:
		if r.Geometry.DRaDeg <= 0 || r.Geometry.DDecDeg <= 0 {
			return newError(vobserr.ErrInvalidRequest, "box half-widths must be positive, got (%v,%v)", r.Geometry.DRaDeg, r.Geometry.DDecDeg)
		}
	default:
		return newError(vobserr.ErrInvalidRequest, "unknown geometry kind %v", r.Geometry.Kind)
	}

	return nil
}
