/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package star implements the fixed-schema property bag (C2 Property, Star)
// and the ordered star collection (C3 StarList) the rest of the core fuses
// and filters.
package star

/*****************************************************************************************************************/

import "github.com/JMMC-OpenDev/vobscore/pkg/registry"

/*****************************************************************************************************************/

// Origin identifies where a Property's value came from: either a real
// catalog id (assigned by the catalog package, starting at CatalogBase) or
// one of the three reserved values below.
type Origin int32

/*****************************************************************************************************************/

const (
	// OriginNone means the property carries no value; the zero value of
	// Origin, matching an unset Property's zero-valued origin field.
	OriginNone Origin = iota

	// OriginComputed marks a value derived by the (out-of-scope) astronomical
	// computation kernel rather than copied from any single catalog.
	OriginComputed

	// OriginMixed marks a value assembled from more than one catalog (e.g.
	// after repeated Update calls raised its confidence without a single
	// attributable source).
	OriginMixed

	// CatalogBase is the first Origin value real catalog ids may use; kept
	// here (not in pkg/catalog) so star does not import catalog and create a
	// cycle, since catalog imports star for StarList.
	CatalogBase Origin = 10
)

/*****************************************************************************************************************/

// Confidence is the reliability grade attached to a set Property.
type Confidence int8

/*****************************************************************************************************************/

const (
	ConfidenceNo Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

/*****************************************************************************************************************/

func (c Confidence) String() string {
	switch c {
	case ConfidenceNo:
		return "NO"
	case ConfidenceLow:
		return "LOW"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

/*****************************************************************************************************************/

// Property is one slot of a Star's fixed-length property array: a typed
// value with provenance. The invariant from spec §3.1 holds by construction:
// when set is false, origin/err/confidence are meaningless and Confidence()
// reports ConfidenceNo regardless of the stored field.
type Property struct {
	set bool

	kind registry.Type

	str string
	i64 int64
	f64 float64

	hasErr bool
	err    float64

	origin     Origin
	confidence Confidence
}

/*****************************************************************************************************************/

// IsSet reports whether this property carries a value.
func (p Property) IsSet() bool { return p.set }

/*****************************************************************************************************************/

// Origin returns the property's source catalog, or OriginNone if unset.
func (p Property) Origin() Origin {
	if !p.set {
		return OriginNone
	}

	return p.origin
}

/*****************************************************************************************************************/

// Confidence returns the property's confidence grade, forced to
// ConfidenceNo when the property is unset (spec §3.1 invariant).
func (p Property) Confidence() Confidence {
	if !p.set {
		return ConfidenceNo
	}

	return p.confidence
}

/*****************************************************************************************************************/

// Error returns the measurement error and whether one was recorded; always
// (0, false) when the property is unset.
func (p Property) Error() (float64, bool) {
	if !p.set {
		return 0, false
	}

	return p.err, p.hasErr
}

/*****************************************************************************************************************/

// Type returns the property's declared scalar kind.
func (p Property) Type() registry.Type { return p.kind }

/*****************************************************************************************************************/

// String returns the property's string value and whether it is both set and
// string-typed.
func (p Property) String() (string, bool) {
	if !p.set || p.kind != registry.TypeString {
		return "", false
	}

	return p.str, true
}

/*****************************************************************************************************************/

// Int returns the property's integer value and whether it is both set and
// int/long-typed.
func (p Property) Int() (int64, bool) {
	if !p.set || (p.kind != registry.TypeInt && p.kind != registry.TypeLong) {
		return 0, false
	}

	return p.i64, true
}

/*****************************************************************************************************************/

// Bool returns the property's boolean value (stored in the integer slot)
// and whether it is both set and bool-typed.
func (p Property) Bool() (bool, bool) {
	if !p.set || p.kind != registry.TypeBool {
		return false, false
	}

	return p.i64 != 0, true
}

/*****************************************************************************************************************/

// Float returns the property's double value and whether it is both set and
// double-typed.
func (p Property) Float() (float64, bool) {
	if !p.set || p.kind != registry.TypeDouble {
		return 0, false
	}

	return p.f64, true
}

/*****************************************************************************************************************/

func stringProperty(v string, origin Origin, confidence Confidence) Property {
	return Property{set: true, kind: registry.TypeString, str: v, origin: origin, confidence: confidence}
}

/*****************************************************************************************************************/

func intProperty(v int64, origin Origin, confidence Confidence) Property {
	return Property{set: true, kind: registry.TypeInt, i64: v, origin: origin, confidence: confidence}
}

/*****************************************************************************************************************/

func boolProperty(v bool, origin Origin, confidence Confidence) Property {
	i := int64(0)
	if v {
		i = 1
	}

	return Property{set: true, kind: registry.TypeBool, i64: i, origin: origin, confidence: confidence}
}

/*****************************************************************************************************************/

func floatProperty(v float64, origin Origin, confidence Confidence) Property {
	return Property{set: true, kind: registry.TypeDouble, f64: v, origin: origin, confidence: confidence}
}

/*****************************************************************************************************************/

// WithError returns a copy of p carrying the given measurement error.
func (p Property) WithError(errVal float64) Property {
	p.hasErr = true
	p.err = errVal

	return p
}
