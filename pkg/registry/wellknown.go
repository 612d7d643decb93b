/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package registry

/*****************************************************************************************************************/

// WellKnown holds the meta_ids of the properties every component in this
// core relies on by convention: sky position, proper motion, cross-match
// bookkeeping and a representative set of photometric bands. It is built
// once by NewWellKnown and then Sealed, matching the spec's "registry is
// populated once at startup; lookups are by integer index".
type WellKnown struct {
	Registry *Registry

	RA  ID
	Dec ID

	PMRA  ID
	PMDec ID

	TargetID ID
	JDDate   ID

	GroupSize  ID
	XMLog      ID
	XMMainFlag ID
	XMAllFlag  ID

	// Designation is the star's catalog-assigned identifier/name, used by
	// the local blacklist filter and for diagnostics.
	Designation ID

	Parallax ID

	// Representative photometric bands, named after the catalogs most
	// commonly contributing them in the original scenarios (Johnson V/B,
	// GAIA G, 2MASS J/H/K).
	MagV ID
	MagB ID
	MagG ID
	MagJ ID
	MagH ID
	MagK ID

	// DiameterOK is the production-only quality flag gating DiameterOKFilter;
	// the diameter value itself is computed by the out-of-scope AstroKernel
	// and only stored here as an opaque double.
	Diameter   ID
	DiameterOK ID
}

/*****************************************************************************************************************/

// NewWellKnown builds and seals a Registry pre-populated with the
// properties this core's components address by name. The registry is
// sealed before NewWellKnown returns, so no further properties can be
// registered on it.
func NewWellKnown() *WellKnown {
	r := New()

	w := &WellKnown{Registry: r}

	w.RA = r.MustRegister("ra", "deg", TypeDouble, "right ascension (ICRS)")
	w.Dec = r.MustRegister("dec", "deg", TypeDouble, "declination (ICRS)")

	w.PMRA = r.MustRegister("pmra", "mas/yr", TypeDouble, "proper motion in RA (μα*)")
	w.PMDec = r.MustRegister("pmdec", "mas/yr", TypeDouble, "proper motion in Dec")

	w.TargetID = r.MustRegister("target_id", "", TypeString, "query-center identifier attached by a CatalogClient")
	w.JDDate = r.MustRegister("jd_date", "d", TypeDouble, "Julian date of observation, when supplied by the source")

	w.GroupSize = r.MustRegister("group_size", "", TypeInt, "number of mates found within the mate radius")
	w.XMLog = r.MustRegister("xm_log", "", TypeString, "short per-catalog cross-match diagnostic log")
	w.XMMainFlag = r.MustRegister("xm_main_flag", "", TypeLong, "OR of match-type flags raised by main catalogs")
	w.XMAllFlag = r.MustRegister("xm_all_flag", "", TypeLong, "OR of match-type flags raised by all catalogs")

	w.Designation = r.MustRegister("designation", "", TypeString, "catalog-assigned star identifier or name")

	w.Parallax = r.MustRegister("parallax", "mas", TypeDouble, "trigonometric parallax")

	w.MagV = r.MustRegister("mag_v", "mag", TypeDouble, "Johnson V magnitude")
	w.MagB = r.MustRegister("mag_b", "mag", TypeDouble, "Johnson B magnitude")
	w.MagG = r.MustRegister("mag_g", "mag", TypeDouble, "GAIA G magnitude")
	w.MagJ = r.MustRegister("mag_j", "mag", TypeDouble, "2MASS J magnitude")
	w.MagH = r.MustRegister("mag_h", "mag", TypeDouble, "2MASS H magnitude")
	w.MagK = r.MustRegister("mag_k", "mag", TypeDouble, "2MASS K magnitude")

	w.Diameter = r.MustRegister("diameter", "mas", TypeDouble, "estimated limb-darkened angular diameter")
	w.DiameterOK = r.MustRegister("diameter_ok", "", TypeBool, "diameter quality flag (production only)")

	r.Seal()

	return w
}
