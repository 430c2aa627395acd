// Package anonymize detects spans of personal data in document text,
// resolves overlapping detections, replaces them with stable numbered masks,
// and supports exact reversal via the returned replacement map.
//
// Detection is deliberately conservative: masking too much is cheaper than
// leaking personal data to an external model. Detectors never fail on
// malformed or empty input; no matches means the text comes back unchanged.
package anonymize

// EntityType tags a detected span with the category of personal data.
// Each type has its own mask-numbering sequence.
type EntityType string

const (
	EntityPersonName     EntityType = "PERSON_NAME"
	EntityPhone          EntityType = "PHONE"
	EntityEmail          EntityType = "EMAIL"
	EntityPassport       EntityType = "PASSPORT"
	EntityInsurance      EntityType = "INSURANCE_NUMBER"
	EntityTaxIDPerson    EntityType = "TAX_ID_PERSON"
	EntityTaxIDOrg       EntityType = "TAX_ID_ORG"
	EntityRegistration   EntityType = "REGISTRATION_NUMBER"
	EntityTaxRegCode     EntityType = "TAX_REG_CODE"
	EntitySoleProprietor EntityType = "SOLE_PROPRIETOR"
	EntityBankAccount    EntityType = "BANK_ACCOUNT"
)

// AllEntityTypes lists every supported category, in detector order.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityPersonName, EntityPhone, EntityEmail, EntityPassport,
		EntityInsurance, EntityTaxIDPerson, EntityTaxIDOrg,
		EntityRegistration, EntityTaxRegCode, EntitySoleProprietor,
		EntityBankAccount,
	}
}

// Span is a half-open byte range [Start, End) into the original text,
// satisfying text[Start:End] == Text.
type Span struct {
	Start int
	End   int
	Type  EntityType
	Text  string
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two ranges intersect.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && s.End > o.Start
}

// overlapsAny reports whether s intersects any span in accepted.
func overlapsAny(s Span, accepted []Span) bool {
	for _, a := range accepted {
		if s.Overlaps(a) {
			return true
		}
	}
	return false
}

// Detector produces candidate spans from raw text. Detectors are independent
// and side-effect-free; their outputs are pooled before overlap resolution.
type Detector interface {
	Detect(text string) []Span
}
