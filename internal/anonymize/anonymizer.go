package anonymize

// Anonymizer is the public façade: an ordered list of detectors feeding the
// overlap resolver and the mask engine. It is stateless per call and safe
// for concurrent use as long as its Recognizer is.
type Anonymizer struct {
	detectors []Detector
}

// New builds an Anonymizer with the given recognizer handle and an
// allow-list of entity type names. A nil or empty allow-list enables every
// supported type.
func New(rec Recognizer, enabled []string) *Anonymizer {
	allow := make(map[EntityType]bool)
	if len(enabled) == 0 {
		for _, t := range AllEntityTypes() {
			allow[t] = true
		}
	} else {
		for _, name := range enabled {
			allow[EntityType(name)] = true
		}
	}

	var detectors []Detector
	addIf := func(t EntityType, d Detector) {
		if allow[t] {
			detectors = append(detectors, d)
		}
	}
	addIf(EntityPersonName, newNameDetector(rec))
	addIf(EntityPhone, newPhoneDetector())
	addIf(EntityEmail, newEmailDetector())
	addIf(EntityPassport, newPassportDetector())
	addIf(EntityInsurance, newInsuranceDetector())
	addIf(EntityTaxIDPerson, newPersonTaxIDDetector())
	addIf(EntityTaxIDOrg, newOrgTaxIDDetector())
	addIf(EntityRegistration, newRegistrationDetector())
	addIf(EntityTaxRegCode, newTaxRegCodeDetector())
	addIf(EntitySoleProprietor, newSoleProprietorDetector())
	addIf(EntityBankAccount, newBankAccountDetector())

	return &Anonymizer{detectors: detectors}
}

// Anonymize masks all detected personal data in text. It never fails:
// malformed or empty input yields the text unchanged with empty maps.
func (a *Anonymizer) Anonymize(text string) AnonymizedText {
	if text == "" {
		return AnonymizedText{
			Text:         text,
			Replacements: make(map[string]string),
			Stats:        make(map[EntityType]int),
		}
	}

	var candidates []Span
	for _, d := range a.detectors {
		candidates = append(candidates, d.Detect(text)...)
	}

	resolved := ResolveOverlaps(candidates)
	return applyMasks(text, resolved)
}
