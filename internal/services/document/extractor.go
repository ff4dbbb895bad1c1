package document

import (
	"strings"
	"unicode"
)

type service struct {
	penalties Penalties
}

// NewService creates a document analysis service
func NewService(penalties Penalties) Service {
	return &service{penalties: penalties}
}

// Extractable reports whether a field table exists for the type
func (s *service) Extractable(documentType string) bool {
	switch documentType {
	case TypePANCard, TypeAadhaarCard:
		return true
	default:
		return false
	}
}

// ExtractFields pulls structured fields from the transcript and scores
// the result. Unmatched fields are simply absent; only asking for a
// type with no field table is an error. The returned confidence is
// independent of OCR confidence; callers combine the two by taking the
// minimum.
func (s *service) ExtractFields(rawText, documentType string) (*Extraction, error) {
	switch documentType {
	case TypePANCard:
		return s.extractPAN(rawText), nil
	case TypeAadhaarCard:
		return s.extractAadhaar(rawText), nil
	default:
		return nil, ErrUnsupportedType
	}
}

func (s *service) extractPAN(rawText string) *Extraction {
	ex := &Extraction{
		Fields:     make(map[string]string),
		Confidence: 100,
		Issues:     []string{},
	}

	if m := panPattern.FindStringSubmatch(rawText); m != nil {
		ex.Fields[FieldPANNumber] = m[1]
		ex.FullID = m[1]
	} else if hasPANCandidate(rawText) {
		ex.penalize(s.penalties.MalformedID, "PAN number present but malformed")
	} else {
		ex.penalize(s.penalties.MissingID, "PAN number not found")
	}

	if !panHeaderPattern.MatchString(rawText) {
		ex.penalize(s.penalties.MissingHeader, "income tax department header not found")
	}

	if name := extractName(rawText, TypePANCard); name != "" {
		ex.Fields[FieldName] = name
	} else {
		ex.penalize(s.penalties.ImplausibleName, "holder name not recognized")
	}

	return ex
}

func (s *service) extractAadhaar(rawText string) *Extraction {
	ex := &Extraction{
		Fields:     make(map[string]string),
		Confidence: 100,
		Issues:     []string{},
	}

	if m := aadhaarPattern.FindStringSubmatch(rawText); m != nil {
		digits := aadhaarSeparators.ReplaceAllString(m[1], "")
		if aadhaarStrict.MatchString(digits) {
			ex.FullID = digits
			ex.Fields[FieldAadhaarMasked] = MaskAadhaar(digits)
		} else {
			ex.penalize(s.penalties.MalformedID, "aadhaar number present but malformed")
		}
	} else if aadhaarCandidate.MatchString(rawText) {
		ex.penalize(s.penalties.MalformedID, "aadhaar number present but malformed")
	} else {
		ex.penalize(s.penalties.MissingID, "aadhaar number not found")
	}

	if !aadhaarHeaderPattern.MatchString(rawText) {
		ex.penalize(s.penalties.MissingHeader, "government of india header not found")
	}

	if name := extractName(rawText, TypeAadhaarCard); name != "" {
		ex.Fields[FieldName] = name
	} else {
		ex.penalize(s.penalties.ImplausibleName, "holder name not recognized")
	}

	// Best-effort demographics, no penalty when absent
	if m := dobPattern.FindStringSubmatch(rawText); m != nil {
		ex.Fields[FieldDateOfBirth] = m[1]
	}
	if m := genderPattern.FindStringSubmatch(rawText); m != nil {
		ex.Fields[FieldGender] = strings.ToLower(m[1])
	}

	return ex
}

// penalize subtracts a penalty and records the reason, flooring the
// confidence at zero.
func (e *Extraction) penalize(amount float64, reason string) {
	e.Confidence -= amount
	if e.Confidence < 0 {
		e.Confidence = 0
	}
	e.Issues = append(e.Issues, reason)
}

// hasPANCandidate reports whether the text holds a 10-character token
// mixing letters and digits that failed the strict PAN shape.
func hasPANCandidate(rawText string) bool {
	for _, token := range panCandidate.FindAllString(rawText, -1) {
		var hasLetter, hasDigit bool
		for _, r := range token {
			switch {
			case r >= 'A' && r <= 'Z':
				hasLetter = true
			case r >= '0' && r <= '9':
				hasDigit = true
			}
		}
		if hasLetter && hasDigit {
			return true
		}
	}
	return false
}

// extractName walks the pattern ladder for the type and returns the
// first plausible candidate, title-cased.
func extractName(rawText, documentType string) string {
	for _, p := range namePatterns[documentType] {
		for _, m := range p.FindAllStringSubmatch(rawText, -1) {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) < 2 || nameStopWords.MatchString(candidate) {
				continue
			}
			return titleCase(candidate)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
