package document

import "regexp"

// detector holds the classifier patterns owned by one document type.
type detector struct {
	docType  string
	patterns []*regexp.Regexp
}

// classifierThreshold is the number of pattern hits needed before a
// type is selected.
const classifierThreshold = 2

// detectors are scanned in order; the first type reaching the
// threshold wins.
var detectors = []detector{
	{
		docType: TypePANCard,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)INCOME\s+TAX\s+DEPARTMENT`),
			regexp.MustCompile(`(?i)PERMANENT\s+ACCOUNT\s+NUMBER`),
			regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`),
			regexp.MustCompile(`(?i)GOVT\.?\s+OF\s+INDIA`),
		},
	},
	{
		docType: TypeAadhaarCard,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)GOVERNMENT\s+OF\s+INDIA`),
			regexp.MustCompile(`(?i)UNIQUE\s+IDENTIFICATION\s+AUTHORITY`),
			regexp.MustCompile(`\b[2-9]\d{3}[-\s]?\d{4}[-\s]?\d{4}\b`),
			regexp.MustCompile(`(?i)\bAADHAAR\b`),
		},
	},
	{
		docType: TypeBusinessProof,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)CERTIFICATE\s+OF\s+INCORPORATION`),
			regexp.MustCompile(`(?i)UDYAM\s+REGISTRATION`),
			regexp.MustCompile(`(?i)\bGSTIN\b`),
			regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]\b`),
			regexp.MustCompile(`(?i)SHOPS?\s+AND\s+ESTABLISHMENTS?`),
		},
	},
	{
		docType: TypeBankStatement,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)STATEMENT\s+OF\s+ACCOUNT`),
			regexp.MustCompile(`(?i)\bIFSC\b`),
			regexp.MustCompile(`(?i)OPENING\s+BALANCE`),
			regexp.MustCompile(`(?i)CLOSING\s+BALANCE`),
		},
	},
}

// ID number shapes
var (
	panPattern = regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}[A-Z])\b`)

	// Accepts space- or dash-grouped input; separators are stripped
	// before validation.
	aadhaarPattern = regexp.MustCompile(`\b([2-9]\d{3}[-\s]?\d{4}[-\s]?\d{4})\b`)

	// Applied after separator stripping.
	aadhaarStrict = regexp.MustCompile(`^[2-9]\d{11}$`)

	aadhaarSeparators = regexp.MustCompile(`[-\s]`)
)

// Header tokens checked during validation
var (
	panHeaderPattern     = regexp.MustCompile(`(?i)INCOME\s+TAX\s+DEPARTMENT`)
	aadhaarHeaderPattern = regexp.MustCompile(`(?i)GOVERNMENT\s+OF\s+INDIA`)
)

// Loose candidate shapes, consulted only after the strict pattern
// fails, to tell a malformed ID apart from a missing one.
var (
	panCandidate     = regexp.MustCompile(`\b[A-Z0-9]{10}\b`)
	aadhaarCandidate = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
)

// namePatterns are tried in order per document type; extraction stops
// at the first plausible match.
var namePatterns = map[string][]*regexp.Regexp{
	TypePANCard: {
		regexp.MustCompile(`(?m)^\s*(?i:name)\s*[:\-]?\s*([A-Za-z][A-Za-z .]{1,48})\s*$`),
		regexp.MustCompile(`(?i:name)\s*[:\-]?\s*\n?\s*([A-Z][A-Z .]{1,48}[A-Z])`),
		regexp.MustCompile(`(?m)^\s*([A-Z]{2,}(?:\s+[A-Z]{2,}){1,3})\s*$`),
	},
	TypeAadhaarCard: {
		regexp.MustCompile(`(?m)^\s*(?i:name)\s*[:\-]?\s*([A-Za-z][A-Za-z .]{1,48})\s*$`),
		regexp.MustCompile(`(?m)^\s*([A-Za-z][A-Za-z .]{1,48})\s*\n\s*(?i:DOB|D\.O\.B|Date of Birth|Year of Birth)`),
		regexp.MustCompile(`(?m)^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\s*$`),
	},
}

// Best-effort demographic patterns, Aadhaar only
var (
	dobPattern    = regexp.MustCompile(`(?i)(?:DOB|D\.O\.B\.?|Date\s+of\s+Birth|Year\s+of\s+Birth)\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4}|\d{4})`)
	genderPattern = regexp.MustCompile(`(?i)\b(male|female|transgender)\b`)
)

// nameStopWords are header tokens that disqualify an all-caps line
// from being read as a person's name.
var nameStopWords = regexp.MustCompile(`(?i)INCOME|TAX|DEPARTMENT|GOVERNMENT|GOVT|INDIA|PERMANENT|ACCOUNT|NUMBER|AADHAAR|UNIQUE|IDENTIFICATION|AUTHORITY|CARD|SIGNATURE|FATHER`)
